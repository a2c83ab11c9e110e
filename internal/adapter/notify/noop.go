package notify

import (
	"context"

	"github.com/visago/visago-backend/internal/domain"
)

// Noop discards every notification. Used when no webhook URL is configured.
type Noop struct{}

// NewNoop creates a discarding notifier.
func NewNoop() *Noop { return &Noop{} }

func (Noop) ApplicationSubmitted(context.Context, *domain.Application) error { return nil }

func (Noop) StaffAlert(context.Context, string, string) error { return nil }
