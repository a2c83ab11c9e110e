package payproc

import (
	"context"

	"github.com/google/uuid"
)

// Stub is an in-process processor for local development and tests: every
// order is created immediately with a generated id and nothing is charged.
type Stub struct{}

// NewStub creates a stub processor.
func NewStub() *Stub { return &Stub{} }

// CreateOrder returns a generated order id.
func (s *Stub) CreateOrder(_ context.Context, _ int64, _ string) (string, error) {
	return "STUB-" + uuid.NewString(), nil
}
