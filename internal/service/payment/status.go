package payment

import (
	"context"

	"github.com/visago/visago-backend/internal/domain"
)

// GetPaymentStatus is the read-only mirror lookup the client poller drives.
// An order the service has never seen returns ErrNotFound; the poller decides
// how long "not yet" is allowed to last.
func (s *Service) GetPaymentStatus(ctx context.Context, orderID string) (*domain.Payment, error) {
	if orderID == "" {
		return nil, domain.NewValidationError("order_id", "required")
	}
	return s.payments.GetByOrderID(ctx, orderID)
}
