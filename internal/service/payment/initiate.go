package payment

import (
	"context"
	"fmt"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/pkg/ctxutil"
)

// InitiatePayment creates an order with the external processor and persists
// an optimistic payment row in `initiated` status. The row exists before the
// user has completed the external checkout; ResolvePayment advances it once
// the outcome is known. A booking-targeted payment is priced from the
// booking, everything else at the flat application fee.
func (s *Service) InitiatePayment(ctx context.Context, input InitiatePaymentInput) (*domain.Payment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	amount := s.cfg.ApplicationFee
	if input.BookingID != nil {
		booking, err := s.bookings.GetByID(ctx, *input.BookingID)
		if err != nil {
			return nil, err
		}
		if booking.UserID != userID {
			return nil, domain.ErrForbidden
		}
		amount = booking.AmountCents
	}
	if input.ApplicationID != nil {
		app, err := s.apps.GetByID(ctx, *input.ApplicationID)
		if err != nil {
			return nil, err
		}
		if app.UserID != userID {
			return nil, domain.ErrForbidden
		}
	}

	orderID, err := s.processor.CreateOrder(ctx, amount, s.cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("create processor order: %w", err)
	}

	created, err := s.payments.Create(ctx, &domain.Payment{
		UserID:        userID,
		OrderID:       orderID,
		BookingID:     input.BookingID,
		ApplicationID: input.ApplicationID,
		AmountCents:   amount,
		Currency:      s.cfg.Currency,
		Status:        domain.PaymentStatusInitiated,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment initiated",
		"payment_id", created.ID, "order_id", orderID, "user_id", userID, "amount_cents", amount)
	return created, nil
}
