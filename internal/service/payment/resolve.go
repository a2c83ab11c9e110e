package payment

import (
	"context"
	"fmt"

	"github.com/visago/visago-backend/internal/domain"
)

// ResolvePayment applies the observed processor outcome to the mirrored
// payment row. Idempotent: the row is locked for the duration of the
// transaction, a payment already in a terminal state is returned unchanged,
// and the completion grant (booking paid / application unlocked / credit
// minted) runs exactly once, inside the same transaction as the status write.
func (s *Service) ResolvePayment(ctx context.Context, orderID string, observed domain.PaymentStatus) (*domain.Payment, error) {
	if !observed.IsValid() || observed == domain.PaymentStatusInitiated {
		return nil, domain.NewValidationError("status", "not a resolvable payment status")
	}

	var resolved *domain.Payment
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.payments.GetByOrderIDForUpdate(txCtx, orderID)
		if err != nil {
			return err
		}
		if current.Status.IsTerminal() || current.Status == observed {
			resolved = current
			return nil
		}

		resolved, err = s.payments.UpdateStatus(txCtx, current.ID, observed)
		if err != nil {
			return err
		}

		if observed == domain.PaymentStatusCompleted {
			if grantErr := s.grantCompletion(txCtx, resolved); grantErr != nil {
				return grantErr
			}
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     resolved.UserID,
			EntityType: domain.EntityTypePayment,
			EntityID:   &resolved.ID,
			Action:     domain.AuditActionStatus,
			Changes: map[string]any{
				"from": current.Status.String(),
				"to":   observed.String(),
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit payment: %w", auditErr)
		}

		s.log.Info("payment resolved",
			"order_id", orderID, "from", current.Status, "to", observed)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return resolved, nil
}

// grantCompletion delivers whatever a completed payment paid for.
func (s *Service) grantCompletion(ctx context.Context, p *domain.Payment) error {
	switch {
	case p.BookingID != nil:
		if _, err := s.bookings.UpdatePaymentStatus(ctx, *p.BookingID, domain.PaymentStatusCompleted); err != nil {
			return fmt.Errorf("mark booking paid: %w", err)
		}
	case p.ApplicationID != nil:
		if _, err := s.apps.Unlock(ctx, *p.ApplicationID); err != nil {
			return fmt.Errorf("unlock application: %w", err)
		}
	default:
		if _, err := s.credits.Mint(ctx, p.UserID, p.ID); err != nil {
			return fmt.Errorf("mint credit: %w", err)
		}
	}
	return nil
}
