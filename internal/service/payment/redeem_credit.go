package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/internal/form"
	"github.com/visago/visago-backend/pkg/ctxutil"
)

// RedeemCredit consumes the caller's oldest available credit and creates a
// new draft application with it. Consumption and draft creation commit
// together: if the draft insert fails the rollback leaves the credit
// available, so a credit is never spent without a draft to show for it.
// Concurrent redeems are serialized by the row lock taken on the credit.
func (s *Service) RedeemCredit(ctx context.Context, email string) (*domain.Application, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if email == "" {
		return nil, domain.NewValidationError(form.FieldEmail, "required")
	}

	var draft *domain.Application
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		credit, err := s.credits.LockOldestAvailable(txCtx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no available credit: %w", domain.ErrInvalidState)
			}
			return err
		}

		draft, err = s.apps.Create(txCtx, userID, email, domain.FormValues{form.FieldEmail: email})
		if err != nil {
			return fmt.Errorf("create draft: %w", err)
		}

		if _, err := s.credits.MarkConsumed(txCtx, credit.ID, draft.ID); err != nil {
			return fmt.Errorf("consume credit: %w", err)
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeCredit,
			EntityID:   &credit.ID,
			Action:     domain.AuditActionUpdate,
			Changes:    map[string]any{"consumed_by": draft.ID.String()},
		})
		if auditErr != nil {
			return fmt.Errorf("audit credit: %w", auditErr)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("credit redeemed", "user_id", userID, "application_id", draft.ID)
	return draft, nil
}

// ListCredits returns the caller's still-redeemable credits.
func (s *Service) ListCredits(ctx context.Context) ([]*domain.ApplicationCredit, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.credits.ListAvailable(ctx, userID)
}
