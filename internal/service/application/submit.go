package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/pkg/ctxutil"
)

// Submit transitions the caller's draft to submitted. All preconditions
// (required fields, documents, declaration, eligibility) are re-checked
// server-side; the transition itself is a conditional update that re-verifies
// ownership and draft status at write time, so of two concurrent submits at
// most one succeeds. The snapshot and audit record commit in the same
// transaction; notifications fire after commit and never affect the result.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if app.Status != domain.ApplicationStatusDraft {
		return nil, fmt.Errorf("application %s is %s: %w", id, app.Status, domain.ErrInvalidState)
	}

	if err := s.checkCompleteness(ctx, app); err != nil {
		return nil, err
	}

	// The funding payment (if any) is linked into the snapshot.
	var bookingID, paymentID *uuid.UUID
	payment, err := s.payments.GetLatestByApplication(ctx, id)
	switch {
	case err == nil:
		paymentID = &payment.ID
		bookingID = payment.BookingID
	case errors.Is(err, domain.ErrNotFound):
		// unpaid draft, snapshot carries no linkage
	default:
		return nil, err
	}

	var submitted *domain.Application
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var submitErr error
		submitted, submitErr = s.apps.Submit(txCtx, id, userID)
		if submitErr != nil {
			return submitErr
		}

		_, snapErr := s.snapshots.Create(txCtx, &domain.ApplicationSnapshot{
			ApplicationID: submitted.ID,
			UserID:        userID,
			Email:         submitted.Email,
			Fields:        submitted.Fields.Clone(),
			BookingID:     bookingID,
			PaymentID:     paymentID,
		})
		if snapErr != nil {
			return fmt.Errorf("create snapshot: %w", snapErr)
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeApplication,
			EntityID:   &submitted.ID,
			Action:     domain.AuditActionSubmit,
			Changes:    map[string]any{"status": submitted.Status.String()},
		})
		if auditErr != nil {
			return fmt.Errorf("audit submit: %w", auditErr)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.notifyAfterSubmit(ctx, submitted)

	return submitted, nil
}

// notifyAfterSubmit fires the post-commit notifications. Best effort: failures
// are logged, never surfaced, never rolled back into the submission.
func (s *Service) notifyAfterSubmit(ctx context.Context, app *domain.Application) {
	if err := s.notify.ApplicationSubmitted(ctx, app); err != nil {
		s.log.Warn("applicant confirmation failed", "application_id", app.ID, "error", err)
	}
	if err := s.notify.StaffAlert(ctx, "application submitted",
		fmt.Sprintf("application %s submitted by %s", app.ID, app.Email)); err != nil {
		s.log.Warn("staff alert failed", "application_id", app.ID, "error", err)
	}
}
