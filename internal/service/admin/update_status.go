package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
)

// UpdateApplicationStatus performs one review transition on an application.
// The transition table is checked against the status read first; the UPDATE
// then re-checks it in its predicate, so a concurrent transition makes the
// second writer fail with ErrInvalidState instead of double-applying.
func (s *Service) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, to domain.ApplicationStatus) (*domain.Application, error) {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if !to.IsValid() {
		return nil, domain.NewValidationError("status", "unknown application status")
	}

	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !app.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("application %s: %s -> %s: %w",
			id, app.Status, to, domain.ErrInvalidState)
	}

	var updated *domain.Application
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.apps.UpdateStatus(txCtx, id, app.Status, to)
		if updateErr != nil {
			return updateErr
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     adminID,
			EntityType: domain.EntityTypeApplication,
			EntityID:   &id,
			Action:     domain.AuditActionStatus,
			Changes: map[string]any{
				"from": app.Status.String(),
				"to":   to.String(),
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit status change: %w", auditErr)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("application status changed",
		"application_id", id, "from", app.Status, "to", to, "admin_id", adminID)
	return updated, nil
}

// UpdateTravelerStatus performs one review transition on a traveler.
func (s *Service) UpdateTravelerStatus(ctx context.Context, id uuid.UUID, to domain.TravelerStatus) (*domain.Traveler, error) {
	adminID, err := requireAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if !to.IsValid() {
		return nil, domain.NewValidationError("status", "unknown traveler status")
	}

	traveler, err := s.bookings.GetTraveler(ctx, id)
	if err != nil {
		return nil, err
	}
	if !traveler.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("traveler %s: %s -> %s: %w",
			id, traveler.Status, to, domain.ErrInvalidState)
	}

	var updated *domain.Traveler
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.bookings.UpdateTravelerStatus(txCtx, id, traveler.Status, to)
		if updateErr != nil {
			return updateErr
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     adminID,
			EntityType: domain.EntityTypeTraveler,
			EntityID:   &id,
			Action:     domain.AuditActionStatus,
			Changes: map[string]any{
				"from": traveler.Status.String(),
				"to":   to.String(),
			},
		})
		if auditErr != nil {
			return fmt.Errorf("audit status change: %w", auditErr)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("traveler status changed",
		"traveler_id", id, "from", traveler.Status, "to", to, "admin_id", adminID)
	return updated, nil
}
