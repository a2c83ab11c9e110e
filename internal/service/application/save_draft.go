package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/internal/form"
	"github.com/visago/visago-backend/pkg/ctxutil"
)

// SaveDraft validates a sparse field payload and persists it. Without an
// application id it creates a new draft (email required); with an id it
// merges the payload into the existing draft. Keys absent from the payload
// are never touched in storage, so rapid partial saves cannot erase each
// other's fields. Returns the canonical persisted application.
func (s *Service) SaveDraft(ctx context.Context, input SaveDraftInput) (*domain.Application, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	values, err := input.normalize()
	if err != nil {
		return nil, err
	}

	if input.ApplicationID == nil {
		return s.createDraft(ctx, userID, values)
	}
	return s.updateDraft(ctx, *input.ApplicationID, userID, values)
}

func (s *Service) createDraft(ctx context.Context, userID uuid.UUID, values domain.FormValues) (*domain.Application, error) {
	email := values.Str(form.FieldEmail)
	if email == "" {
		return nil, domain.NewValidationError(form.FieldEmail, "required")
	}

	var created *domain.Application
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.apps.Create(txCtx, userID, email, values)
		if createErr != nil {
			return fmt.Errorf("create draft: %w", createErr)
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeApplication,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"fields": keysOf(values)},
		})
		if auditErr != nil {
			return fmt.Errorf("audit create: %w", auditErr)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info("draft created", "application_id", created.ID, "user_id", userID)
	return created, nil
}

func (s *Service) updateDraft(ctx context.Context, id, userID uuid.UUID, values domain.FormValues) (*domain.Application, error) {
	app, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if !app.Editable() {
		return nil, fmt.Errorf("application %s is %s: %w", id, app.Status, domain.ErrInvalidState)
	}

	var updated *domain.Application
	txErr := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var mergeErr error
		updated, mergeErr = s.apps.MergeFields(txCtx, id, userID, values, values.Str(form.FieldEmail))
		if mergeErr != nil {
			return mergeErr
		}

		_, auditErr := s.audit.Record(txCtx, &domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeApplication,
			EntityID:   &id,
			Action:     domain.AuditActionUpdate,
			Changes:    map[string]any{"fields": keysOf(values)},
		})
		if auditErr != nil {
			return fmt.Errorf("audit update: %w", auditErr)
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return updated, nil
}

// keysOf returns just the field names for the audit trail; values stay out of
// the log, some of them are sensitive.
func keysOf(values domain.FormValues) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	return keys
}
