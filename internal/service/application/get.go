package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/pkg/ctxutil"
)

// Get returns the caller's application by id. NotFound and Forbidden are
// distinguished: a row that exists but belongs to someone else is Forbidden.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
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

	return app, nil
}
