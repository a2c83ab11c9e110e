// Package admin implements the review-side business logic: listing
// applications, bookings and payments, and advancing application and
// traveler review statuses. Every operation requires the admin role claim.
package admin

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/pkg/ctxutil"
)

type applicationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	List(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.ApplicationStatus) (*domain.Application, error)
}

type bookingRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	GetTraveler(ctx context.Context, id uuid.UUID) (*domain.Traveler, error)
	UpdateTravelerStatus(ctx context.Context, id uuid.UUID, from, to domain.TravelerStatus) (*domain.Traveler, error)
}

type paymentRepo interface {
	List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error)
}

type auditRepo interface {
	Record(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error)
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the admin triage business logic.
type Service struct {
	log      *slog.Logger
	apps     applicationRepo
	bookings bookingRepo
	payments paymentRepo
	audit    auditRepo
	tx       txManager
}

// NewService creates a new admin service.
func NewService(
	logger *slog.Logger,
	apps applicationRepo,
	bookings bookingRepo,
	payments paymentRepo,
	auditRepo auditRepo,
	tx txManager,
) *Service {
	return &Service{
		log:      logger.With("service", "admin"),
		apps:     apps,
		bookings: bookings,
		payments: payments,
		audit:    auditRepo,
		tx:       tx,
	}
}

// requireAdmin returns the caller's user id after verifying the admin role
// claim. A missing identity is Unauthorized; a non-admin role is Forbidden.
func requireAdmin(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	role := domain.UserRole(ctxutil.UserRoleFromCtx(ctx))
	if !role.IsAdmin() {
		return uuid.Nil, domain.ErrForbidden
	}
	return userID, nil
}
