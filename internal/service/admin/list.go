package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
)

const defaultPageSize = 50

// ListApplications returns applications matching the filter, newest first.
func (s *Service) ListApplications(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, domain.NewValidationError("status", "unknown application status")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	return s.apps.List(ctx, filter)
}

// GetApplication returns any application without an ownership check.
func (s *Service) GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.apps.GetByID(ctx, id)
}

// ListBookings returns bookings matching the filter, newest first.
func (s *Service) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	return s.bookings.List(ctx, filter)
}

// GetBooking returns a booking with its travelers loaded.
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.bookings.GetByID(ctx, id)
}

// ListPayments returns payments matching the filter, newest first.
func (s *Service) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	return s.payments.List(ctx, filter)
}

// ListAuditLog returns audit records matching the filter, newest first.
func (s *Service) ListAuditLog(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	return s.audit.List(ctx, filter)
}
