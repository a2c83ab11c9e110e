package admin

// Manual mocks (moq-style with func fields).

import (
	"context"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
)

type mockApplicationRepo struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListFunc         func(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error)
	UpdateStatusFunc func(ctx context.Context, id uuid.UUID, from, to domain.ApplicationStatus) (*domain.Application, error)

	lastFilter domain.ApplicationFilter
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockApplicationRepo) List(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error) {
	m.lastFilter = filter
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*domain.Application{}, nil
}

func (m *mockApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.ApplicationStatus) (*domain.Application, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, from, to)
	}
	return &domain.Application{ID: id, Status: to}, nil
}

type mockBookingRepo struct {
	GetByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	ListFunc                 func(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	GetTravelerFunc          func(ctx context.Context, id uuid.UUID) (*domain.Traveler, error)
	UpdateTravelerStatusFunc func(ctx context.Context, id uuid.UUID, from, to domain.TravelerStatus) (*domain.Traveler, error)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*domain.Booking{}, nil
}

func (m *mockBookingRepo) GetTraveler(ctx context.Context, id uuid.UUID) (*domain.Traveler, error) {
	if m.GetTravelerFunc != nil {
		return m.GetTravelerFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockBookingRepo) UpdateTravelerStatus(ctx context.Context, id uuid.UUID, from, to domain.TravelerStatus) (*domain.Traveler, error) {
	if m.UpdateTravelerStatusFunc != nil {
		return m.UpdateTravelerStatusFunc(ctx, id, from, to)
	}
	return &domain.Traveler{ID: id, Status: to}, nil
}

type mockPaymentRepo struct {
	ListFunc func(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error)
}

func (m *mockPaymentRepo) List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*domain.Payment{}, nil
}

type mockAuditRepo struct {
	RecordFunc func(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error)
	ListFunc   func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error)

	records []*domain.AuditRecord
}

func (m *mockAuditRepo) Record(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, rec)
	}
	rec.ID = uuid.New()
	m.records = append(m.records, rec)
	return rec, nil
}

func (m *mockAuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*domain.AuditRecord{}, nil
}

// mockTxManager runs the callback directly, no transaction semantics.
type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
