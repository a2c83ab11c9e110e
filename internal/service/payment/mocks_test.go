package payment

// Manual mocks (moq-style with func fields).

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
)

type mockBookingRepo struct {
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	CreateFunc              func(ctx context.Context, bk *domain.Booking) (*domain.Booking, error)
	UpdatePaymentStatusFunc func(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Booking, error)

	paymentStatusCalls []domain.PaymentStatus
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockBookingRepo) Create(ctx context.Context, bk *domain.Booking) (*domain.Booking, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, bk)
	}
	bk.ID = uuid.New()
	for _, t := range bk.Travelers {
		t.ID = uuid.New()
		t.BookingID = bk.ID
	}
	return bk, nil
}

func (m *mockBookingRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Booking, error) {
	m.paymentStatusCalls = append(m.paymentStatusCalls, status)
	if m.UpdatePaymentStatusFunc != nil {
		return m.UpdatePaymentStatusFunc(ctx, id, status)
	}
	return &domain.Booking{ID: id, PaymentStatus: status}, nil
}

type mockPaymentRepo struct {
	GetByOrderIDFunc          func(ctx context.Context, orderID string) (*domain.Payment, error)
	GetByOrderIDForUpdateFunc func(ctx context.Context, orderID string) (*domain.Payment, error)
	CreateFunc                func(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	UpdateStatusFunc          func(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Payment, error)

	statusCalls []domain.PaymentStatus
}

func (m *mockPaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPaymentRepo) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*domain.Payment, error) {
	if m.GetByOrderIDForUpdateFunc != nil {
		return m.GetByOrderIDForUpdateFunc(ctx, orderID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now().UTC()
	return p, nil
}

func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Payment, error) {
	m.statusCalls = append(m.statusCalls, status)
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return &domain.Payment{ID: id, Status: status}, nil
}

type mockCreditRepo struct {
	ListAvailableFunc       func(ctx context.Context, userID uuid.UUID) ([]*domain.ApplicationCredit, error)
	LockOldestAvailableFunc func(ctx context.Context, userID uuid.UUID) (*domain.ApplicationCredit, error)
	MintFunc                func(ctx context.Context, userID, paymentID uuid.UUID) (*domain.ApplicationCredit, error)
	MarkConsumedFunc        func(ctx context.Context, id, applicationID uuid.UUID) (*domain.ApplicationCredit, error)

	minted   []*domain.ApplicationCredit
	consumed []uuid.UUID
}

func (m *mockCreditRepo) ListAvailable(ctx context.Context, userID uuid.UUID) ([]*domain.ApplicationCredit, error) {
	if m.ListAvailableFunc != nil {
		return m.ListAvailableFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockCreditRepo) LockOldestAvailable(ctx context.Context, userID uuid.UUID) (*domain.ApplicationCredit, error) {
	if m.LockOldestAvailableFunc != nil {
		return m.LockOldestAvailableFunc(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCreditRepo) Mint(ctx context.Context, userID, paymentID uuid.UUID) (*domain.ApplicationCredit, error) {
	if m.MintFunc != nil {
		return m.MintFunc(ctx, userID, paymentID)
	}
	credit := &domain.ApplicationCredit{
		ID:        uuid.New(),
		UserID:    userID,
		PaymentID: paymentID,
		Status:    domain.CreditStatusAvailable,
		CreatedAt: time.Now().UTC(),
	}
	m.minted = append(m.minted, credit)
	return credit, nil
}

func (m *mockCreditRepo) MarkConsumed(ctx context.Context, id, applicationID uuid.UUID) (*domain.ApplicationCredit, error) {
	m.consumed = append(m.consumed, id)
	if m.MarkConsumedFunc != nil {
		return m.MarkConsumedFunc(ctx, id, applicationID)
	}
	now := time.Now().UTC()
	return &domain.ApplicationCredit{
		ID:                      id,
		Status:                  domain.CreditStatusConsumed,
		ConsumedByApplicationID: &applicationID,
		ConsumedAt:              &now,
	}, nil
}

type mockApplicationRepo struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	CreateFunc  func(ctx context.Context, userID uuid.UUID, email string, fields domain.FormValues) (*domain.Application, error)
	UnlockFunc  func(ctx context.Context, id uuid.UUID) (*domain.Application, error)

	unlocked []uuid.UUID
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockApplicationRepo) Create(ctx context.Context, userID uuid.UUID, email string, fields domain.FormValues) (*domain.Application, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, email, fields)
	}
	return &domain.Application{
		ID:     uuid.New(),
		UserID: userID,
		Email:  email,
		Status: domain.ApplicationStatusDraft,
		Fields: fields,
	}, nil
}

func (m *mockApplicationRepo) Unlock(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	m.unlocked = append(m.unlocked, id)
	if m.UnlockFunc != nil {
		return m.UnlockFunc(ctx, id)
	}
	return &domain.Application{ID: id, IsLocked: false}, nil
}

type mockAuditRepo struct {
	RecordFunc func(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error)
	records    []*domain.AuditRecord
}

func (m *mockAuditRepo) Record(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, rec)
	}
	rec.ID = uuid.New()
	m.records = append(m.records, rec)
	return rec, nil
}

// mockTxManager runs the callback directly, no transaction semantics.
type mockTxManager struct{}

func (m *mockTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockOrderCreator struct {
	CreateOrderFunc func(ctx context.Context, amountCents int64, currency string) (string, error)

	orders []int64
}

func (m *mockOrderCreator) CreateOrder(ctx context.Context, amountCents int64, currency string) (string, error) {
	m.orders = append(m.orders, amountCents)
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, amountCents, currency)
	}
	return "ORD-" + uuid.NewString(), nil
}
