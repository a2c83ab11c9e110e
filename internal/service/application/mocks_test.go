package application

// Manual mocks (moq-style with func fields).

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
)

type mockApplicationRepo struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListFunc        func(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error)
	CreateFunc      func(ctx context.Context, userID uuid.UUID, email string, fields domain.FormValues) (*domain.Application, error)
	MergeFieldsFunc func(ctx context.Context, id, userID uuid.UUID, values domain.FormValues, email string) (*domain.Application, error)
	SubmitFunc      func(ctx context.Context, id, userID uuid.UUID) (*domain.Application, error)
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockApplicationRepo) List(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockApplicationRepo) Create(ctx context.Context, userID uuid.UUID, email string, fields domain.FormValues) (*domain.Application, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, email, fields)
	}
	now := time.Now().UTC()
	return &domain.Application{
		ID:             uuid.New(),
		UserID:         userID,
		Email:          email,
		Status:         domain.ApplicationStatusDraft,
		Fields:         fields,
		LastAutosaveAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (m *mockApplicationRepo) MergeFields(ctx context.Context, id, userID uuid.UUID, values domain.FormValues, email string) (*domain.Application, error) {
	if m.MergeFieldsFunc != nil {
		return m.MergeFieldsFunc(ctx, id, userID, values, email)
	}
	return &domain.Application{ID: id, UserID: userID, Status: domain.ApplicationStatusDraft, Fields: values}, nil
}

func (m *mockApplicationRepo) Submit(ctx context.Context, id, userID uuid.UUID) (*domain.Application, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, id, userID)
	}
	now := time.Now().UTC()
	return &domain.Application{
		ID:          id,
		UserID:      userID,
		Status:      domain.ApplicationStatusSubmitted,
		IsLocked:    true,
		SubmittedAt: &now,
	}, nil
}

type mockDocumentRepo struct {
	ListByApplicationFunc func(ctx context.Context, applicationID uuid.UUID) ([]*domain.Document, error)
}

func (m *mockDocumentRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*domain.Document, error) {
	if m.ListByApplicationFunc != nil {
		return m.ListByApplicationFunc(ctx, applicationID)
	}
	return nil, nil
}

type mockSnapshotRepo struct {
	CreateFunc func(ctx context.Context, snap *domain.ApplicationSnapshot) (*domain.ApplicationSnapshot, error)
	created    []*domain.ApplicationSnapshot
}

func (m *mockSnapshotRepo) Create(ctx context.Context, snap *domain.ApplicationSnapshot) (*domain.ApplicationSnapshot, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, snap)
	}
	snap.ID = uuid.New()
	m.created = append(m.created, snap)
	return snap, nil
}

type mockPaymentRepo struct {
	GetLatestByApplicationFunc func(ctx context.Context, applicationID uuid.UUID) (*domain.Payment, error)
}

func (m *mockPaymentRepo) GetLatestByApplication(ctx context.Context, applicationID uuid.UUID) (*domain.Payment, error) {
	if m.GetLatestByApplicationFunc != nil {
		return m.GetLatestByApplicationFunc(ctx, applicationID)
	}
	return nil, domain.ErrNotFound
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

type mockURLSigner struct {
	SignedURLFunc func(filePath string, expiresIn time.Duration) (string, error)
}

func (m *mockURLSigner) SignedURL(filePath string, expiresIn time.Duration) (string, error) {
	if m.SignedURLFunc != nil {
		return m.SignedURLFunc(filePath, expiresIn)
	}
	return "https://files.example.com/" + filePath + "?sig=test", nil
}

type mockNotifier struct {
	ApplicationSubmittedFunc func(ctx context.Context, app *domain.Application) error
	StaffAlertFunc           func(ctx context.Context, subject, body string) error

	submittedCalls int
	alertCalls     int
}

func (m *mockNotifier) ApplicationSubmitted(ctx context.Context, app *domain.Application) error {
	m.submittedCalls++
	if m.ApplicationSubmittedFunc != nil {
		return m.ApplicationSubmittedFunc(ctx, app)
	}
	return nil
}

func (m *mockNotifier) StaffAlert(ctx context.Context, subject, body string) error {
	m.alertCalls++
	if m.StaffAlertFunc != nil {
		return m.StaffAlertFunc(ctx, subject, body)
	}
	return nil
}
