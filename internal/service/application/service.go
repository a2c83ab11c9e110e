// Package application implements draft persistence, validation, and
// submission of visa applications.
package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type applicationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	List(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error)
	Create(ctx context.Context, userID uuid.UUID, email string, fields domain.FormValues) (*domain.Application, error)
	MergeFields(ctx context.Context, id, userID uuid.UUID, values domain.FormValues, email string) (*domain.Application, error)
	Submit(ctx context.Context, id, userID uuid.UUID) (*domain.Application, error)
}

type documentRepo interface {
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*domain.Document, error)
}

type snapshotRepo interface {
	Create(ctx context.Context, snap *domain.ApplicationSnapshot) (*domain.ApplicationSnapshot, error)
}

type paymentRepo interface {
	GetLatestByApplication(ctx context.Context, applicationID uuid.UUID) (*domain.Payment, error)
}

type auditRepo interface {
	Record(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type urlSigner interface {
	SignedURL(filePath string, expiresIn time.Duration) (string, error)
}

type notifier interface {
	ApplicationSubmitted(ctx context.Context, app *domain.Application) error
	StaffAlert(ctx context.Context, subject, body string) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the visa application business logic.
type Service struct {
	log       *slog.Logger
	apps      applicationRepo
	documents documentRepo
	snapshots snapshotRepo
	payments  paymentRepo
	audit     auditRepo
	tx        txManager
	docstore  urlSigner
	notify    notifier
	urlTTL    time.Duration
}

// NewService creates a new application service.
func NewService(
	logger *slog.Logger,
	apps applicationRepo,
	documents documentRepo,
	snapshots snapshotRepo,
	payments paymentRepo,
	auditRepo auditRepo,
	tx txManager,
	docstore urlSigner,
	notify notifier,
	urlTTL time.Duration,
) *Service {
	return &Service{
		log:       logger.With("service", "application"),
		apps:      apps,
		documents: documents,
		snapshots: snapshots,
		payments:  payments,
		audit:     auditRepo,
		tx:        tx,
		docstore:  docstore,
		notify:    notify,
		urlTTL:    urlTTL,
	}
}
