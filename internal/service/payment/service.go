// Package payment implements booking creation, payment initiation, and the
// idempotent resolution that grants unlocks or credits.
package payment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/config"
	"github.com/visago/visago-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type bookingRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Create(ctx context.Context, bk *domain.Booking) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Booking, error)
}

type paymentRepo interface {
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	GetByOrderIDForUpdate(ctx context.Context, orderID string) (*domain.Payment, error)
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Payment, error)
}

type creditRepo interface {
	ListAvailable(ctx context.Context, userID uuid.UUID) ([]*domain.ApplicationCredit, error)
	LockOldestAvailable(ctx context.Context, userID uuid.UUID) (*domain.ApplicationCredit, error)
	Mint(ctx context.Context, userID, paymentID uuid.UUID) (*domain.ApplicationCredit, error)
	MarkConsumed(ctx context.Context, id, applicationID uuid.UUID) (*domain.ApplicationCredit, error)
}

type applicationRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	Create(ctx context.Context, userID uuid.UUID, email string, fields domain.FormValues) (*domain.Application, error)
	Unlock(ctx context.Context, id uuid.UUID) (*domain.Application, error)
}

type auditRepo interface {
	Record(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// orderCreator delegates authorization and capture to the external processor;
// this service only keeps the mirrored order id.
type orderCreator interface {
	CreateOrder(ctx context.Context, amountCents int64, currency string) (orderID string, err error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the payment and credit business logic.
type Service struct {
	log       *slog.Logger
	bookings  bookingRepo
	payments  paymentRepo
	credits   creditRepo
	apps      applicationRepo
	audit     auditRepo
	tx        txManager
	processor orderCreator
	cfg       config.PaymentConfig
}

// NewService creates a new payment service.
func NewService(
	logger *slog.Logger,
	bookings bookingRepo,
	payments paymentRepo,
	credits creditRepo,
	apps applicationRepo,
	auditRepo auditRepo,
	tx txManager,
	processor orderCreator,
	cfg config.PaymentConfig,
) *Service {
	return &Service{
		log:       logger.With("service", "payment"),
		bookings:  bookings,
		payments:  payments,
		credits:   credits,
		apps:      apps,
		audit:     auditRepo,
		tx:        tx,
		processor: processor,
		cfg:       cfg,
	}
}
