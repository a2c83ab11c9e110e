// Package payment implements the Payment repository using PostgreSQL.
// Payments are keyed by the external processor's order id (UNIQUE), which is
// what makes resolution idempotent: a second completion of the same order
// finds the row already terminal and changes nothing.
package payment

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/visago/visago-backend/internal/adapter/postgres"
	"github.com/visago/visago-backend/internal/domain"
)

// Repo provides payment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new payment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const paymentColumns = `
    id, user_id, order_id, booking_id, application_id,
    amount_cents, currency, status, created_at, updated_at`

const getByIDSQL = `
SELECT` + paymentColumns + `
FROM payments
WHERE id = $1`

const getByOrderIDSQL = `
SELECT` + paymentColumns + `
FROM payments
WHERE order_id = $1`

const getByOrderIDForUpdateSQL = `
SELECT` + paymentColumns + `
FROM payments
WHERE order_id = $1
FOR UPDATE`

const latestByApplicationSQL = `
SELECT` + paymentColumns + `
FROM payments
WHERE application_id = $1
ORDER BY created_at DESC
LIMIT 1`

const createSQL = `
INSERT INTO payments (user_id, order_id, booking_id, application_id, amount_cents, currency)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING` + paymentColumns

const updateStatusSQL = `
UPDATE payments
SET status     = $2,
    updated_at = now()
WHERE id = $1 AND status NOT IN ('completed', 'failed', 'refunded')
RETURNING` + paymentColumns

// GetByID returns a payment by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPayment(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "payment", id)
	}
	return p, nil
}

// GetByOrderID returns the payment for an external order id.
func (r *Repo) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPayment(querier.QueryRow(ctx, getByOrderIDSQL, orderID))
	if err != nil {
		return nil, postgres.MapError(err, "payment", uuid.Nil)
	}
	return p, nil
}

// GetByOrderIDForUpdate row-locks the payment for the duration of the
// enclosing transaction, serializing concurrent resolutions of one order.
// Must run inside a transaction.
func (r *Repo) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*domain.Payment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPayment(querier.QueryRow(ctx, getByOrderIDForUpdateSQL, orderID))
	if err != nil {
		return nil, postgres.MapError(err, "payment", uuid.Nil)
	}
	return p, nil
}

// GetLatestByApplication returns the most recent payment that targeted the
// application, or domain.ErrNotFound when none exists.
func (r *Repo) GetLatestByApplication(ctx context.Context, applicationID uuid.UUID) (*domain.Payment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPayment(querier.QueryRow(ctx, latestByApplicationSQL, applicationID))
	if err != nil {
		return nil, postgres.MapError(err, "payment", applicationID)
	}
	return p, nil
}

// List returns payments matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select(
		"id", "user_id", "order_id", "booking_id", "application_id",
		"amount_cents", "currency", "status", "created_at", "updated_at",
	).
		From("payments").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.UserID != nil {
		builder = builder.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := []*domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("list payments: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}

	return payments, nil
}

// Create inserts a payment row in the initiated state. A duplicate order id
// surfaces as domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanPayment(querier.QueryRow(ctx, createSQL,
		p.UserID, p.OrderID, p.BookingID, p.ApplicationID,
		p.AmountCents, p.Currency,
	))
	if err != nil {
		return nil, postgres.MapError(err, "payment", uuid.Nil)
	}
	return created, nil
}

// UpdateStatus advances a non-terminal payment. Terminal rows are excluded by
// the predicate itself so re-resolution is a no-op reported as
// domain.ErrInvalidState; callers treating the payment as already resolved
// check the current status first.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus) (*domain.Payment, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	p, err := scanPayment(querier.QueryRow(ctx, updateStatusSQL, id, status.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment %s: %w", id, domain.ErrInvalidState)
		}
		return nil, postgres.MapError(err, "payment", id)
	}
	return p, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p      domain.Payment
		status string
	)

	err := row.Scan(
		&p.ID, &p.UserID, &p.OrderID, &p.BookingID, &p.ApplicationID,
		&p.AmountCents, &p.Currency, &status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Status = domain.PaymentStatus(status)
	return &p, nil
}
