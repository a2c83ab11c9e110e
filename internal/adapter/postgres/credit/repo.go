// Package credit implements the ApplicationCredit repository using
// PostgreSQL. Redemption runs inside a transaction: ConsumeOldest picks one
// available credit with FOR UPDATE SKIP LOCKED so two concurrent redemptions
// by the same user never consume the same row, then Mark ties it to the draft
// created in the same transaction.
package credit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/visago/visago-backend/internal/adapter/postgres"
	"github.com/visago/visago-backend/internal/domain"
)

// Repo provides application credit persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new credit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const creditColumns = `
    id, user_id, payment_id, status, consumed_by_application_id,
    created_at, consumed_at`

const listAvailableSQL = `
SELECT` + creditColumns + `
FROM application_credits
WHERE user_id = $1 AND status = 'available'
ORDER BY created_at`

const lockOldestAvailableSQL = `
SELECT` + creditColumns + `
FROM application_credits
WHERE user_id = $1 AND status = 'available'
ORDER BY created_at
LIMIT 1
FOR UPDATE SKIP LOCKED`

const mintSQL = `
INSERT INTO application_credits (user_id, payment_id)
VALUES ($1, $2)
RETURNING` + creditColumns

const markConsumedSQL = `
UPDATE application_credits
SET status                     = 'consumed',
    consumed_by_application_id = $2,
    consumed_at                = now()
WHERE id = $1 AND status = 'available'
RETURNING` + creditColumns

// ListAvailable returns the user's unredeemed credits, oldest first.
func (r *Repo) ListAvailable(ctx context.Context, userID uuid.UUID) ([]*domain.ApplicationCredit, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listAvailableSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list credits: %w", err)
	}
	defer rows.Close()

	credits := []*domain.ApplicationCredit{}
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("list credits: %w", err)
		}
		credits = append(credits, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list credits: %w", err)
	}

	return credits, nil
}

// LockOldestAvailable row-locks and returns the user's oldest available
// credit within the enclosing transaction. SKIP LOCKED makes concurrent
// redemptions take distinct rows; no row left means no credit, reported as
// domain.ErrNotFound. Must run inside a transaction.
func (r *Repo) LockOldestAvailable(ctx context.Context, userID uuid.UUID) (*domain.ApplicationCredit, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCredit(querier.QueryRow(ctx, lockOldestAvailableSQL, userID))
	if err != nil {
		return nil, postgres.MapError(err, "credit", uuid.Nil)
	}
	return c, nil
}

// Mint creates an available credit funded by a completed payment.
func (r *Repo) Mint(ctx context.Context, userID, paymentID uuid.UUID) (*domain.ApplicationCredit, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCredit(querier.QueryRow(ctx, mintSQL, userID, paymentID))
	if err != nil {
		return nil, postgres.MapError(err, "credit", paymentID)
	}
	return c, nil
}

// MarkConsumed flips a previously locked credit to consumed and records the
// application it paid for. Zero rows means the credit was no longer
// available, reported as domain.ErrInvalidState.
func (r *Repo) MarkConsumed(ctx context.Context, id, applicationID uuid.UUID) (*domain.ApplicationCredit, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCredit(querier.QueryRow(ctx, markConsumedSQL, id, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("credit %s: %w", id, domain.ErrInvalidState)
		}
		return nil, postgres.MapError(err, "credit", id)
	}
	return c, nil
}

func scanCredit(row pgx.Row) (*domain.ApplicationCredit, error) {
	var (
		c      domain.ApplicationCredit
		status string
	)

	err := row.Scan(
		&c.ID, &c.UserID, &c.PaymentID, &status, &c.ConsumedByApplicationID,
		&c.CreatedAt, &c.ConsumedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Status = domain.CreditStatus(status)
	return &c, nil
}
