// Package snapshot implements the ApplicationSnapshot repository using
// PostgreSQL. Exactly one snapshot exists per application (unique index);
// a duplicate write surfaces as domain.ErrAlreadyExists, which is how a
// retried submission detects the first attempt already landed.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/visago/visago-backend/internal/adapter/postgres"
	"github.com/visago/visago-backend/internal/adapter/postgres/application"
	"github.com/visago/visago-backend/internal/domain"
)

// Repo provides snapshot persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new snapshot repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const snapshotColumns = `
    id, application_id, user_id, email, fields,
    booking_id, payment_id, created_at`

const getByApplicationSQL = `
SELECT` + snapshotColumns + `
FROM application_snapshots
WHERE application_id = $1`

const createSQL = `
INSERT INTO application_snapshots (application_id, user_id, email, fields, booking_id, payment_id)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING` + snapshotColumns

// GetByApplication returns the immutable submission snapshot.
func (r *Repo) GetByApplication(ctx context.Context, applicationID uuid.UUID) (*domain.ApplicationSnapshot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	snap, err := scanSnapshot(querier.QueryRow(ctx, getByApplicationSQL, applicationID))
	if err != nil {
		return nil, postgres.MapError(err, "snapshot", applicationID)
	}
	return snap, nil
}

// Create writes the submission snapshot. Runs inside the submission
// transaction alongside the status flip.
func (r *Repo) Create(ctx context.Context, snap *domain.ApplicationSnapshot) (*domain.ApplicationSnapshot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	fieldsJSON, err := json.Marshal(snap.Fields)
	if err != nil {
		return nil, fmt.Errorf("snapshot encode fields: %w", err)
	}

	created, err := scanSnapshot(querier.QueryRow(ctx, createSQL,
		snap.ApplicationID, snap.UserID, snap.Email, fieldsJSON,
		snap.BookingID, snap.PaymentID,
	))
	if err != nil {
		return nil, postgres.MapError(err, "snapshot", snap.ApplicationID)
	}
	return created, nil
}

func scanSnapshot(row pgx.Row) (*domain.ApplicationSnapshot, error) {
	var (
		snap       domain.ApplicationSnapshot
		fieldsJSON []byte
	)

	err := row.Scan(
		&snap.ID, &snap.ApplicationID, &snap.UserID, &snap.Email, &fieldsJSON,
		&snap.BookingID, &snap.PaymentID, &snap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	fields, err := application.DecodeFields(fieldsJSON)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s decode fields: %w", snap.ID, err)
	}
	snap.Fields = fields

	return &snap, nil
}
