// Package application implements the Application repository (the draft store)
// using PostgreSQL. Form fields live in a JSONB column; partial saves merge
// into it with the || operator so a sparse payload only ever touches the keys
// it carries. All owner-path mutations are guarded by user_id and
// status = 'draft' in the statement itself, which is what makes submission
// linearizable under concurrent calls.
package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/visago/visago-backend/internal/adapter/postgres"
	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/internal/form"
)

// Repo provides application persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new application repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const applicationColumns = `
    id, user_id, email, status, is_locked, fields,
    last_autosave_at, submitted_at, created_at, updated_at`

const getByIDSQL = `
SELECT` + applicationColumns + `
FROM applications
WHERE id = $1`

const createSQL = `
INSERT INTO applications (user_id, email, fields)
VALUES ($1, $2, $3)
RETURNING` + applicationColumns

const mergeFieldsSQL = `
UPDATE applications
SET fields           = fields || $3::jsonb,
    email            = COALESCE(NULLIF($4, ''), email),
    status           = 'draft',
    last_autosave_at = now(),
    updated_at       = now()
WHERE id = $1 AND user_id = $2 AND status = 'draft'
RETURNING` + applicationColumns

const submitSQL = `
UPDATE applications
SET status       = 'submitted',
    is_locked    = TRUE,
    submitted_at = now(),
    updated_at   = now()
WHERE id = $1 AND user_id = $2 AND status = 'draft'
RETURNING` + applicationColumns

const unlockSQL = `
UPDATE applications
SET is_locked  = FALSE,
    updated_at = now()
WHERE id = $1 AND status = 'draft'
RETURNING` + applicationColumns

const updateStatusSQL = `
UPDATE applications
SET status     = $3,
    updated_at = now()
WHERE id = $1 AND status = $2
RETURNING` + applicationColumns

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an application by primary key without an ownership filter.
// Callers distinguish Forbidden from NotFound by comparing UserID themselves.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	app, err := scanApplication(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "application", id)
	}
	return app, nil
}

// List returns applications matching the filter, newest first.
// Returns an empty slice (not nil) when nothing matches.
func (r *Repo) List(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select(
		"id", "user_id", "email", "status", "is_locked", "fields",
		"last_autosave_at", "submitted_at", "created_at", "updated_at",
	).
		From("applications").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.UserID != nil {
		builder = builder.Where(sq.Eq{"user_id": *filter.UserID})
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
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := []*domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("list applications: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}

	return apps, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new draft owned by userID and returns the persisted row.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, email string, fields domain.FormValues) (*domain.Application, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	fieldsJSON, err := encodeFields(fields)
	if err != nil {
		return nil, fmt.Errorf("application encode fields: %w", err)
	}

	app, err := scanApplication(querier.QueryRow(ctx, createSQL, userID, email, fieldsJSON))
	if err != nil {
		return nil, postgres.MapError(err, "application", uuid.Nil)
	}
	return app, nil
}

// MergeFields merges the given sparse values into the draft's fields.
// Keys absent from values are untouched in storage; email is refreshed only
// when non-empty. The statement itself enforces ownership and draft status:
// zero rows affected means the row is no longer a draft owned by userID,
// reported as domain.ErrInvalidState (the caller has already distinguished
// NotFound/Forbidden on the preceding read).
func (r *Repo) MergeFields(ctx context.Context, id, userID uuid.UUID, values domain.FormValues, email string) (*domain.Application, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	fieldsJSON, err := encodeFields(values)
	if err != nil {
		return nil, fmt.Errorf("application %s encode fields: %w", id, err)
	}

	app, err := scanApplication(querier.QueryRow(ctx, mergeFieldsSQL, id, userID, fieldsJSON, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", id, domain.ErrInvalidState)
		}
		return nil, postgres.MapError(err, "application", id)
	}
	return app, nil
}

// Submit atomically transitions the draft to submitted, stamping submitted_at
// and locking the row. The conditional update re-checks ownership and draft
// status at write time: of two near-simultaneous submits exactly one sees a
// row, the other gets domain.ErrInvalidState.
func (r *Repo) Submit(ctx context.Context, id, userID uuid.UUID) (*domain.Application, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	app, err := scanApplication(querier.QueryRow(ctx, submitSQL, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", id, domain.ErrInvalidState)
		}
		return nil, postgres.MapError(err, "application", id)
	}
	return app, nil
}

// Unlock clears the lock on a draft, making it editable again after a
// completed payment. Not an error path for non-draft rows: zero rows is
// domain.ErrInvalidState.
func (r *Repo) Unlock(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	app, err := scanApplication(querier.QueryRow(ctx, unlockSQL, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", id, domain.ErrInvalidState)
		}
		return nil, postgres.MapError(err, "application", id)
	}
	return app, nil
}

// UpdateStatus performs an admin review transition. The from status is part
// of the predicate so concurrent transitions cannot both apply.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.ApplicationStatus) (*domain.Application, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	app, err := scanApplication(querier.QueryRow(ctx, updateStatusSQL, id, from.String(), to.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", id, domain.ErrInvalidState)
		}
		return nil, postgres.MapError(err, "application", id)
	}
	return app, nil
}

// ---------------------------------------------------------------------------
// Row scanning and field codec
// ---------------------------------------------------------------------------

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var (
		app         domain.Application
		status      string
		fieldsJSON  []byte
		submittedAt *time.Time
	)

	err := row.Scan(
		&app.ID, &app.UserID, &app.Email, &status, &app.IsLocked, &fieldsJSON,
		&app.LastAutosaveAt, &submittedAt, &app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	app.Status = domain.ApplicationStatus(status)
	app.SubmittedAt = submittedAt

	fields, err := DecodeFields(fieldsJSON)
	if err != nil {
		return nil, fmt.Errorf("application %s decode fields: %w", app.ID, err)
	}
	app.Fields = fields

	return &app, nil
}

func encodeFields(values domain.FormValues) ([]byte, error) {
	if values == nil {
		values = domain.FormValues{}
	}
	return json.Marshal(values)
}

// DecodeFields unmarshals a JSONB fields document back into canonical
// FormValues: JSON arrays are re-typed to []string for schema list fields so
// a save/reload round trip yields identical values.
func DecodeFields(raw []byte) (domain.FormValues, error) {
	values := domain.FormValues{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}

	for key, val := range values {
		spec, ok := form.Fields[key]
		if !ok || spec.Kind != form.KindStringList {
			continue
		}
		items, ok := val.([]any)
		if !ok {
			continue
		}
		list := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		values[key] = list
	}

	return values, nil
}
