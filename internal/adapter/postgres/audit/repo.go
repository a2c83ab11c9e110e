// Package audit implements the append-only audit log using PostgreSQL.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/visago/visago-backend/internal/adapter/postgres"
	"github.com/visago/visago-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const auditColumns = `
    id, user_id, entity_type, entity_id, action, changes, created_at`

const recordSQL = `
INSERT INTO audit_log (user_id, entity_type, entity_id, action, changes)
VALUES ($1, $2, $3, $4, $5)
RETURNING` + auditColumns

// Record appends one audit entry. Callers run it inside the transaction of
// the state change it describes so the log never diverges from the data.
func (r *Repo) Record(ctx context.Context, rec *domain.AuditRecord) (*domain.AuditRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	changesJSON, err := json.Marshal(rec.Changes)
	if err != nil {
		return nil, fmt.Errorf("audit encode changes: %w", err)
	}

	created, err := scanRecord(querier.QueryRow(ctx, recordSQL,
		rec.UserID, rec.EntityType.String(), rec.EntityID, rec.Action.String(), changesJSON,
	))
	if err != nil {
		return nil, postgres.MapError(err, "audit", uuid.Nil)
	}
	return created, nil
}

// List returns audit entries matching the filter, newest first.
func (r *Repo) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select(
		"id", "user_id", "entity_type", "entity_id", "action", "changes", "created_at",
	).
		From("audit_log").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.EntityType != nil {
		builder = builder.Where(sq.Eq{"entity_type": filter.EntityType.String()})
	}
	if filter.EntityID != nil {
		builder = builder.Where(sq.Eq{"entity_id": *filter.EntityID})
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
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}
	defer rows.Close()

	records := []*domain.AuditRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list audit: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.Row) (*domain.AuditRecord, error) {
	var (
		rec         domain.AuditRecord
		entityType  string
		action      string
		changesJSON []byte
	)

	err := row.Scan(
		&rec.ID, &rec.UserID, &entityType, &rec.EntityID, &action, &changesJSON, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.EntityType = domain.EntityType(entityType)
	rec.Action = domain.AuditAction(action)

	if len(changesJSON) > 0 {
		if err := json.Unmarshal(changesJSON, &rec.Changes); err != nil {
			return nil, fmt.Errorf("audit %s decode changes: %w", rec.ID, err)
		}
	}

	return &rec, nil
}
