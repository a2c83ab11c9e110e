// Package document implements the Document repository using PostgreSQL.
// Document rows are metadata only; file bodies live in the external store.
package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/visago/visago-backend/internal/adapter/postgres"
	"github.com/visago/visago-backend/internal/domain"
)

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const documentColumns = `
    id, application_id, user_id, doc_type, file_path,
    file_name, content_type, size_bytes, created_at`

const getByIDSQL = `
SELECT` + documentColumns + `
FROM documents
WHERE id = $1`

const listByApplicationSQL = `
SELECT` + documentColumns + `
FROM documents
WHERE application_id = $1
ORDER BY created_at`

const createSQL = `
INSERT INTO documents (application_id, user_id, doc_type, file_path, file_name, content_type, size_bytes)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING` + documentColumns

const deleteSQL = `
DELETE FROM documents
WHERE id = $1 AND user_id = $2`

// GetByID returns a document by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	doc, err := scanDocument(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "document", id)
	}
	return doc, nil
}

// ListByApplication returns all documents attached to an application,
// oldest first. Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByApplicationSQL, applicationID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []*domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	return docs, nil
}

// Create inserts a document metadata row and returns the persisted row.
func (r *Repo) Create(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanDocument(querier.QueryRow(ctx, createSQL,
		doc.ApplicationID, doc.UserID, doc.Type.String(),
		doc.FilePath, doc.FileName, doc.ContentType, doc.SizeBytes,
	))
	if err != nil {
		return nil, postgres.MapError(err, "document", doc.ApplicationID)
	}
	return created, nil
}

// Delete removes a document owned by userID. Zero rows is domain.ErrNotFound.
func (r *Repo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "document", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var (
		doc     domain.Document
		docType string
	)

	err := row.Scan(
		&doc.ID, &doc.ApplicationID, &doc.UserID, &docType, &doc.FilePath,
		&doc.FileName, &doc.ContentType, &doc.SizeBytes, &doc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Type = domain.DocumentType(docType)
	return &doc, nil
}
