package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/pkg/ctxutil"
)

// DocumentWithURL pairs a document row with a signed, time-limited download
// URL from the file store.
type DocumentWithURL struct {
	Document    *domain.Document
	DownloadURL string
}

// ListDocuments returns the caller's documents for an application, each
// decorated with a signed download URL.
func (s *Service) ListDocuments(ctx context.Context, applicationID uuid.UUID) ([]DocumentWithURL, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	app, err := s.apps.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.UserID != userID {
		return nil, domain.ErrForbidden
	}

	docs, err := s.documents.ListByApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	out := make([]DocumentWithURL, 0, len(docs))
	for _, doc := range docs {
		url, err := s.docstore.SignedURL(doc.FilePath, s.urlTTL)
		if err != nil {
			return nil, fmt.Errorf("sign url for document %s: %w", doc.ID, err)
		}
		out = append(out, DocumentWithURL{Document: doc, DownloadURL: url})
	}

	return out, nil
}
