package application

import (
	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/internal/form"
)

// SaveDraftInput holds the parameters for one draft save.
// Fields is the raw sparse payload exactly as the client sent it; keys the
// client did not touch are absent, not empty.
type SaveDraftInput struct {
	ApplicationID *uuid.UUID
	Fields        map[string]any
}

// normalize validates the sparse payload against the form schema and returns
// canonical values. Shape violations on present values become a
// ValidationError; unknown keys and empty values are silently dropped.
func (i *SaveDraftInput) normalize() (domain.FormValues, error) {
	values, errs := form.Normalize(i.Fields)
	if len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}
	return values, nil
}
