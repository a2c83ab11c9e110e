package application

import (
	"context"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/internal/form"
)

// checkCompleteness verifies every submission precondition and collects the
// failures as field errors grouped by section, so the client can point the
// user at the exact tabs that need work.
func (s *Service) checkCompleteness(ctx context.Context, app *domain.Application) error {
	errs := form.MissingRequired(app.Fields)

	docs, err := s.documents.ListByApplication(ctx, app.ID)
	if err != nil {
		return err
	}
	if !domain.HasRequiredDocuments(docs) {
		errs = append(errs, domain.FieldError{
			Field:   "documents",
			Section: form.SectionDeclaration,
			Message: "a photo and a passport scan must both be uploaded",
		})
	}

	if !app.Fields.Bool(form.FieldDeclaration) {
		errs = append(errs, domain.FieldError{
			Field:   form.FieldDeclaration,
			Section: form.SectionDeclaration,
			Message: "declaration must be accepted",
		})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}

	// Eligibility is distinct from completeness: the form is whole, but the
	// nationality cross-check fails. Reported with its own reason.
	if err := domain.CheckEligibility(app.Fields); err != nil {
		return err
	}

	return nil
}
