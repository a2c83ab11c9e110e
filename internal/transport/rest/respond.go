package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/visago/visago-backend/internal/domain"
)

// successResponse is the envelope for every successful response.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// errorResponse is the envelope for every failed response. Details is only
// set for validation failures.
type errorResponse struct {
	Error   string            `json:"error"`
	Details []validationIssue `json:"details,omitempty"`
}

// validationIssue is one field-level problem in a rejected payload. Section
// points at the form section the field belongs to, when known.
type validationIssue struct {
	Field   string `json:"field"`
	Section string `json:"section,omitempty"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	details := make([]validationIssue, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		details = append(details, validationIssue{
			Field:   fe.Field,
			Section: fe.Section,
			Message: fe.Message,
		})
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:   "validation failed",
		Details: details,
	})
}

// handleError maps a service error onto the HTTP failure taxonomy. Unknown
// errors are logged and reported as an opaque 500.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr)
	case errors.Is(err, domain.ErrIneligible):
		writeError(w, http.StatusBadRequest, domain.EligibilityReason)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrExternalService):
		writeError(w, http.StatusBadGateway, "upstream service unavailable")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
