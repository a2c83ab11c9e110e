package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/internal/service/application"
)

// applicationService defines the minimal interface needed by ApplicationHandler.
type applicationService interface {
	SaveDraft(ctx context.Context, input application.SaveDraftInput) (*domain.Application, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	Submit(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	ListDocuments(ctx context.Context, applicationID uuid.UUID) ([]application.DocumentWithURL, error)
}

// ApplicationHandler serves the applicant-facing draft and submission endpoints.
type ApplicationHandler struct {
	svc applicationService
	log *slog.Logger
}

// NewApplicationHandler creates an ApplicationHandler.
func NewApplicationHandler(svc applicationService, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{svc: svc, log: logger.With("handler", "applications")}
}

type saveDraftRequest struct {
	ApplicationID *string        `json:"applicationId"`
	Fields        map[string]any `json:"fields"`
}

type applicationResponse struct {
	ID             string            `json:"id"`
	Email          string            `json:"email"`
	Status         string            `json:"status"`
	IsLocked       bool              `json:"isLocked"`
	Fields         domain.FormValues `json:"fields"`
	LastAutosaveAt time.Time         `json:"lastAutosaveAt"`
	SubmittedAt    *time.Time        `json:"submittedAt,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type documentResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	DownloadURL string    `json:"downloadUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SaveDraft handles POST /api/v1/applications/draft.
// A missing applicationId creates a new draft; a present one updates it.
func (h *ApplicationHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req saveDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := application.SaveDraftInput{Fields: req.Fields}
	if req.ApplicationID != nil {
		id, err := uuid.Parse(*req.ApplicationID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid application id")
			return
		}
		input.ApplicationID = &id
	}

	app, err := h.svc.SaveDraft(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if req.ApplicationID == nil {
		status = http.StatusCreated
	}
	writeSuccess(w, status, toApplicationResponse(app))
}

// Get handles GET /api/v1/applications/{id}.
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	app, err := h.svc.Get(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, toApplicationResponse(app))
}

// Submit handles POST /api/v1/applications/{id}/submit.
func (h *ApplicationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	app, err := h.svc.Submit(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, toApplicationResponse(app))
}

// ListDocuments handles GET /api/v1/applications/{id}/documents.
func (h *ApplicationHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	docs, err := h.svc.ListDocuments(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentResponse{
			ID:          d.Document.ID.String(),
			Type:        string(d.Document.Type),
			FileName:    d.Document.FileName,
			ContentType: d.Document.ContentType,
			SizeBytes:   d.Document.SizeBytes,
			DownloadURL: d.DownloadURL,
			CreatedAt:   d.Document.CreatedAt,
		})
	}
	writeSuccess(w, http.StatusOK, out)
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func toApplicationResponse(app *domain.Application) applicationResponse {
	return applicationResponse{
		ID:             app.ID.String(),
		Email:          app.Email,
		Status:         app.Status.String(),
		IsLocked:       app.IsLocked,
		Fields:         app.Fields,
		LastAutosaveAt: app.LastAutosaveAt,
		SubmittedAt:    app.SubmittedAt,
		CreatedAt:      app.CreatedAt,
		UpdatedAt:      app.UpdatedAt,
	}
}
