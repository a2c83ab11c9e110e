package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
)

// adminService defines the minimal interface needed by AdminHandler.
type adminService interface {
	ListApplications(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, to domain.ApplicationStatus) (*domain.Application, error)
	ListBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateTravelerStatus(ctx context.Context, id uuid.UUID, to domain.TravelerStatus) (*domain.Traveler, error)
	ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error)
	ListAuditLog(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error)
}

// AdminHandler serves the review-side endpoints under /api/v1/admin.
// Role enforcement lives in the admin service, not here.
type AdminHandler struct {
	svc adminService
	log *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(svc adminService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: logger.With("handler", "admin")}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type auditRecordResponse struct {
	ID         string         `json:"id"`
	UserID     string         `json:"userId"`
	EntityType string         `json:"entityType"`
	EntityID   *string        `json:"entityId,omitempty"`
	Action     string         `json:"action"`
	Changes    map[string]any `json:"changes,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// ListApplications handles GET /api/v1/admin/applications?status=&limit=&offset=.
func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	filter := domain.ApplicationFilter{}
	filter.Limit, filter.Offset = parsePageParams(r)
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.ApplicationStatus(v)
		filter.Status = &status
	}

	apps, err := h.svc.ListApplications(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	writeSuccess(w, http.StatusOK, out)
}

// GetApplication handles GET /api/v1/admin/applications/{id}.
func (h *AdminHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	app, err := h.svc.GetApplication(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, toApplicationResponse(app))
}

// UpdateApplicationStatus handles PATCH /api/v1/admin/applications/{id}/status.
func (h *AdminHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateRequest(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	app, err := h.svc.UpdateApplicationStatus(r.Context(), id, domain.ApplicationStatus(req.Status))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, toApplicationResponse(app))
}

// ListBookings handles GET /api/v1/admin/bookings?paymentStatus=&limit=&offset=.
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter := domain.BookingFilter{}
	filter.Limit, filter.Offset = parsePageParams(r)
	if v := r.URL.Query().Get("paymentStatus"); v != "" {
		status := domain.PaymentStatus(v)
		filter.PaymentStatus = &status
	}

	bookings, err := h.svc.ListBookings(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	writeSuccess(w, http.StatusOK, out)
}

// GetBooking handles GET /api/v1/admin/bookings/{id}.
func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	booking, err := h.svc.GetBooking(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, toBookingResponse(booking))
}

// UpdateTravelerStatus handles PATCH /api/v1/admin/travelers/{id}/status.
func (h *AdminHandler) UpdateTravelerStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validateRequest(&req); err != nil {
		writeValidationError(w, err)
		return
	}

	traveler, err := h.svc.UpdateTravelerStatus(r.Context(), id, domain.TravelerStatus(req.Status))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, toTravelerResponse(traveler))
}

// ListPayments handles GET /api/v1/admin/payments?status=&limit=&offset=.
func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	filter := domain.PaymentFilter{}
	filter.Limit, filter.Offset = parsePageParams(r)
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.PaymentStatus(v)
		filter.Status = &status
	}

	payments, err := h.svc.ListPayments(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	writeSuccess(w, http.StatusOK, out)
}

// ListAuditLog handles GET /api/v1/admin/audit?entityType=&entityId=&limit=&offset=.
func (h *AdminHandler) ListAuditLog(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{}
	filter.Limit, filter.Offset = parsePageParams(r)
	if v := r.URL.Query().Get("entityType"); v != "" {
		et := domain.EntityType(v)
		filter.EntityType = &et
	}
	if v := r.URL.Query().Get("entityId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid entityId")
			return
		}
		filter.EntityID = &id
	}

	records, err := h.svc.ListAuditLog(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]auditRecordResponse, 0, len(records))
	for _, rec := range records {
		resp := auditRecordResponse{
			ID:         rec.ID.String(),
			UserID:     rec.UserID.String(),
			EntityType: rec.EntityType.String(),
			Action:     string(rec.Action),
			Changes:    rec.Changes,
			CreatedAt:  rec.CreatedAt,
		}
		if rec.EntityID != nil {
			s := rec.EntityID.String()
			resp.EntityID = &s
		}
		out = append(out, resp)
	}
	writeSuccess(w, http.StatusOK, out)
}

func parsePageParams(r *http.Request) (limit, offset int) {
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
