package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
)

type adminServiceMock struct {
	ListApplicationsFunc        func(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error)
	GetApplicationFunc          func(ctx context.Context, id uuid.UUID) (*domain.Application, error)
	UpdateApplicationStatusFunc func(ctx context.Context, id uuid.UUID, to domain.ApplicationStatus) (*domain.Application, error)
	ListBookingsFunc            func(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
	GetBookingFunc              func(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateTravelerStatusFunc    func(ctx context.Context, id uuid.UUID, to domain.TravelerStatus) (*domain.Traveler, error)
	ListPaymentsFunc            func(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error)
	ListAuditLogFunc            func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error)
}

func (m *adminServiceMock) ListApplications(ctx context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error) {
	return m.ListApplicationsFunc(ctx, filter)
}

func (m *adminServiceMock) GetApplication(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	return m.GetApplicationFunc(ctx, id)
}

func (m *adminServiceMock) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, to domain.ApplicationStatus) (*domain.Application, error) {
	return m.UpdateApplicationStatusFunc(ctx, id, to)
}

func (m *adminServiceMock) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	return m.ListBookingsFunc(ctx, filter)
}

func (m *adminServiceMock) GetBooking(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	return m.GetBookingFunc(ctx, id)
}

func (m *adminServiceMock) UpdateTravelerStatus(ctx context.Context, id uuid.UUID, to domain.TravelerStatus) (*domain.Traveler, error) {
	return m.UpdateTravelerStatusFunc(ctx, id, to)
}

func (m *adminServiceMock) ListPayments(ctx context.Context, filter domain.PaymentFilter) ([]*domain.Payment, error) {
	return m.ListPaymentsFunc(ctx, filter)
}

func (m *adminServiceMock) ListAuditLog(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
	return m.ListAuditLogFunc(ctx, filter)
}

func TestAdminListApplications_ParsesFilter(t *testing.T) {
	t.Parallel()

	svc := &adminServiceMock{
		ListApplicationsFunc: func(_ context.Context, filter domain.ApplicationFilter) ([]*domain.Application, error) {
			if filter.Status == nil || *filter.Status != domain.ApplicationStatusSubmitted {
				t.Errorf("expected submitted filter, got %v", filter.Status)
			}
			if filter.Limit != 10 || filter.Offset != 20 {
				t.Errorf("expected limit 10 offset 20, got %d/%d", filter.Limit, filter.Offset)
			}
			return []*domain.Application{testApplication()}, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/applications?status=submitted&limit=10&offset=20", nil)
	rec := httptest.NewRecorder()

	h.ListApplications(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminListApplications_NonAdminIs403(t *testing.T) {
	t.Parallel()

	svc := &adminServiceMock{
		ListApplicationsFunc: func(_ context.Context, _ domain.ApplicationFilter) ([]*domain.Application, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/applications", nil)
	rec := httptest.NewRecorder()

	h.ListApplications(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestAdminUpdateApplicationStatus_HappyPath(t *testing.T) {
	t.Parallel()

	appID := uuid.New()
	svc := &adminServiceMock{
		UpdateApplicationStatusFunc: func(_ context.Context, id uuid.UUID, to domain.ApplicationStatus) (*domain.Application, error) {
			if id != appID {
				t.Errorf("expected id %s, got %s", appID, id)
			}
			if to != domain.ApplicationStatusUnderReview {
				t.Errorf("expected under_review, got %s", to)
			}
			app := testApplication()
			app.Status = domain.ApplicationStatusUnderReview
			return app, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/applications/x/status",
		strings.NewReader(`{"status":"under_review"}`))
	req = withURLParam(req, "id", appID.String())
	rec := httptest.NewRecorder()

	h.UpdateApplicationStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminUpdateApplicationStatus_MissingStatus(t *testing.T) {
	t.Parallel()

	h := NewAdminHandler(&adminServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/applications/x/status",
		strings.NewReader(`{}`))
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()

	h.UpdateApplicationStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestAdminUpdateApplicationStatus_IllegalTransitionIs409(t *testing.T) {
	t.Parallel()

	svc := &adminServiceMock{
		UpdateApplicationStatusFunc: func(_ context.Context, _ uuid.UUID, _ domain.ApplicationStatus) (*domain.Application, error) {
			return nil, domain.ErrInvalidState
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/applications/x/status",
		strings.NewReader(`{"status":"completed"}`))
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()

	h.UpdateApplicationStatus(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
}

func TestAdminUpdateTravelerStatus_HappyPath(t *testing.T) {
	t.Parallel()

	travelerID := uuid.New()
	svc := &adminServiceMock{
		UpdateTravelerStatusFunc: func(_ context.Context, id uuid.UUID, to domain.TravelerStatus) (*domain.Traveler, error) {
			if id != travelerID || to != domain.TravelerStatusApproved {
				t.Errorf("unexpected call: %s %s", id, to)
			}
			return &domain.Traveler{ID: travelerID, Status: domain.TravelerStatusApproved}, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/travelers/x/status",
		strings.NewReader(`{"status":"approved"}`))
	req = withURLParam(req, "id", travelerID.String())
	rec := httptest.NewRecorder()

	h.UpdateTravelerStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data travelerResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Data.Status != "approved" {
		t.Errorf("expected approved, got %s", resp.Data.Status)
	}
}

func TestAdminListAuditLog_ParsesEntityFilter(t *testing.T) {
	t.Parallel()

	entityID := uuid.New()
	svc := &adminServiceMock{
		ListAuditLogFunc: func(_ context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
			if filter.EntityType == nil || *filter.EntityType != domain.EntityTypeApplication {
				t.Errorf("expected APPLICATION entity type, got %v", filter.EntityType)
			}
			if filter.EntityID == nil || *filter.EntityID != entityID {
				t.Errorf("expected entity id %s, got %v", entityID, filter.EntityID)
			}
			return []*domain.AuditRecord{
				{ID: uuid.New(), UserID: uuid.New(), EntityType: domain.EntityTypeApplication, Action: domain.AuditActionStatus},
			}, nil
		},
	}
	h := NewAdminHandler(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/admin/audit?entityType=APPLICATION&entityId="+entityID.String(), nil)
	rec := httptest.NewRecorder()

	h.ListAuditLog(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminListAuditLog_BadEntityID(t *testing.T) {
	t.Parallel()

	h := NewAdminHandler(&adminServiceMock{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/audit?entityId=nope", nil)
	rec := httptest.NewRecorder()

	h.ListAuditLog(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
