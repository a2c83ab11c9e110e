package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/pkg/ctxutil"
)

type testDeps struct {
	apps     *mockApplicationRepo
	bookings *mockBookingRepo
	payments *mockPaymentRepo
	audit    *mockAuditRepo
}

func newTestService(t *testing.T) (*Service, *testDeps) {
	t.Helper()
	deps := &testDeps{
		apps:     &mockApplicationRepo{},
		bookings: &mockBookingRepo{},
		payments: &mockPaymentRepo{},
		audit:    &mockAuditRepo{},
	}
	svc := NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		deps.apps, deps.bookings, deps.payments, deps.audit, &mockTxManager{},
	)
	return svc, deps
}

func adminCtx() context.Context {
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	return ctxutil.WithUserRole(ctx, domain.UserRoleAdmin.String())
}

func applicantCtx() context.Context {
	ctx := ctxutil.WithUserID(context.Background(), uuid.New())
	return ctxutil.WithUserRole(ctx, domain.UserRoleApplicant.String())
}

func TestListApplications_RequiresAdminRole(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.ListApplications(context.Background(), domain.ApplicationFilter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.ListApplications(applicantCtx(), domain.ApplicationFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListApplications_DefaultsPageSize(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)

	_, err := svc.ListApplications(adminCtx(), domain.ApplicationFilter{})
	require.NoError(t, err)
	assert.Equal(t, defaultPageSize, deps.apps.lastFilter.Limit)
}

func TestListApplications_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	bad := domain.ApplicationStatus("archived")
	_, err := svc.ListApplications(adminCtx(), domain.ApplicationFilter{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdateApplicationStatus_HappyPath(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)
	id := uuid.New()
	deps.apps.GetByIDFunc = func(_ context.Context, appID uuid.UUID) (*domain.Application, error) {
		return &domain.Application{ID: appID, Status: domain.ApplicationStatusSubmitted}, nil
	}

	updated, err := svc.UpdateApplicationStatus(adminCtx(), id, domain.ApplicationStatusUnderReview)
	require.NoError(t, err)

	assert.Equal(t, domain.ApplicationStatusUnderReview, updated.Status)
	require.Len(t, deps.audit.records, 1)
	assert.Equal(t, domain.AuditActionStatus, deps.audit.records[0].Action)
	assert.Equal(t, "submitted", deps.audit.records[0].Changes["from"])
	assert.Equal(t, "under_review", deps.audit.records[0].Changes["to"])
}

func TestUpdateApplicationStatus_IllegalTransition(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)
	deps.apps.GetByIDFunc = func(_ context.Context, appID uuid.UUID) (*domain.Application, error) {
		return &domain.Application{ID: appID, Status: domain.ApplicationStatusDraft}, nil
	}

	// draft -> submitted belongs to the owner's Submit, not admin review
	_, err := svc.UpdateApplicationStatus(adminCtx(), uuid.New(), domain.ApplicationStatusSubmitted)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, deps.audit.records)
}

func TestUpdateApplicationStatus_SkippingReviewStage(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)
	deps.apps.GetByIDFunc = func(_ context.Context, appID uuid.UUID) (*domain.Application, error) {
		return &domain.Application{ID: appID, Status: domain.ApplicationStatusSubmitted}, nil
	}

	_, err := svc.UpdateApplicationStatus(adminCtx(), uuid.New(), domain.ApplicationStatusApproved)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdateApplicationStatus_ConcurrentTransitionLoses(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)
	deps.apps.GetByIDFunc = func(_ context.Context, appID uuid.UUID) (*domain.Application, error) {
		return &domain.Application{ID: appID, Status: domain.ApplicationStatusSubmitted}, nil
	}
	deps.apps.UpdateStatusFunc = func(_ context.Context, appID uuid.UUID, _, _ domain.ApplicationStatus) (*domain.Application, error) {
		return nil, domain.ErrInvalidState // another admin got there first
	}

	_, err := svc.UpdateApplicationStatus(adminCtx(), uuid.New(), domain.ApplicationStatusUnderReview)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, deps.audit.records)
}

func TestUpdateTravelerStatus_HappyPath(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)
	id := uuid.New()
	deps.bookings.GetTravelerFunc = func(_ context.Context, tid uuid.UUID) (*domain.Traveler, error) {
		return &domain.Traveler{ID: tid, Status: domain.TravelerStatusUnderReview}, nil
	}

	updated, err := svc.UpdateTravelerStatus(adminCtx(), id, domain.TravelerStatusApproved)
	require.NoError(t, err)

	assert.Equal(t, domain.TravelerStatusApproved, updated.Status)
	require.Len(t, deps.audit.records, 1)
	assert.Equal(t, domain.EntityTypeTraveler, deps.audit.records[0].EntityType)
}

func TestUpdateTravelerStatus_IllegalTransition(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)
	deps.bookings.GetTravelerFunc = func(_ context.Context, tid uuid.UUID) (*domain.Traveler, error) {
		return &domain.Traveler{ID: tid, Status: domain.TravelerStatusPending}, nil
	}

	_, err := svc.UpdateTravelerStatus(adminCtx(), uuid.New(), domain.TravelerStatusApproved)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestGetApplication_RequiresAdmin(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, err := svc.GetApplication(applicantCtx(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListAuditLog_PassesFilter(t *testing.T) {
	t.Parallel()
	svc, deps := newTestService(t)
	entity := domain.EntityTypePayment
	deps.audit.ListFunc = func(_ context.Context, filter domain.AuditFilter) ([]*domain.AuditRecord, error) {
		assert.NotNil(t, filter.EntityType)
		assert.Equal(t, entity, *filter.EntityType)
		return []*domain.AuditRecord{{EntityType: entity}}, nil
	}

	records, err := svc.ListAuditLog(adminCtx(), domain.AuditFilter{EntityType: &entity})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
