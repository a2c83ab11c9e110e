//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/visago/visago-backend/internal/adapter/docstore"
	"github.com/visago/visago-backend/internal/adapter/notify"
	"github.com/visago/visago-backend/internal/adapter/payproc"
	"github.com/visago/visago-backend/internal/adapter/postgres"
	applicationrepo "github.com/visago/visago-backend/internal/adapter/postgres/application"
	auditrepo "github.com/visago/visago-backend/internal/adapter/postgres/audit"
	bookingrepo "github.com/visago/visago-backend/internal/adapter/postgres/booking"
	creditrepo "github.com/visago/visago-backend/internal/adapter/postgres/credit"
	documentrepo "github.com/visago/visago-backend/internal/adapter/postgres/document"
	paymentrepo "github.com/visago/visago-backend/internal/adapter/postgres/payment"
	snapshotrepo "github.com/visago/visago-backend/internal/adapter/postgres/snapshot"
	"github.com/visago/visago-backend/internal/adapter/postgres/testhelper"
	authpkg "github.com/visago/visago-backend/internal/auth"
	"github.com/visago/visago-backend/internal/config"
	"github.com/visago/visago-backend/internal/domain"
	adminsvc "github.com/visago/visago-backend/internal/service/admin"
	applicationsvc "github.com/visago/visago-backend/internal/service/application"
	paymentsvc "github.com/visago/visago-backend/internal/service/payment"
	"github.com/visago/visago-backend/internal/transport/middleware"
	"github.com/visago/visago-backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL       string
	Client    *http.Client
	Pool      *pgxpool.Pool
	Documents *documentrepo.Repo
	jwt       *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper). Payments use the stub
// processor; notifications are disabled.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	apps := applicationrepo.New(pool)
	documents := documentrepo.New(pool)
	snapshots := snapshotrepo.New(pool)
	bookings := bookingrepo.New(pool)
	payments := paymentrepo.New(pool)
	credits := creditrepo.New(pool)
	audit := auditrepo.New(pool)

	signer := docstore.NewSigner("https://files.test.local", "test-signing-key")

	paymentCfg := config.PaymentConfig{
		ApplicationFee: 4900,
		PerTravelerFee: 4900,
		Currency:       "USD",
	}

	applicationService := applicationsvc.NewService(
		logger, apps, documents, snapshots, payments, audit, txm,
		signer, &notify.Noop{}, 15*time.Minute,
	)
	paymentService := paymentsvc.NewService(
		logger, bookings, payments, credits, apps, audit, txm,
		&payproc.Stub{}, paymentCfg,
	)
	adminService := adminsvc.NewService(logger, apps, bookings, payments, audit, txm)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	metrics := middleware.NewMetrics(prometheus.NewRegistry())

	router := rest.NewRouter(rest.RouterDeps{
		Applications: rest.NewApplicationHandler(applicationService, logger),
		Payments:     rest.NewPaymentHandler(paymentService, logger),
		Admin:        rest.NewAdminHandler(adminService, logger),
		Health:       rest.NewHealthHandler(pool, "test-version"),
		Tokens:       jwtMgr,
		Middlewares: []middleware.Middleware{
			middleware.RequestID,
			middleware.Recovery(logger),
			metrics.Instrument(),
		},
	})

	srv := httptest.NewServer(router)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:       srv.URL,
		Client:    srv.Client(),
		Pool:      pool,
		Documents: documents,
		jwt:       jwtMgr,
	}
}

// newUserToken mints a bearer token for a fresh applicant identity.
func (ts *testServer) newUserToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	userID := uuid.New()
	token, err := ts.jwt.GenerateAccessToken(userID, string(domain.UserRoleApplicant))
	require.NoError(t, err)
	return userID, token
}

// newAdminToken mints a bearer token carrying the admin role claim.
func (ts *testServer) newAdminToken(t *testing.T) string {
	t.Helper()
	token, err := ts.jwt.GenerateAccessToken(uuid.New(), string(domain.UserRoleAdmin))
	require.NoError(t, err)
	return token
}

// api sends a JSON request and returns the status code plus decoded body.
func (ts *testServer) api(t *testing.T, method, path, token string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp.StatusCode, decoded
}

// data extracts the success envelope payload as an object.
func data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	d, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data object, got: %v", body)
	return d
}

// completeFormFields returns a sparse payload that satisfies every
// submission requirement and the nationality cross-check.
func completeFormFields(email string) map[string]any {
	return map[string]any{
		"given_names":             "Amara",
		"surname":                 "Obi",
		"email":                   email,
		"phone":                   "+2348012345678",
		"gender":                  "female",
		"marital_status":          "single",
		"date_of_birth":           "1990-04-12",
		"country_of_birth":        "Nigeria",
		"nationality":             "Nigerian",
		"occupation":              "engineer",
		"passport_number":         "A1234567",
		"issue_date":              "2020-01-15",
		"expiry_date":             "2030-01-15",
		"issuing_authority":       "Nigerian",
		"address_line1":           "12 Marina Road",
		"city":                    "Lagos",
		"postal_code":             "101241",
		"country_of_residence":    "Nigeria",
		"visa_type":               "tourist",
		"purpose_of_visit":        "holiday",
		"arrival_date":            "2026-10-01",
		"convicted_of_crime":      false,
		"involved_in_terrorism":   false,
		"involved_in_trafficking": false,
		"declaration_accepted":    true,
	}
}

// attachRequiredDocuments inserts the photo and passport rows the
// submission completeness check demands.
func attachRequiredDocuments(t *testing.T, ts *testServer, appID, userID uuid.UUID) {
	t.Helper()
	for _, docType := range []domain.DocumentType{domain.DocumentTypePhoto, domain.DocumentTypePassport} {
		_, err := ts.Documents.Create(t.Context(), &domain.Document{
			ApplicationID: appID,
			UserID:        userID,
			Type:          docType,
			FilePath:      "uploads/" + appID.String() + "/" + string(docType),
			FileName:      string(docType) + ".pdf",
			ContentType:   "application/pdf",
			SizeBytes:     1024,
		})
		require.NoError(t, err)
	}
}
