package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visago/visago-backend/internal/config"
	"github.com/visago/visago-backend/internal/domain"
)

func newTestWebhook(url string) *Webhook {
	return NewWebhook(
		config.NotifyConfig{WebhookURL: url},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestApplicationSubmitted_PostsEvent(t *testing.T) {
	t.Parallel()
	appID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		assert.Equal(t, "application.submitted", ev.Type)
		assert.Equal(t, appID.String(), ev.ApplicationID)
		assert.Equal(t, "amara@example.com", ev.Email)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := newTestWebhook(srv.URL).ApplicationSubmitted(context.Background(), &domain.Application{
		ID:    appID,
		Email: "amara@example.com",
	})
	assert.NoError(t, err)
}

func TestStaffAlert_PostsEvent(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev event
		require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
		assert.Equal(t, "staff.alert", ev.Type)
		assert.Equal(t, "application submitted", ev.Subject)
	}))
	defer srv.Close()

	err := newTestWebhook(srv.URL).StaffAlert(context.Background(), "application submitted", "details")
	assert.NoError(t, err)
}

func TestPost_NonSuccessStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestWebhook(srv.URL).StaffAlert(context.Background(), "s", "b")
	assert.ErrorIs(t, err, domain.ErrExternalService)
}
