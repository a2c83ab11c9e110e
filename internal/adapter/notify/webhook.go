// Package notify delivers fire-and-forget notifications over an outbound
// webhook. Callers treat every delivery as best-effort: a failed notification
// is logged by the caller and never rolls back the operation that caused it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/visago/visago-backend/internal/config"
	"github.com/visago/visago-backend/internal/domain"
)

// Webhook posts notification events to a single configured endpoint.
type Webhook struct {
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

// NewWebhook creates a webhook notifier from configuration.
func NewWebhook(cfg config.NotifyConfig, logger *slog.Logger) *Webhook {
	return &Webhook{
		url:        cfg.WebhookURL,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		log:        logger.With("adapter", "notify"),
	}
}

type event struct {
	Type          string    `json:"type"`
	ApplicationID string    `json:"application_id,omitempty"`
	Email         string    `json:"email,omitempty"`
	Subject       string    `json:"subject,omitempty"`
	Body          string    `json:"body,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ApplicationSubmitted notifies the applicant that their submission was
// accepted.
func (w *Webhook) ApplicationSubmitted(ctx context.Context, app *domain.Application) error {
	return w.post(ctx, event{
		Type:          "application.submitted",
		ApplicationID: app.ID.String(),
		Email:         app.Email,
		OccurredAt:    time.Now().UTC(),
	})
}

// StaffAlert notifies internal staff.
func (w *Webhook) StaffAlert(ctx context.Context, subject, body string) error {
	return w.post(ctx, event{
		Type:       "staff.alert",
		Subject:    subject,
		Body:       body,
		OccurredAt: time.Now().UTC(),
	})
}

func (w *Webhook) post(ctx context.Context, ev event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("notify: encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notify: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: %s: %w: %w", ev.Type, err, domain.ErrExternalService)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notify: %s: status %d: %w", ev.Type, resp.StatusCode, domain.ErrExternalService)
	}

	w.log.DebugContext(ctx, "notification delivered", slog.String("type", ev.Type))
	return nil
}
