// Package payproc is the HTTP client for the external payment processor.
// The processor performs authorization and capture entirely on its side; this
// client only creates orders and hands the order id back to the core, which
// mirrors it in its own payment row.
package payproc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/visago/visago-backend/internal/config"
	"github.com/visago/visago-backend/internal/domain"
)

// Client creates orders with the payment processor.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a processor client from configuration.
func NewClient(cfg config.PaymentConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		log:        logger.With("adapter", "payproc"),
	}
}

type createOrderRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

type createOrderResponse struct {
	OrderID string `json:"order_id"`
}

// CreateOrder creates an order and returns the processor's order id.
// Failures wrap domain.ErrExternalService so callers report them as a
// processor problem, not a validation or storage one.
func (c *Client) CreateOrder(ctx context.Context, amountCents int64, currency string) (string, error) {
	payload, err := json.Marshal(createOrderRequest{AmountCents: amountCents, Currency: currency})
	if err != nil {
		return "", fmt.Errorf("payproc: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("payproc: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.doWithRetry(ctx, req, payload)
	if err != nil {
		c.log.ErrorContext(ctx, "payproc request failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("payproc: request failed: %w: %w", err, domain.ErrExternalService)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("payproc: unexpected status %d: %w", resp.StatusCode, domain.ErrExternalService)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("payproc: read body: %w: %w", err, domain.ErrExternalService)
	}

	var out createOrderResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("payproc: decode json: %w: %w", err, domain.ErrExternalService)
	}
	if out.OrderID == "" {
		return "", fmt.Errorf("payproc: empty order id: %w", domain.ErrExternalService)
	}

	c.log.DebugContext(ctx, "payproc order created",
		slog.String("order_id", out.OrderID), slog.Int64("amount_cents", amountCents))
	return out.OrderID, nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The body is rebuilt for the retry because the first attempt
// consumed it.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, payload []byte) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "payproc retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	time.Sleep(500 * time.Millisecond)

	retry := req.Clone(ctx)
	retry.Body = io.NopCloser(bytes.NewReader(payload))
	return c.httpClient.Do(retry)
}
