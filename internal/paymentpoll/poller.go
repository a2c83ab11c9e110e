package paymentpoll

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/visago/visago-backend/internal/config"
	"github.com/visago/visago-backend/internal/domain"
)

// FetchFunc looks up the mirrored payment row by external order id.
// domain.ErrNotFound means the row does not exist yet.
type FetchFunc func(ctx context.Context, orderID string) (*domain.Payment, error)

// Poller drives the state machine against the payment mirror on a fixed
// interval. It never talks to the external processor directly.
type Poller struct {
	log         *slog.Logger
	fetch       FetchFunc
	interval    time.Duration
	maxAttempts int
}

// New creates a poller using the configured interval and attempt ceiling.
func New(logger *slog.Logger, fetch FetchFunc, cfg config.PaymentConfig) *Poller {
	return &Poller{
		log:         logger.With("component", "paymentpoll"),
		fetch:       fetch,
		interval:    cfg.PollInterval,
		maxAttempts: cfg.PollMaxAttempts,
	}
}

// Poll resolves the payment outcome for one order. It returns on the first
// terminal observation, at the attempt ceiling, or when ctx is cancelled
// (returning the last observed state with ctx's error). The interval timer
// is released on every return path.
func (p *Poller) Poll(ctx context.Context, orderID string) (State, error) {
	machine := NewMachine(p.maxAttempts)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		state := machine.Observe(p.observe(ctx, orderID))
		if machine.Done() {
			p.log.Info("polling finished", "order_id", orderID, "state", state, "attempts", machine.attempts)
			return state, nil
		}

		select {
		case <-ctx.Done():
			return machine.State(), ctx.Err()
		case <-ticker.C:
		}
	}
}

// observe performs one lookup. Transient lookup failures are logged and
// reported as "no row", which keeps the machine polling.
func (p *Poller) observe(ctx context.Context, orderID string) (domain.PaymentStatus, bool) {
	payment, err := p.fetch(ctx, orderID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			p.log.Warn("payment lookup failed", "order_id", orderID, "error", err)
		}
		return "", false
	}
	return payment.Status, true
}
