// Package autosave decides when the current draft state is pushed to the
// server. It owns the in-memory form document, debounces rapid edits into one
// save, flushes immediately on the named lifecycle triggers, and keeps at
// most one save in flight per draft. Sparse server-side writes make every
// save safe to repeat, so a dropped save is only ever coalesced, not lost.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/visago/visago-backend/internal/domain"
	"github.com/visago/visago-backend/internal/form"
)

// DefaultDebounce is how long after the last edit the autosave fires.
const DefaultDebounce = 300 * time.Millisecond

// SaveFunc pushes the draft state to the server. A nil id creates a new
// draft; the returned application carries the canonical (possibly newly
// generated) id.
type SaveFunc func(ctx context.Context, id *uuid.UUID, values domain.FormValues) (*domain.Application, error)

// Trigger names the event that caused a save.
type Trigger string

const (
	TriggerEdit     Trigger = "edit"     // debounced field mutation
	TriggerHide     Trigger = "hide"     // tab/document became hidden
	TriggerNavigate Trigger = "navigate" // switching form sections
	TriggerExit     Trigger = "exit"     // explicit save & exit
)

// Explicit reports whether a failed save is surfaced to the caller.
// Autosave failures stay silent and are retried by the next trigger.
func (t Trigger) Explicit() bool {
	return t == TriggerNavigate || t == TriggerExit
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithDebounce overrides the edit debounce interval.
func WithDebounce(d time.Duration) Option {
	return func(o *Orchestrator) { o.debounce = d }
}

// Orchestrator owns one draft's save lifecycle. All methods are safe for
// concurrent use; the debounce timer fires on its own goroutine.
type Orchestrator struct {
	log      *slog.Logger
	save     SaveFunc
	baseCtx  context.Context
	debounce time.Duration

	mu          sync.Mutex
	values      domain.FormValues
	draftID     *uuid.UUID
	timer       *time.Timer
	saving      bool
	lastSavedAt time.Time
	closed      bool
}

// New creates an orchestrator around an initial draft state. draftID is nil
// for a draft that has never been persisted; ctx bounds the timer-driven
// autosaves.
func New(ctx context.Context, logger *slog.Logger, save SaveFunc, draftID *uuid.UUID, initial domain.FormValues, opts ...Option) *Orchestrator {
	if initial == nil {
		initial = domain.FormValues{}
	}
	o := &Orchestrator{
		log:      logger.With("component", "autosave"),
		save:     save,
		baseCtx:  ctx,
		debounce: DefaultDebounce,
		values:   initial.Clone(),
		draftID:  draftID,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Edit records a field mutation and restarts the debounce timer. The pending
// timer (if any) is cancelled and replaced, so a burst of keystrokes
// coalesces into a single save.
func (o *Orchestrator) Edit(key string, value any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}

	o.values[key] = value

	if o.timer != nil {
		o.timer.Stop()
	}
	o.timer = time.AfterFunc(o.debounce, func() {
		_ = o.doSave(o.baseCtx, TriggerEdit)
	})
}

// Flush saves the current state immediately, bypassing the debounce. The
// error is nil for non-explicit triggers even when the save failed.
func (o *Orchestrator) Flush(ctx context.Context, trigger Trigger) error {
	o.mu.Lock()
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.mu.Unlock()

	return o.doSave(ctx, trigger)
}

// doSave runs one save attempt. A save already in flight drops this one: the
// next trigger resends the full current state, so nothing is lost. A draft
// that has no id yet and no surname is skipped so idle edits never create
// empty rows.
func (o *Orchestrator) doSave(ctx context.Context, trigger Trigger) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return nil
	}
	if o.saving {
		o.log.Debug("save already in flight, dropped", "trigger", trigger)
		o.mu.Unlock()
		return nil
	}
	if o.draftID == nil && o.values.Str(form.FieldSurname) == "" {
		o.mu.Unlock()
		return nil
	}
	snapshot := o.values.Clone()
	id := o.draftID
	o.saving = true
	o.mu.Unlock()

	app, err := o.save(ctx, id, snapshot)

	o.mu.Lock()
	defer o.mu.Unlock()
	o.saving = false

	if err != nil {
		if trigger.Explicit() {
			return err
		}
		o.log.Warn("autosave failed", "trigger", trigger, "error", err)
		return nil
	}

	o.draftID = &app.ID
	o.lastSavedAt = time.Now()
	return nil
}

// DraftID returns the persisted draft id, or nil before the first
// successful save.
func (o *Orchestrator) DraftID() *uuid.UUID {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.draftID == nil {
		return nil
	}
	id := *o.draftID
	return &id
}

// LastSavedAt returns the time of the last successful save and whether one
// has happened yet.
func (o *Orchestrator) LastSavedAt() (time.Time, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastSavedAt, !o.lastSavedAt.IsZero()
}

// Close cancels any pending debounce timer. Subsequent edits and flushes are
// no-ops.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
}
