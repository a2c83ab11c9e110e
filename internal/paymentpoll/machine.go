// Package paymentpoll resolves the asynchronous outcome of a payment after
// the external checkout redirect. A pure state machine decides the state
// after each observation of the mirrored payment row; the Poller drives it on
// a fixed interval with a bounded attempt count.
package paymentpoll

import "github.com/visago/visago-backend/internal/domain"

// State is the poller's view of the payment outcome.
type State string

const (
	StateLoading   State = "loading"
	StatePending   State = "pending"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
	StateRefunded  State = "refunded"
	StateNotFound  State = "not_found"
)

func (s State) String() string { return string(s) }

// Terminal reports whether polling must stop on this state.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateFailed, StateRefunded, StateNotFound:
		return true
	}
	return false
}

// Machine is the pure transition core: it consumes one observation per poll
// attempt and yields the resulting state. Terminal states latch on first
// observation. A missing row counts as pending until the attempt ceiling;
// the ceiling yields not_found only if no row was ever seen, because a row
// that exists but is slow to complete is a different situation from an order
// the service never heard about.
type Machine struct {
	state       State
	attempts    int
	maxAttempts int
	rowSeen     bool
}

// NewMachine creates a machine with the given attempt ceiling.
func NewMachine(maxAttempts int) *Machine {
	return &Machine{state: StateLoading, maxAttempts: maxAttempts}
}

// Observe applies one poll attempt. found is false when the payment row does
// not exist yet (or the lookup failed transiently); status is ignored in
// that case.
func (m *Machine) Observe(status domain.PaymentStatus, found bool) State {
	if m.state.Terminal() {
		return m.state
	}
	m.attempts++

	if found {
		m.rowSeen = true
		switch status {
		case domain.PaymentStatusCompleted:
			m.state = StateCompleted
		case domain.PaymentStatusFailed:
			m.state = StateFailed
		case domain.PaymentStatusRefunded:
			m.state = StateRefunded
		default:
			m.state = StatePending
		}
		return m.state
	}

	if m.attempts >= m.maxAttempts && !m.rowSeen {
		m.state = StateNotFound
		return m.state
	}
	m.state = StatePending
	return m.state
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Done reports whether polling should stop: a terminal state was reached or
// the attempt ceiling is exhausted.
func (m *Machine) Done() bool {
	return m.state.Terminal() || m.attempts >= m.maxAttempts
}
