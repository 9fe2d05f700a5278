package capture

import (
	"fmt"
	"sync"

	"github.com/mfkiwl/piksi-sample-grabber/internal/ports"
)

// State represents the lifecycle state of a capture session.
type State int

const (
	// StateIdle is the state before any chunk has been received.
	StateIdle State = iota

	// StateFlushing discards initial bytes up to the flush threshold to
	// skip source startup transients.
	StateFlushing

	// StateCapturing admits chunks: integrity check, relay, quota.
	StateCapturing

	// StateDraining means the source has been asked to stop and the sink
	// writer is draining the remaining relayed bytes.
	StateDraining

	// StateClosed is terminal: the writer has terminated and the sink has
	// been flushed.
	StateClosed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFlushing:
		return "Flushing"
	case StateCapturing:
		return "Capturing"
	case StateDraining:
		return "Draining"
	case StateClosed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// machine is the controller's state machine. Transitions only move forward:
// Idle -> Flushing -> Capturing -> Draining -> Closed, where Flushing may
// skip straight to Draining if the session is canceled before the flush
// threshold is crossed.
type machine struct {
	mu     sync.RWMutex
	state  State
	logger ports.Logger
}

func newMachine(logger ports.Logger) *machine {
	return &machine{state: StateIdle, logger: logger}
}

// State returns the current state.
func (m *machine) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// to transitions to a new state. Returns an error if the transition is not
// valid.
func (m *machine) to(next State, reason string) error {
	m.mu.Lock()
	prev := m.state

	valid := false
	switch prev {
	case StateIdle:
		valid = next == StateFlushing
	case StateFlushing:
		valid = next == StateCapturing || next == StateDraining
	case StateCapturing:
		valid = next == StateDraining
	case StateDraining:
		valid = next == StateClosed
	}
	if !valid {
		m.mu.Unlock()
		return fmt.Errorf("invalid state transition %s -> %s", prev, next)
	}
	m.state = next
	m.mu.Unlock()

	m.logger.Debug("state transition",
		ports.String("from", prev.String()),
		ports.String("to", next.String()),
		ports.String("reason", reason),
	)
	return nil
}
