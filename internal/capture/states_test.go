package capture

import (
	"testing"

	"github.com/mfkiwl/piksi-sample-grabber/internal/ports"
)

// mockLogger implements ports.Logger for testing.
type mockLogger struct{}

func (mockLogger) Debug(msg string, fields ...ports.Field) {}
func (mockLogger) Info(msg string, fields ...ports.Field)  {}
func (mockLogger) Warn(msg string, fields ...ports.Field)  {}
func (mockLogger) Error(msg string, fields ...ports.Field) {}

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateFlushing, "Flushing"},
		{StateCapturing, "Capturing"},
		{StateDraining, "Draining"},
		{StateClosed, "Closed"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestMachine_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		to      State
		wantErr bool
	}{
		{"idle to flushing", StateIdle, StateFlushing, false},
		{"flushing to capturing", StateFlushing, StateCapturing, false},
		{"flushing to draining", StateFlushing, StateDraining, false},
		{"capturing to draining", StateCapturing, StateDraining, false},
		{"draining to closed", StateDraining, StateClosed, false},
		{"idle to capturing", StateIdle, StateCapturing, true},
		{"idle to draining", StateIdle, StateDraining, true},
		{"capturing to flushing", StateCapturing, StateFlushing, true},
		{"closed is terminal", StateClosed, StateFlushing, true},
		{"no self transition", StateCapturing, StateCapturing, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMachine(&mockLogger{})
			m.state = tt.from
			err := m.to(tt.to, "test")
			if (err != nil) != tt.wantErr {
				t.Errorf("to(%s) from %s: err = %v, wantErr %v", tt.to, tt.from, err, tt.wantErr)
			}
			if !tt.wantErr && m.State() != tt.to {
				t.Errorf("State() = %s, want %s", m.State(), tt.to)
			}
			if tt.wantErr && m.State() != tt.from {
				t.Errorf("failed transition mutated state: %s", m.State())
			}
		})
	}
}
