package capture

import (
	"testing"

	"github.com/mfkiwl/piksi-sample-grabber/internal/domain"
)

func TestSession_FirstCancelWins(t *testing.T) {
	s := NewSession()

	if s.Canceled() {
		t.Fatal("new session should not be canceled")
	}
	if !s.Cancel(domain.CauseQuota) {
		t.Fatal("first Cancel should record its cause")
	}
	if s.Cancel(domain.CauseIntegrity) {
		t.Error("second Cancel should be a no-op")
	}
	if got := s.Cause(); got != domain.CauseQuota {
		t.Errorf("Cause() = %v, want %v", got, domain.CauseQuota)
	}
	if !s.Canceled() {
		t.Error("session should report canceled")
	}
}

func TestSession_Counters(t *testing.T) {
	s := NewSession()
	s.addReceived(10)
	s.addReceived(5)
	s.addAdmitted(7)

	if got := s.Received(); got != 15 {
		t.Errorf("Received() = %d, want 15", got)
	}
	if got := s.Admitted(); got != 7 {
		t.Errorf("Admitted() = %d, want 7", got)
	}
}
