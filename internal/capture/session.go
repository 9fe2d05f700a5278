package capture

import (
	"sync/atomic"

	"github.com/mfkiwl/piksi-sample-grabber/internal/domain"
)

// Session holds the mutable state of a single capture run. The chunk
// counters are only written from the acquisition callback; the cancellation
// cause may be set from the callback, the sink writer, or an external
// interrupt, so it is an atomic and the first recorded cause wins.
type Session struct {
	received uint64 // bytes delivered by the source since start
	admitted uint64 // bytes accepted past the flush threshold

	cause atomic.Int32
}

// NewSession creates a Session with all counters at zero.
func NewSession() *Session {
	return &Session{}
}

// Cancel requests session termination with the given cause. Only the first
// call has any effect; it reports whether this call recorded the cause.
func (s *Session) Cancel(c domain.Cause) bool {
	return s.cause.CompareAndSwap(int32(domain.CauseNone), int32(c))
}

// Canceled reports whether termination has been requested.
func (s *Session) Canceled() bool {
	return s.cause.Load() != int32(domain.CauseNone)
}

// Cause returns the recorded termination cause, or CauseNone.
func (s *Session) Cause() domain.Cause {
	return domain.Cause(s.cause.Load())
}

// Received returns the total bytes delivered by the source.
func (s *Session) Received() uint64 {
	return atomic.LoadUint64(&s.received)
}

// Admitted returns the bytes accepted past the flush threshold.
func (s *Session) Admitted() uint64 {
	return atomic.LoadUint64(&s.admitted)
}

func (s *Session) addReceived(n uint64) uint64 {
	return atomic.AddUint64(&s.received, n)
}

func (s *Session) addAdmitted(n uint64) uint64 {
	return atomic.AddUint64(&s.admitted, n)
}
