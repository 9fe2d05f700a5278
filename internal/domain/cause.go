package domain

// Cause identifies the condition that ended a capture session. All causes
// converge on the same drain/close shutdown path; only the reported status
// differs.
type Cause int

const (
	// CauseNone means the session has not been asked to stop.
	CauseNone Cause = iota

	// CauseInterrupt is a user-requested stop (e.g. SIGINT). Clean.
	CauseInterrupt

	// CauseQuota means the admitted-byte quota was reached. Clean.
	CauseQuota

	// CauseIntegrity means a byte carried the device FIFO overflow flag.
	CauseIntegrity

	// CauseTransport means the acquisition source failed mid-stream.
	CauseTransport

	// CauseSinkWrite means the output sink rejected or short-wrote a slice.
	CauseSinkWrite
)

// String returns a human-readable representation of the cause.
func (c Cause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseInterrupt:
		return "interrupt"
	case CauseQuota:
		return "quota reached"
	case CauseIntegrity:
		return "integrity fault"
	case CauseTransport:
		return "transport failure"
	case CauseSinkWrite:
		return "sink write failure"
	default:
		return "unknown"
	}
}

// Clean reports whether the cause is a normal termination condition rather
// than a failure.
func (c Cause) Clean() bool {
	switch c {
	case CauseNone, CauseInterrupt, CauseQuota:
		return true
	default:
		return false
	}
}

// Err maps an abnormal cause to its domain error. Clean causes map to nil.
func (c Cause) Err() error {
	switch c {
	case CauseIntegrity:
		return ErrIntegrityFault
	case CauseTransport:
		return ErrTransport
	case CauseSinkWrite:
		return ErrSinkWrite
	default:
		return nil
	}
}
