package domain

import "errors"

// Domain errors represent error conditions in the capture domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("grabber: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped instance.
	ErrNotRunning = errors.New("grabber: not running")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("grabber: invalid configuration")

	// ErrTransport is returned when the acquisition source fails mid-stream.
	ErrTransport = errors.New("grabber: transport failure")

	// ErrIntegrityFault is returned when a captured byte carries the
	// device-reported FIFO overflow flag. Bytes admitted before the fault
	// remain written; the capture is compromised from that point on.
	ErrIntegrityFault = errors.New("grabber: FIFO overflow flagged by device")

	// ErrSinkWrite is returned when the output sink rejects or only
	// partially completes a write.
	ErrSinkWrite = errors.New("grabber: sink write failure")
)
