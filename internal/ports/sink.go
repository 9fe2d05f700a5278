package ports

// Sink is the append-only byte destination for captured samples. It is
// opened and closed by the surrounding program; the capture core only
// controls when writes happen and when it is safe to flush.
type Sink interface {
	// Write appends p to the sink, returning the number of bytes written.
	// A short write without an error is treated as a write failure by the
	// caller.
	Write(p []byte) (int, error)

	// Flush forces any buffered bytes out to the underlying destination.
	// Called exactly once, after the sink writer has terminated.
	Flush() error
}
