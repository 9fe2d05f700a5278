// Package capture implements the core streaming pipeline: the capture
// controller that admits chunks from the acquisition source, the per-byte
// integrity check for the device FIFO overflow flag, and the sink writer
// that drains the relay queue to the output sink.
//
// Two goroutines run for the duration of a capture: the source's delivery
// loop (driving [Controller.OnChunk]) and the [SinkWriter]. They share only
// the relay queue and the session's cancellation flag.
package capture
