package capture

import (
	"github.com/mfkiwl/piksi-sample-grabber/internal/domain"
	"github.com/mfkiwl/piksi-sample-grabber/internal/ports"
	"github.com/mfkiwl/piksi-sample-grabber/internal/relay"
)

// SinkWriter drains the relay queue and persists slices to the output sink.
// It runs as its own goroutine for the duration of the session and is the
// only reader of the queue.
type SinkWriter struct {
	queue     *relay.Queue
	sink      ports.Sink
	sliceSize int
	session   *Session
	logger    ports.Logger
	done      chan struct{}
}

// NewSinkWriter creates a writer that pops at most sliceSize bytes at a
// time. The slice size amortizes write syscalls without adding much latency.
func NewSinkWriter(queue *relay.Queue, sink ports.Sink, sliceSize int, session *Session, logger ports.Logger) *SinkWriter {
	return &SinkWriter{
		queue:     queue,
		sink:      sink,
		sliceSize: sliceSize,
		session:   session,
		logger:    logger,
		done:      make(chan struct{}),
	}
}

// Start launches the writer goroutine.
func (w *SinkWriter) Start() {
	go w.run()
}

// Wait blocks until the writer goroutine has terminated.
func (w *SinkWriter) Wait() {
	<-w.done
}

// run loops until the queue reports end-of-stream or a write fails. A failed
// sink is fatal for the session: no retries, just cancel and stop. The loop
// deliberately ignores the session cancellation flag so that bytes already
// admitted into the queue are still written during an orderly shutdown.
func (w *SinkWriter) run() {
	defer close(w.done)

	for {
		buf := w.queue.Pop(w.sliceSize)
		if buf == nil {
			return
		}
		n, err := w.sink.Write(buf)
		if err == nil && n < len(buf) {
			err = domain.ErrSinkWrite
		}
		if err != nil {
			w.logger.Error("error writing to sink", ports.Err(err), ports.Int("bytes", len(buf)))
			w.session.Cancel(domain.CauseSinkWrite)
			// Also close the queue: a producer blocked on a bounded push
			// would otherwise never wake, since nobody drains anymore.
			w.queue.Close()
			return
		}
	}
}
