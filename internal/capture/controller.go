package capture

import (
	"context"
	"errors"
	"fmt"

	"github.com/mfkiwl/piksi-sample-grabber/internal/domain"
	"github.com/mfkiwl/piksi-sample-grabber/internal/ports"
	"github.com/mfkiwl/piksi-sample-grabber/internal/relay"
)

// Config contains the tunables of the capture pipeline.
type Config struct {
	// FlushBytes is the number of initial bytes discarded without checking
	// or relaying them. The FPGA FIFO holds stale samples at startup; they
	// must be read out before continuous samples arrive.
	FlushBytes uint64

	// QuotaBytes stops the capture once this many bytes have been admitted.
	// 0 means capture until interrupted.
	QuotaBytes uint64

	// SliceSize is the number of bytes the sink writer pops and writes at a
	// time.
	SliceSize int

	// ChannelCapacity bounds the relay queue. 0 means unbounded, the
	// default: the push side runs inside the latency-sensitive transfer
	// callback, so memory is bounded by the quota rather than by
	// backpressure.
	ChannelCapacity int

	// Verbose enables per-chunk progress reporting.
	Verbose bool
}

// Controller owns the capture lifecycle: it wires source chunks through the
// integrity check into the relay queue, tracks the flush threshold and the
// byte quota, and coordinates shutdown between the source, the sink writer,
// and an external interrupt.
type Controller struct {
	cfg     Config
	session *Session
	checker Checker
	queue   *relay.Queue
	writer  *SinkWriter
	sink    ports.Sink
	machine *machine
	logger  ports.Logger
}

// NewController creates a controller. sink may be nil, in which case samples
// are counted and integrity-checked but not persisted; the relay queue and
// sink writer are only created when there is a sink to feed.
func NewController(cfg Config, sink ports.Sink, logger ports.Logger) *Controller {
	c := &Controller{
		cfg:     cfg,
		session: NewSession(),
		sink:    sink,
		machine: newMachine(logger),
		logger:  logger,
	}
	if sink != nil {
		c.queue = relay.New(cfg.ChannelCapacity)
		c.writer = NewSinkWriter(c.queue, sink, cfg.SliceSize, c.session, logger)
	}
	return c
}

// Session exposes the session state for status reporting and tests.
func (c *Controller) Session() *Session {
	return c.session
}

// State returns the controller's lifecycle state.
func (c *Controller) State() State {
	return c.machine.State()
}

// Cancel requests termination with the given cause, typically
// CauseInterrupt from a signal handler.
func (c *Controller) Cancel(cause domain.Cause) {
	c.session.Cancel(cause)
}

// Run executes the capture session to completion: it starts the sink
// writer, drives the source's delivery loop, and performs the drain/close
// shutdown sequence. It returns nil for clean terminations (interrupt,
// quota, source end-of-data) and the matching domain error otherwise.
func (c *Controller) Run(ctx context.Context, src ports.Source) error {
	if err := c.machine.to(StateFlushing, "capture started"); err != nil {
		return err
	}
	if c.writer != nil {
		c.writer.Start()
	}

	// Surface external interrupts through the shared cancellation flag so
	// the delivery loop observes them on its next chunk.
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			c.session.Cancel(domain.CauseInterrupt)
		case <-watchDone:
		}
	}()

	streamErr := src.Stream(ctx, c.OnChunk)
	close(watchDone)
	if streamErr != nil && !errors.Is(streamErr, context.Canceled) {
		c.session.Cancel(domain.CauseTransport)
	}

	_ = c.machine.to(StateDraining, c.session.Cause().String())
	if c.queue != nil {
		c.queue.Close()
		c.writer.Wait()
		if err := c.sink.Flush(); err != nil {
			c.logger.Error("error flushing sink", ports.Err(err))
			c.session.Cancel(domain.CauseSinkWrite)
		}
	}
	_ = c.machine.to(StateClosed, "capture ended")

	cause := c.session.Cause()
	c.logger.Info("capture ended",
		ports.Uint64("received", c.session.Received()),
		ports.Uint64("admitted", c.session.Admitted()),
		ports.Uint64("faults", c.checker.Faults()),
		ports.String("cause", cause.String()),
		ports.Bool("clean", cause.Clean()),
	)

	if cause == domain.CauseTransport {
		return fmt.Errorf("%w: %v", domain.ErrTransport, streamErr)
	}
	return cause.Err()
}

// OnChunk is the acquisition callback. It runs on the source's delivery
// goroutine and must stay O(len(chunk)) and allocation-light. The return
// value tells the source whether to keep delivering.
func (c *Controller) OnChunk(chunk []byte, stats domain.TransferStats) bool {
	// In-flight chunks may still arrive once shutdown has begun; ignore
	// them.
	if c.machine.State() >= StateDraining {
		return false
	}

	if len(chunk) > 0 {
		if !c.session.Canceled() && c.session.Received() >= c.cfg.FlushBytes {
			c.admit(chunk)
		}
		c.session.addReceived(uint64(len(chunk)))
	}

	if c.cfg.Verbose {
		c.logProgress(stats)
	}
	return !c.session.Canceled()
}

// admit processes one chunk past the flush threshold: integrity check,
// relay, quota accounting.
func (c *Controller) admit(chunk []byte) {
	if c.machine.State() == StateFlushing {
		_ = c.machine.to(StateCapturing, "flush threshold crossed")
	}

	// A detected fault cancels the session but does not cut the chunk
	// short: the remaining bytes are still forwarded.
	if idx, found := c.checker.Scan(chunk); found {
		c.logger.Error("FPGA FIFO error flag set",
			ports.Uint64("sample", c.session.Admitted()+uint64(idx)))
		c.session.Cancel(domain.CauseIntegrity)
	}

	if c.queue != nil {
		if err := c.queue.Push(chunk); err != nil {
			// Queue already closed: shutdown has won the race.
			return
		}
	}

	admitted := c.session.addAdmitted(uint64(len(chunk)))
	if c.cfg.QuotaBytes != 0 && admitted >= c.cfg.QuotaBytes {
		c.session.Cancel(domain.CauseQuota)
	}
}

func (c *Controller) logProgress(stats domain.TransferStats) {
	c.logger.Info("progress",
		ports.Float64("elapsed_s", stats.Elapsed.Seconds()),
		ports.Float64("captured_mib", float64(stats.TotalBytes)/(1024*1024)),
		ports.Float64("curr_kb_s", stats.CurrentRate/1024),
		ports.Float64("avg_kb_s", stats.AverageRate/1024),
	)
}
