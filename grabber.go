// Package grabber streams raw samples from an RF front end FIFO to a file.
//
// The pipeline admits chunks from an acquisition source, checks every byte
// for the device FIFO overflow flag, relays admitted bytes through a
// producer/consumer queue, and persists them with a dedicated disk-writing
// goroutine. Capture stops on an interrupt, a sample quota, an integrity
// fault, or a transport/sink failure, always through the same drain/close
// path.
//
// Example usage:
//
//	cfg := grabber.DefaultConfig()
//	cfg.Source = "/tmp/sample-fifo"
//	cfg.OutPath = "samples.bin"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := grabber.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package grabber

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/mfkiwl/piksi-sample-grabber/internal/adapters/file"
	"github.com/mfkiwl/piksi-sample-grabber/internal/capture"
	"github.com/mfkiwl/piksi-sample-grabber/internal/cliconfig"
	"github.com/mfkiwl/piksi-sample-grabber/internal/domain"
	"github.com/mfkiwl/piksi-sample-grabber/internal/ports"
)

// Config holds the configuration for a capture session.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// DefaultConfig returns a Config with the original FIFO grabber defaults:
// 50000 flush bytes, 2 samples per byte, 50-byte write slices, and an
// unconstrained relay queue.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// State is re-exported from the capture core for Status().
type State = capture.State

// Lifecycle states of a capture session.
const (
	StateIdle      = capture.StateIdle
	StateFlushing  = capture.StateFlushing
	StateCapturing = capture.StateCapturing
	StateDraining  = capture.StateDraining
	StateClosed    = capture.StateClosed
)

// Grabber is a single-use capture session that can be embedded in other
// applications. Use New() to create an instance, Start() to begin
// capturing, and Wait() or Stop() to collect the result.
type Grabber struct {
	cfg  Config
	opts options

	mu         sync.Mutex
	controller *capture.Controller
	ownedSink  *file.Sink
	cancel     context.CancelFunc
	done       chan struct{}
	err        error
}

// New creates a new Grabber with the given configuration.
// Returns an error if the configuration is invalid.
func New(cfg Config, opts ...Option) (*Grabber, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Grabber{cfg: cfg, opts: o}, nil
}

// Start begins the capture in the background and returns immediately.
// The provided context is used for the lifetime of the capture; canceling
// it is the external interrupt and ends the session cleanly.
func (g *Grabber) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.done != nil {
		return domain.ErrAlreadyRunning
	}

	logger := g.opts.logger

	sink := g.opts.sink
	if sink == nil && g.cfg.OutPath != "" {
		fs, err := file.CreateSink(g.cfg.OutPath)
		if err != nil {
			return err
		}
		g.ownedSink = fs
		sink = fs
	}

	source := g.opts.source
	if source == nil {
		if g.cfg.Source == "-" {
			source = file.NewReaderSource(os.Stdin, g.cfg.ChunkSize)
		} else {
			source = file.NewTailSource(g.cfg.Source, g.cfg.ChunkSize, g.cfg.Follow, logger)
		}
	}

	g.controller = capture.NewController(capture.Config{
		FlushBytes:      uint64(g.cfg.FlushBytes),
		QuotaBytes:      g.cfg.QuotaBytes(),
		SliceSize:       g.cfg.SliceSize,
		ChannelCapacity: g.cfg.PipeCapacity,
		Verbose:         g.cfg.Verbose,
	}, sink, logger)

	runCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.done = make(chan struct{})

	go g.run(runCtx, source)
	return nil
}

func (g *Grabber) run(ctx context.Context, source ports.Source) {
	err := g.controller.Run(ctx, source)

	// The sink is closed only after the controller has fully drained and
	// flushed, so no buffered bytes are lost.
	if g.ownedSink != nil {
		if cerr := g.ownedSink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %v", domain.ErrSinkWrite, cerr)
		}
	}

	g.mu.Lock()
	g.err = err
	g.mu.Unlock()

	g.cancel()
	close(g.done)
}

// Wait blocks until the capture has ended and returns nil for a clean
// termination (interrupt, quota, source end-of-data) or the corresponding
// domain error otherwise.
func (g *Grabber) Wait() error {
	g.mu.Lock()
	done := g.done
	g.mu.Unlock()

	if done == nil {
		return domain.ErrNotRunning
	}
	<-done

	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Stop requests a clean shutdown and waits for the session to drain.
func (g *Grabber) Stop() error {
	g.mu.Lock()
	cancel := g.cancel
	g.mu.Unlock()

	if cancel == nil {
		return domain.ErrNotRunning
	}
	cancel()
	return g.Wait()
}

// Status returns the lifecycle state of the capture session.
func (g *Grabber) Status() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.controller == nil {
		return StateIdle
	}
	return g.controller.State()
}

// Stats returns the number of bytes received from the source and the number
// admitted past the flush threshold.
func (g *Grabber) Stats() (received, admitted uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.controller == nil {
		return 0, 0
	}
	return g.controller.Session().Received(), g.controller.Session().Admitted()
}

// Run executes a capture session to completion. It blocks until the quota
// is reached, the context is canceled, or the session fails.
func Run(ctx context.Context, cfg Config, opts ...Option) error {
	g, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	if err := g.Start(ctx); err != nil {
		return err
	}
	return g.Wait()
}
