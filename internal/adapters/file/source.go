package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mfkiwl/piksi-sample-grabber/internal/ports"
)

// pollInterval is the fallback delay between reads at end-of-file when no
// fsnotify event arrives (FIFOs and some filesystems never emit one).
const pollInterval = 500 * time.Millisecond

// TailSource implements ports.Source by reading a file or named pipe. With
// follow enabled it keeps reading as the file grows, waking on fsnotify
// write events, which makes it a stand-in for the USB transport: another
// process appends raw samples and this source delivers them as chunks.
type TailSource struct {
	path      string
	chunkSize int
	follow    bool
	logger    ports.Logger
}

// NewTailSource creates a source reading from path. chunkSize bounds the
// size of a delivered chunk.
func NewTailSource(path string, chunkSize int, follow bool, logger ports.Logger) *TailSource {
	return &TailSource{path: path, chunkSize: chunkSize, follow: follow, logger: logger}
}

// Stream delivers chunks until fn requests a stop, the context is canceled,
// end-of-file is reached without follow, or reading fails.
func (s *TailSource) Stream(ctx context.Context, fn ports.ChunkFunc) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	var watcher *fsnotify.Watcher
	if s.follow {
		if watcher = s.newWatcher(); watcher != nil {
			defer watcher.Close()
		}
	}

	meter := newRateMeter()
	buf := make([]byte, s.chunkSize)
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, rerr := f.Read(buf)
		if n > 0 {
			if !fn(buf[:n], meter.sample(n)) {
				return nil
			}
		}

		switch {
		case rerr == nil:
		case errors.Is(rerr, io.EOF):
			if !s.follow {
				// Deliver a final empty chunk so the callback sees the
				// closing stats, then report a clean end of stream.
				fn(nil, meter.sample(0))
				return nil
			}
			if werr := s.waitForData(ctx, watcher); werr != nil {
				return werr
			}
		default:
			return fmt.Errorf("read source: %w", rerr)
		}
	}
}

// newWatcher sets up an fsnotify watcher for the source file. Failure is
// not fatal: the source degrades to plain polling.
func (s *TailSource) newWatcher() *fsnotify.Watcher {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.logger.Warn("fsnotify unavailable, polling instead", ports.Err(err))
		return nil
	}
	if err := watcher.Add(s.path); err != nil {
		s.logger.Warn("cannot watch source, polling instead",
			ports.String("path", s.path), ports.Err(err))
		watcher.Close()
		return nil
	}
	return watcher
}

// waitForData blocks until the source file changes, the poll interval
// elapses, or the context is canceled.
func (s *TailSource) waitForData(ctx context.Context, watcher *fsnotify.Watcher) error {
	timer := time.NewTimer(pollInterval)
	defer timer.Stop()

	if watcher == nil {
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
		return nil
	}

	select {
	case <-ctx.Done():
	case <-watcher.Events:
	case err := <-watcher.Errors:
		return fmt.Errorf("watch source: %w", err)
	case <-timer.C:
	}
	return nil
}

// ReaderSource implements ports.Source over a plain io.Reader, typically
// stdin. There is no follow mode: end-of-input ends the stream.
type ReaderSource struct {
	r         io.Reader
	chunkSize int
}

// NewReaderSource creates a source delivering chunks of at most chunkSize
// bytes read from r.
func NewReaderSource(r io.Reader, chunkSize int) *ReaderSource {
	return &ReaderSource{r: r, chunkSize: chunkSize}
}

// Stream delivers chunks until fn requests a stop, the context is canceled,
// or the reader is exhausted.
//
// Cancellation is observed between reads only: a Read blocked on a silent
// reader (stdin with no input) holds the loop until data or EOF arrives.
// Callers who need prompt cancellation on arbitrary readers should close
// the underlying reader themselves.
func (s *ReaderSource) Stream(ctx context.Context, fn ports.ChunkFunc) error {
	meter := newRateMeter()
	buf := make([]byte, s.chunkSize)
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := s.r.Read(buf)
		if n > 0 {
			if !fn(buf[:n], meter.sample(n)) {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fn(nil, meter.sample(0))
				return nil
			}
			return fmt.Errorf("read source: %w", err)
		}
	}
}
