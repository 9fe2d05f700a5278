// Package file provides file system adapters for the capture core: the
// buffered output sink and acquisition sources that read from a regular
// file, a named pipe, or any io.Reader.
package file

import (
	"bufio"
	"fmt"
	"os"
)

// sinkBufferSize matches the fully buffered stdio setup of the original
// capture tool.
const sinkBufferSize = 1 << 16

// Sink is a buffered, append-only file sink implementing ports.Sink.
// It is opened before capture starts and must only be closed after the sink
// writer has terminated.
type Sink struct {
	f *os.File
	w *bufio.Writer
}

// CreateSink opens (truncating) the file at path for writing.
func CreateSink(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open sink: %w", err)
	}
	return &Sink{f: f, w: bufio.NewWriterSize(f, sinkBufferSize)}, nil
}

// Write appends p to the buffered file.
func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Flush forces buffered bytes out to the file.
func (s *Sink) Flush() error {
	return s.w.Flush()
}

// Close flushes remaining bytes and closes the file.
func (s *Sink) Close() error {
	if err := s.w.Flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

// Name returns the path of the underlying file.
func (s *Sink) Name() string {
	return s.f.Name()
}
