package capture

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mfkiwl/piksi-sample-grabber/internal/domain"
	"github.com/mfkiwl/piksi-sample-grabber/internal/relay"
)

// memSink is an in-memory ports.Sink. failAfter >= 0 makes the write that
// would exceed that byte count fail; shortAt >= 0 makes that write report
// fewer bytes than requested.
type memSink struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	failAfter int
	shortAt   int
	flushes   int
}

func newMemSink() *memSink {
	return &memSink{failAfter: -1, shortAt: -1}
}

func (s *memSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAfter >= 0 && s.buf.Len()+len(p) > s.failAfter {
		return 0, errors.New("device full")
	}
	if s.shortAt >= 0 && s.buf.Len() >= s.shortAt {
		n := len(p) / 2
		s.buf.Write(p[:n])
		return n, nil
	}
	return s.buf.Write(p)
}

func (s *memSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return nil
}

func (s *memSink) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buf.Bytes()...)
}

func TestSinkWriter_DrainsInOrder(t *testing.T) {
	q := relay.New(0)
	sink := newMemSink()
	session := NewSession()
	w := NewSinkWriter(q, sink, 7, session, &mockLogger{})
	w.Start()

	var want []byte
	for i := 0; i < 50; i++ {
		chunk := bytes.Repeat([]byte{byte(i)}, 13)
		want = append(want, chunk...)
		if err := q.Push(chunk); err != nil {
			t.Fatalf("Push() error = %v", err)
		}
	}
	q.Close()
	w.Wait()

	if got := sink.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("sink holds %d bytes, want %d; order or content mismatch", len(got), len(want))
	}
	if session.Canceled() {
		t.Errorf("clean drain canceled the session: %v", session.Cause())
	}
}

func TestSinkWriter_WriteFailureCancelsSession(t *testing.T) {
	q := relay.New(0)
	sink := newMemSink()
	sink.failAfter = 10
	session := NewSession()
	w := NewSinkWriter(q, sink, 8, session, &mockLogger{})
	w.Start()

	if err := q.Push(make([]byte, 64)); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	// The writer must stop on its own, without the queue being closed.
	done := make(chan struct{})
	go func() { w.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("writer did not stop after sink failure")
	}

	if got := session.Cause(); got != domain.CauseSinkWrite {
		t.Errorf("Cause() = %v, want %v", got, domain.CauseSinkWrite)
	}
	// The writer closes the queue so a producer cannot block forever on a
	// bounded push with nobody draining.
	if err := q.Push([]byte{1}); !errors.Is(err, relay.ErrClosed) {
		t.Errorf("Push() after writer fault = %v, want %v", err, relay.ErrClosed)
	}
}

func TestSinkWriter_ShortWriteIsFatal(t *testing.T) {
	q := relay.New(0)
	sink := newMemSink()
	sink.shortAt = 0
	session := NewSession()
	w := NewSinkWriter(q, sink, 16, session, &mockLogger{})
	w.Start()

	if err := q.Push(make([]byte, 16)); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	q.Close()
	w.Wait()

	if got := session.Cause(); got != domain.CauseSinkWrite {
		t.Errorf("Cause() = %v, want %v", got, domain.CauseSinkWrite)
	}
}

func TestSinkWriter_TerminatesOnEndOfStream(t *testing.T) {
	q := relay.New(0)
	w := NewSinkWriter(q, newMemSink(), 16, NewSession(), &mockLogger{})
	w.Start()
	q.Close()

	done := make(chan struct{})
	go func() { w.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("writer did not terminate on end of stream")
	}
}
