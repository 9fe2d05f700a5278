// Package relay implements the bounded byte queue that connects the
// acquisition callback to the sink writer.
//
// The queue is a single-producer/single-consumer handoff buffer: the
// acquisition callback pushes each admitted chunk, the sink writer pops
// bounded slices and persists them. Push blocks while the queue is at
// capacity, Pop blocks while it is empty, and Close lets the consumer drain
// the remaining bytes and then observe end-of-stream.
package relay

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Push after Close has been called.
var ErrClosed = errors.New("relay: queue closed")

// compactThreshold is the number of dead bytes at the front of the backing
// slice before Pop copies the remainder down instead of growing forever.
const compactThreshold = 4096

// Queue is an ordered byte queue shared between exactly one producer and one
// consumer. A capacity of 0 means unbounded: Push never blocks on space.
//
// Bytes are popped in exactly the order they were pushed, both within one
// Push call and across calls.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	buf      []byte
	head     int
	capacity int
	closed   bool
}

// New creates a Queue with the given capacity. capacity 0 means unbounded.
func New(capacity int) *Queue {
	q := &Queue{capacity: capacity}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Push appends all of p to the queue, copying the bytes. If the queue is
// bounded and full, Push blocks until the consumer frees space; a push
// larger than the capacity is enqueued in order, in as many pieces as the
// consumer makes room for. Push returns ErrClosed if Close has been called.
func (q *Queue) Push(p []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(p) > 0 {
		if q.closed {
			return ErrClosed
		}
		if q.capacity > 0 {
			for q.size() >= q.capacity && !q.closed {
				q.notFull.Wait()
			}
			if q.closed {
				return ErrClosed
			}
			n := q.capacity - q.size()
			if n > len(p) {
				n = len(p)
			}
			q.buf = append(q.buf, p[:n]...)
			p = p[n:]
		} else {
			q.buf = append(q.buf, p...)
			p = nil
		}
		q.notEmpty.Signal()
	}
	return nil
}

// Pop removes and returns between 1 and max bytes, blocking while the queue
// is empty. It returns nil only when the queue is closed and fully drained;
// an empty return never occurs while the stream is still open. max must be
// positive. The returned slice is owned by the caller.
func (q *Queue) Pop(max int) []byte {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.size() == 0 && !q.closed {
		q.notEmpty.Wait()
	}
	if q.size() == 0 {
		// Closed and drained: end of stream.
		return nil
	}

	n := q.size()
	if n > max {
		n = max
	}
	out := make([]byte, n)
	copy(out, q.buf[q.head:])
	q.head += n

	if q.head == len(q.buf) {
		q.buf = q.buf[:0]
		q.head = 0
	} else if q.head >= compactThreshold {
		q.buf = append(q.buf[:0], q.buf[q.head:]...)
		q.head = 0
	}

	q.notFull.Signal()
	return out
}

// Close marks the queue as closed for writing. It is idempotent. Blocked
// consumers are woken so they can drain the remaining bytes and observe
// end-of-stream; blocked producers are woken and receive ErrClosed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// Len returns the number of bytes currently buffered.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.size()
}

func (q *Queue) size() int {
	return len(q.buf) - q.head
}
