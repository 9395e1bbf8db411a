package gochan

import "sync"

// BufferChannel is a channel with a fixed buffer capacity of at least 1.
// Send blocks only while the buffer is full; Receive blocks only while
// it is empty. A single mutex guards the buffer and the closed flag,
// with two conditions: notFull is signaled when an element is removed
// (or the channel closes), notEmpty when one is added (or the channel
// closes). Both Send and Receive re-check their predicate after every
// wakeup, so spurious and stale wakeups are harmless.
type BufferChannel[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	queue    ring[T]
	closed   bool
}

// NewBufferChannel creates a buffered channel that holds at most
// capacity unconsumed elements. Panics if capacity < 1; use
// RendezvousChannel (or New) for the zero-capacity case.
func NewBufferChannel[T any](capacity int) *BufferChannel[T] {
	if capacity < 1 {
		panic("gochan: BufferChannel capacity must be >= 1")
	}
	ch := &BufferChannel[T]{queue: newRing[T](capacity)}
	ch.notFull = sync.NewCond(&ch.mu)
	ch.notEmpty = sync.NewCond(&ch.mu)
	return ch
}

// Send inserts value into the buffer, blocking while the channel is
// open and full. It returns ErrClosedChannel if the channel is closed,
// or closes while Send is waiting for space; a value is never inserted
// after close has been observed.
func (ch *BufferChannel[T]) Send(value T) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	for !ch.closed {
		if !ch.queue.full() {
			ch.queue.push(value)
			ch.notEmpty.Signal()
			return nil
		}
		ch.notFull.Wait()
	}
	return ErrClosedChannel
}

// TrySend is the non-blocking variant of Send. It reports whether the
// value was inserted; it returns false, without error, when the channel
// is closed or the buffer is full.
func (ch *BufferChannel[T]) TrySend(value T) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed || ch.queue.full() {
		return false
	}
	ch.queue.push(value)
	ch.notEmpty.Signal()
	return true
}

// Receive removes and returns the oldest buffered element, blocking
// while the channel is open and empty. Once the channel is closed,
// Receive drains any remaining elements and then returns (zero, false).
func (ch *BufferChannel[T]) Receive() (T, bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	for !ch.closed {
		if v, ok := ch.takeLocked(); ok {
			return v, true
		}
		ch.notEmpty.Wait()
	}
	return ch.takeLocked()
}

// TryReceive is the non-blocking variant of Receive. It behaves the
// same whether the channel is open or closed.
func (ch *BufferChannel[T]) TryReceive() (T, bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.takeLocked()
}

// takeLocked pops the oldest element and signals a waiting sender that
// space is available. Caller must hold ch.mu.
func (ch *BufferChannel[T]) takeLocked() (T, bool) {
	v, ok := ch.queue.tryPop()
	if ok {
		ch.notFull.Signal()
	}
	return v, ok
}

// Close marks the channel closed and wakes every blocked sender and
// receiver so they can re-evaluate. It is idempotent. Buffered elements
// remain receivable after Close; only new sends are rejected.
func (ch *BufferChannel[T]) Close() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.closed = true
	ch.notEmpty.Broadcast()
	ch.notFull.Broadcast()
}

// IsActive reports whether the channel is still worth polling: true
// while it is open, or closed with elements still buffered; false only
// once it is both closed and drained.
func (ch *BufferChannel[T]) IsActive() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return !(ch.closed && ch.queue.empty())
}
