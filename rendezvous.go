package gochan

import "sync"

// RendezvousChannel is a zero-capacity channel: Send does not return
// until a receiver has actually consumed the value (or the channel
// closes with the value still undelivered, in which case Send reports
// ErrClosedChannel).
//
// Storage is a single slot plus a monotonically increasing ticket
// counter, all under one mutex. A sender that wins the empty slot
// publishes its value and takes a fresh ticket, then waits on the
// handoff condition until the slot clears while the ticket counter
// still equals its own ticket. The ticket comparison is what proves
// "my value was consumed" rather than "a later sender's value now
// occupies the slot": by the time a stale sender wakes up, the slot may
// have been refilled and cleared any number of times.
type RendezvousChannel[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond
	handoff  *sync.Cond
	slot     T
	hasValue bool
	ticket   uint64
	closed   bool
}

// NewRendezvousChannel creates a zero-capacity channel.
func NewRendezvousChannel[T any]() *RendezvousChannel[T] {
	ch := &RendezvousChannel[T]{}
	ch.notFull = sync.NewCond(&ch.mu)
	ch.notEmpty = sync.NewCond(&ch.mu)
	ch.handoff = sync.NewCond(&ch.mu)
	return ch
}

// Send publishes value and blocks until a receiver consumes it.
// It returns ErrClosedChannel if the channel is closed before the slot
// becomes free, or if it closes while the published value is still
// unconsumed. In both cases the value was never delivered.
func (ch *RendezvousChannel[T]) Send(value T) error {
	ticket, err := ch.publish(value)
	if err != nil {
		return err
	}
	return ch.await(ticket)
}

// publish waits for the slot to be free while the channel is open,
// writes value, bumps the ticket counter and wakes one receiver. The
// returned ticket is the caller's proof of ownership for await.
func (ch *RendezvousChannel[T]) publish(value T) (uint64, error) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	for !ch.closed {
		if !ch.hasValue {
			ch.slot = value
			ch.hasValue = true
			ch.ticket++
			ch.notEmpty.Signal()
			return ch.ticket, nil
		}
		ch.notFull.Wait()
	}
	return 0, ErrClosedChannel
}

// await blocks until the value published under ticket has been
// consumed. If the channel closes while the slot still holds that exact
// ticket, nobody ever read the value and await reports
// ErrClosedChannel.
func (ch *RendezvousChannel[T]) await(ticket uint64) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	for !ch.closed && ch.hasValue && ticket == ch.ticket {
		ch.handoff.Wait()
	}
	if ch.hasValue && ticket == ch.ticket {
		return ErrClosedChannel
	}
	return nil
}

// TrySend publishes value without blocking and without waiting for a
// consumer: the handoff-completion guarantee is what "try" gives up.
// It reports false when the channel is closed or another sender's value
// already occupies the slot.
func (ch *RendezvousChannel[T]) TrySend(value T) bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.closed || ch.hasValue {
		return false
	}
	ch.slot = value
	ch.hasValue = true
	ch.ticket++
	ch.notEmpty.Signal()
	return true
}

// Receive blocks while the channel is open and the slot is empty, then
// takes the pending value. Once closed, it drains a pending value if
// one exists and after that returns (zero, false).
func (ch *RendezvousChannel[T]) Receive() (T, bool) {
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

// TryReceive is the non-blocking variant of Receive.
func (ch *RendezvousChannel[T]) TryReceive() (T, bool) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.takeLocked()
}

// takeLocked consumes the slot, waking both the sender parked on the
// handoff condition and the next sender waiting for the slot to free
// up. Caller must hold ch.mu.
func (ch *RendezvousChannel[T]) takeLocked() (T, bool) {
	var zero T
	if !ch.hasValue {
		return zero, false
	}
	v := ch.slot
	ch.slot = zero
	ch.hasValue = false
	ch.handoff.Signal()
	ch.notFull.Signal()
	return v, true
}

// Close marks the channel closed and wakes every blocked sender,
// receiver and handoff waiter. It is idempotent. A pending unconsumed
// value remains receivable; its sender's Send fails once no receiver
// can be guaranteed.
func (ch *RendezvousChannel[T]) Close() {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.closed = true
	ch.notEmpty.Broadcast()
	ch.notFull.Broadcast()
	ch.handoff.Broadcast()
}

// IsActive reports whether the channel is open, or closed with a value
// still pending in the slot.
func (ch *RendezvousChannel[T]) IsActive() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return !(ch.closed && !ch.hasValue)
}
