package gochan

import "sync"

// subscriber is a one-shot interest in a channel's next accepted send:
// index is posted to notify when the send happens.
type subscriber struct {
	notify *BufferChannel[int]
	index  int
}

// Chan is a channel whose capacity is only known at construction time.
// New picks the backing variant once (a RendezvousChannel for capacity
// 0, a BufferChannel otherwise) and every operation forwards to it.
// The choice is immutable, so dispatch is a nil check on the variant
// pointers rather than an interface call.
//
// On top of the forwarded operations, Chan carries the subscriber
// registry that lets Select wait on it. Select is the only intended
// subscriber, but the hook is public for other multiplexers.
type Chan[T any] struct {
	buf *BufferChannel[T]
	rdv *RendezvousChannel[T]

	subMu       sync.Mutex
	subscribers []subscriber
}

// New creates a channel of the given capacity. Capacity 0 yields
// rendezvous semantics (Send blocks until a receiver consumes the
// value); capacity >= 1 yields buffered semantics. Panics on negative
// capacity.
func New[T any](capacity int) *Chan[T] {
	if capacity < 0 {
		panic("gochan: negative channel capacity")
	}
	if capacity == 0 {
		return &Chan[T]{rdv: NewRendezvousChannel[T]()}
	}
	return &Chan[T]{buf: NewBufferChannel[T](capacity)}
}

// Send forwards to the backing variant and notifies subscribers once
// the send is accepted. For the buffered variant notification happens
// after the value is inserted. For the rendezvous variant it happens
// after the value is published but before the handoff-completion wait,
// since a receiver (possibly a Select woken by the notification) must
// be able to consume the value before that wait can resolve.
func (c *Chan[T]) Send(value T) error {
	if c.buf != nil {
		if err := c.buf.Send(value); err != nil {
			return err
		}
		c.notifySubscribers()
		return nil
	}
	ticket, err := c.rdv.publish(value)
	if err != nil {
		return err
	}
	c.notifySubscribers()
	return c.rdv.await(ticket)
}

// TrySend forwards to the backing variant; a successful try counts as
// an accepted send and notifies subscribers.
func (c *Chan[T]) TrySend(value T) bool {
	var ok bool
	if c.buf != nil {
		ok = c.buf.TrySend(value)
	} else {
		ok = c.rdv.TrySend(value)
	}
	if ok {
		c.notifySubscribers()
	}
	return ok
}

// Receive forwards to the backing variant.
func (c *Chan[T]) Receive() (T, bool) {
	if c.buf != nil {
		return c.buf.Receive()
	}
	return c.rdv.Receive()
}

// TryReceive forwards to the backing variant.
func (c *Chan[T]) TryReceive() (T, bool) {
	if c.buf != nil {
		return c.buf.TryReceive()
	}
	return c.rdv.TryReceive()
}

// Close closes the backing variant, then notifies subscribers so a
// Select blocked on its notification channel re-checks whether all of
// its cases are exhausted instead of waiting for a send that can no
// longer happen. A close notification never dispatches a handler by
// itself: the woken Select finds no value unless one was genuinely
// pending. Close is idempotent.
func (c *Chan[T]) Close() {
	if c.buf != nil {
		c.buf.Close()
	} else {
		c.rdv.Close()
	}
	c.notifySubscribers()
}

// IsActive reports whether the channel is open, or closed with values
// still pending.
func (c *Chan[T]) IsActive() bool {
	if c.buf != nil {
		return c.buf.IsActive()
	}
	return c.rdv.IsActive()
}

// Subscribe registers a one-shot interest: on this channel's next
// accepted send (or close), index is posted to notify with a
// non-blocking send. The post is best-effort: if notify is full the
// subscription is still considered consumed. The entire subscriber list
// is cleared after notification; subscriptions never persist across
// multiple sends, so a waiter that misses its window must subscribe
// again.
func (c *Chan[T]) Subscribe(notify *BufferChannel[int], index int) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.subscribers = append(c.subscribers, subscriber{notify: notify, index: index})
}

func (c *Chan[T]) notifySubscribers() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, sub := range c.subscribers {
		sub.notify.TrySend(sub.index)
	}
	c.subscribers = nil
}
