package gochan

// Case is one (channel, handler) pair of a Select call. Build cases
// with On; the interface hides the case's element type from Select.
type Case interface {
	// tryDispatch attempts a non-blocking receive and, on success,
	// runs the handler with the received value. No channel lock is
	// held while the handler executes.
	tryDispatch() bool

	// isActive reports whether the case's channel can still produce a
	// value (open, or closed with values pending).
	isActive() bool

	// subscribe registers the case's index on its channel's subscriber
	// list, targeting the Select call's notification channel.
	subscribe(notify *BufferChannel[int], index int)
}

type selectCase[T any] struct {
	ch      *Chan[T]
	handler func(T)
}

// On binds a channel to a handler, forming one case of a Select call.
func On[T any](ch *Chan[T], handler func(T)) Case {
	return &selectCase[T]{ch: ch, handler: handler}
}

func (c *selectCase[T]) tryDispatch() bool {
	v, ok := c.ch.TryReceive()
	if !ok {
		return false
	}
	c.handler(v)
	return true
}

func (c *selectCase[T]) isActive() bool { return c.ch.IsActive() }

func (c *selectCase[T]) subscribe(notify *BufferChannel[int], index int) {
	c.ch.Subscribe(notify, index)
}

// Select waits on every case's channel at once and invokes the handler
// of the first case that produces a value, invoking at most one handler per
// call. Callers needing repeated multiplexing call Select again in
// their own loop.
//
// Dispatch happens in two phases. First a synchronous pre-check tries
// each case in declaration order and dispatches to the lowest-indexed
// one that is already ready, without blocking. If none is ready, every
// still-active case is subscribed to a per-call notification channel
// and Select blocks on it; a notification carrying index k triggers a
// non-blocking receive on case k only. When that receive loses to a
// concurrent consumer, Select goes back to waiting. Select returns
// without invoking any handler once no case's channel is active.
//
// Known race, inherited from the subscription protocol: a channel
// clears its whole subscriber list on its next accepted send, and
// Select does not resubscribe after a missed dispatch. If case k's
// value is stolen by a concurrent receiver outside this Select, the
// call goes blind to channel k until every other subscribed case is
// also consumed or closed. A closed-but-undrained channel similarly
// counts as active while never notifying again. Multiplexers that
// cannot tolerate this should receive from the channel directly.
func Select(cases ...Case) {
	if len(cases) == 0 {
		return
	}

	// Phase 1: deterministic, order-respecting pass over ready cases.
	for _, c := range cases {
		if c.tryDispatch() {
			return
		}
	}

	// Phase 2: subscribe and wait. The notification channel has one
	// slot per case so no accepted send's post is lost for capacity
	// reasons before the first wakeup.
	notify := NewBufferChannel[int](len(cases))
	for i, c := range cases {
		if c.isActive() {
			c.subscribe(notify, i)
		}
	}

	// A send that landed between the pre-check and the subscription
	// above produced no notification, so sweep the cases once more
	// before parking.
	for _, c := range cases {
		if c.tryDispatch() {
			return
		}
	}

	for {
		anyActive := false
		for _, c := range cases {
			if c.isActive() {
				anyActive = true
				break
			}
		}
		if !anyActive {
			return
		}

		idx, ok := notify.Receive()
		if !ok || idx < 0 || idx >= len(cases) {
			continue
		}
		if cases[idx].tryDispatch() {
			return
		}
	}
}
