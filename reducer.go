package gochan

import (
	"log"
	"sync"
	"time"
)

// Reducer is a way to collect messages of type T in some kind of window
// and reduce them to type U. For example this could be used to batch messages
// into a list every 10 seconds. Alternatively if a time based window is not
// used a reduction can be invoked manually with Flush.
//
// The reducer's loop is a Select over three channels: the data channel,
// a tick channel fed by a ticker goroutine, and a flush-request channel
// fed by Flush. The reducer runs until its input channel is closed and
// drained; events collected but not yet flushed at that point are
// dropped, as they are on Stop.
type Reducer[T any, C any, U any] struct {
	FlushPeriod time.Duration
	// CollectFunc adds an input to the collection and returns the updated collection.
	// The bool return value indicates whether a flush should be triggered immediately.
	CollectFunc   func(input T, collection C) (C, bool)
	ReduceFunc    func(collectedItems C) (reducedOutputs U)
	pendingEvents C
	selfOwnIn     bool
	inputChan     *Chan[T]
	selfOwnOut    bool
	outputChan    *Chan[U]
	tickChan      *Chan[time.Time]
	flushChan     *Chan[struct{}]
	stopTick      chan struct{}
	wg            sync.WaitGroup
}

// ReducerOption is a functional option for configuring a Reducer
type ReducerOption[T any, C any, U any] func(*Reducer[T, C, U])

// WithFlushPeriod sets the flush period for the reducer
func WithFlushPeriod[T any, C any, U any](period time.Duration) ReducerOption[T, C, U] {
	return func(r *Reducer[T, C, U]) {
		r.FlushPeriod = period
	}
}

// WithInputChan sets the input channel for the reducer
func WithInputChan[T any, C any, U any](ch *Chan[T]) ReducerOption[T, C, U] {
	return func(r *Reducer[T, C, U]) {
		r.inputChan = ch
		r.selfOwnIn = false
	}
}

// WithOutputChan sets the output channel for the reducer
func WithOutputChan[T any, C any, U any](ch *Chan[U]) ReducerOption[T, C, U] {
	return func(r *Reducer[T, C, U]) {
		r.outputChan = ch
		r.selfOwnOut = false
	}
}

// NewReducer creates a reducer over generic input and output types. Options can be
// provided to configure the input channel, output channel, flush period, etc.
// If channels are not provided via options, the reducer will create and own them.
// Just like other runners, the Reducer starts as soon as it is created.
func NewReducer[T any, C any, U any](opts ...ReducerOption[T, C, U]) *Reducer[T, C, U] {
	out := &Reducer[T, C, U]{
		FlushPeriod: 100 * time.Millisecond,
		tickChan:    New[time.Time](1),
		flushChan:   New[struct{}](1),
		stopTick:    make(chan struct{}),
		selfOwnIn:   true,
		selfOwnOut:  true,
	}
	for _, opt := range opts {
		opt(out)
	}
	if out.inputChan == nil {
		out.inputChan = New[T](0)
	}
	if out.outputChan == nil {
		out.outputChan = New[U](0)
	}
	out.start()
	return out
}

// NewIDReducer creates a Reducer that simply collects events of type T into a list (of type []T).
func NewIDReducer[T any](opts ...ReducerOption[T, []T, []T]) *Reducer[T, []T, []T] {
	out := NewReducer(opts...)
	out.ReduceFunc = IDFunc[[]T]
	out.CollectFunc = func(input T, collection []T) ([]T, bool) {
		return append(collection, input), false
	}
	return out
}

// A reducer that collects a list of items and concats them to a collection
// This allows producers to send events here in batch mode instead of 1 at a time
func NewListReducer[T any](opts ...ReducerOption[[]T, []T, []T]) *Reducer[[]T, []T, []T] {
	out := NewReducer(opts...)
	out.ReduceFunc = IDFunc[[]T]
	out.CollectFunc = func(input []T, collection []T) ([]T, bool) {
		return append(collection, input...), false
	}
	return out
}

// RecvChan gets the channel from which we can read "reduced" values from
func (fo *Reducer[T, C, U]) RecvChan() *Chan[U] {
	return fo.outputChan
}

// SendChan returns the channel onto which messages can be sent (to be reduced).
func (fo *Reducer[T, C, U]) SendChan() *Chan[T] {
	return fo.inputChan
}

// Send sends a message/value onto this reducer for (eventual) reduction.
func (fo *Reducer[T, C, U]) Send(value T) error {
	return fo.inputChan.Send(value)
}

// Stop shuts the reducer down by closing its input channel, then waits
// for the loop to exit. The internal tick and flush channels are closed
// too so a loop parked in Select wakes immediately instead of at the
// next tick. Events collected but not yet flushed are dropped.
func (fo *Reducer[T, C, U]) Stop() {
	fo.inputChan.Close()
	fo.tickChan.Close()
	fo.flushChan.Close()
	fo.wg.Wait()
}

// Wait blocks until the reducer's loop has finished.
func (fo *Reducer[T, C, U]) Wait() {
	fo.wg.Wait()
}

func (fo *Reducer[T, C, U]) start() {
	// ticker goroutine feeds the tick channel; a full tick channel
	// means a flush is already due, so ticks are dropped, not queued
	ticker := time.NewTicker(fo.FlushPeriod)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case tick := <-ticker.C:
				fo.tickChan.TrySend(tick)
			case <-fo.stopTick:
				return
			}
		}
	}()

	fo.wg.Add(1)
	go func() {
		defer func() {
			close(fo.stopTick)
			fo.tickChan.Close()
			fo.flushChan.Close()
			if fo.selfOwnOut {
				fo.outputChan.Close()
			}
			fo.wg.Done()
		}()
		collect := func(event T) {
			var shouldFlush bool
			fo.pendingEvents, shouldFlush = fo.CollectFunc(event, fo.pendingEvents)
			if shouldFlush {
				fo.flush()
			}
		}
		for fo.inputChan.IsActive() {
			Select(
				On(fo.inputChan, collect),
				On(fo.tickChan, func(time.Time) { fo.flush() }),
				On(fo.flushChan, func(struct{}) { fo.flush() }),
			)
		}
	}()
}

// Flush requests that all pending events be reduced and sent to the
// output channel. The reduction itself happens on the reducer's own
// goroutine; requests arriving while one is already queued coalesce.
func (fo *Reducer[T, C, U]) Flush() {
	fo.flushChan.TrySend(struct{}{})
}

func (fo *Reducer[T, C, U]) flush() {
	log.Printf("Flushing messages.")
	joinedEvents := fo.ReduceFunc(fo.pendingEvents)
	var zero C
	fo.pendingEvents = zero
	fo.outputChan.Send(joinedEvents)
}
