package gochan

import (
	"log/slog"
	"sync"
)

// Reader is a typed Reader goroutine which calls a Read method to return data
// over a channel. It continuously calls the reader function and sends each
// result into a Chan until the function returns an error or the channel
// is closed under it.
//
// The terminal error (if any) is delivered on ClosedChan. When the
// Reader owns its output channel it closes it on exit, so downstream
// consumers observe the usual closed-and-drained ending.
type Reader[R any] struct {
	Read       ReaderFunc[R]
	OnDone     func(r *Reader[R])
	msgChannel *Chan[R]
	selfOwnOut bool
	closedChan chan error
	wg         sync.WaitGroup
}

// ReaderOption is a functional option for configuring a Reader
type ReaderOption[R any] func(*Reader[R])

// WithReaderChan sets the output channel for the reader. The caller
// keeps ownership; the Reader will not close it on exit.
func WithReaderChan[R any](ch *Chan[R]) ReaderOption[R] {
	return func(r *Reader[R]) {
		r.msgChannel = ch
		r.selfOwnOut = false
	}
}

// WithOutputBuffer sets the buffer capacity for the reader's own output
// channel. Capacity 0 yields a rendezvous channel.
func WithOutputBuffer[R any](capacity int) ReaderOption[R] {
	return func(r *Reader[R]) {
		r.msgChannel = New[R](capacity)
		r.selfOwnOut = true
	}
}

// WithOnDone sets the callback to be called when the reader finishes
func WithOnDone[R any](fn func(*Reader[R])) ReaderOption[R] {
	return func(r *Reader[R]) {
		r.OnDone = fn
	}
}

// NewReader creates a new reader instance with functional options.
// The reader function is required as the first parameter, with optional
// configuration via functional options.
//
// Examples:
//
//	// Simple usage - reader owns a rendezvous output channel
//	reader := NewReader(myReaderFunc)
//
//	// With options
//	reader := NewReader(myReaderFunc, WithOutputBuffer[int](10))
func NewReader[R any](read ReaderFunc[R], opts ...ReaderOption[R]) *Reader[R] {
	out := &Reader[R]{
		Read:       read,
		closedChan: make(chan error, 1),
	}
	for _, opt := range opts {
		opt(out)
	}
	if out.msgChannel == nil {
		out.msgChannel = New[R](0)
		out.selfOwnOut = true
	}
	out.start()
	return out
}

// RecvChan returns the channel on which messages can be received.
func (rc *Reader[R]) RecvChan() *Chan[R] {
	return rc.msgChannel
}

// ClosedChan returns the channel used to signal when the reader is done.
// It delivers the error that stopped the reader, or nil when the output
// channel was closed under it.
func (rc *Reader[R]) ClosedChan() <-chan error {
	return rc.closedChan
}

// Wait blocks until the reader goroutine has finished.
func (rc *Reader[R]) Wait() {
	rc.wg.Wait()
}

func (rc *Reader[R]) start() {
	rc.wg.Add(1)
	go func() {
		defer rc.cleanup()
		for {
			msg, err := rc.Read()
			if err != nil {
				slog.Debug("reader stopping", "error", err)
				rc.closedChan <- err
				return
			}
			if sendErr := rc.msgChannel.Send(msg); sendErr != nil {
				// channel closed under us, nothing more to deliver
				rc.closedChan <- nil
				return
			}
		}
	}()
}

func (rc *Reader[R]) cleanup() {
	if rc.OnDone != nil {
		rc.OnDone(rc)
	}
	if rc.selfOwnOut {
		rc.msgChannel.Close()
	}
	close(rc.closedChan)
	rc.wg.Done()
}
