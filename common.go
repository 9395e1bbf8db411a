package gochan

import "errors"

// ErrClosedChannel is returned by Send when the channel is closed, or
// closes before the value can be delivered. It is the only error this
// package produces: every other non-success outcome (an empty receive,
// a failed try-operation) is an ordinary false/zero result.
var ErrClosedChannel = errors.New("gochan: send on closed channel")

// IDFunc is an identity function that returns its input unchanged.
// It's commonly used as a default mapper function for pipes and other operations.
func IDFunc[T any](input T) T {
	return input
}

// ReaderFunc is the type of the reader method used by the Reader goroutine primitive.
type ReaderFunc[R any] func() (msg R, err error)
