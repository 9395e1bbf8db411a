package gochan

import "sync"

func idMapperFunc[T any](input T) (output T, skip bool, stop bool) {
	output = input
	return
}

// Mapper connects an input and output channel applying transforms between them.
// It receives from the input channel, applies a transformation function, and
// sends the result to the output channel.
//
// Because blocking receives are uninterruptible except by close, a
// Mapper has no Stop method: it runs until the input channel is closed
// and drained, the output channel rejects a send, or MapFunc asks it to
// stop. Close the input channel to shut a Mapper down.
type Mapper[I any, O any] struct {
	input  *Chan[I]
	output *Chan[O]
	wg     sync.WaitGroup

	// MapFunc is applied to each value in the input channel
	// and returns a tuple of 3 things - outval, skip, stop
	// if skip is false, outval is sent to the output channel
	// if stop is true, then the entire mapper stops processing any further elements.
	// This mechanism can be used if sequencing the shutdown within the
	// elements of the input channel is required
	MapFunc func(I) (O, bool, bool)
	OnDone  func(p *Mapper[I, O])
}

// NewMapper creates a new mapper between an input and output channel.
// The ownership of the channels is by the caller and not the Mapper, so they
// will not be closed when the mapper stops.
// The mapper function returns (output, skip, stop) where:
// - output: the transformed value
// - skip: if true, the output is not sent to the output channel
// - stop: if true, the mapper stops processing further elements
func NewMapper[T any, U any](input *Chan[T], output *Chan[U], mapper func(T) (U, bool, bool)) *Mapper[T, U] {
	out := &Mapper[T, U]{
		input:   input,
		output:  output,
		MapFunc: mapper,
	}
	out.start()
	return out
}

func (m *Mapper[I, O]) start() {
	m.wg.Add(1)
	go func() {
		defer func() {
			if m.OnDone != nil {
				m.OnDone(m)
			}
			m.wg.Done()
		}()
		for {
			value, ok := m.input.Receive()
			if !ok {
				// input closed and drained, no more work
				return
			}
			outval, skip, stop := m.MapFunc(value)
			if !skip {
				if err := m.output.Send(outval); err != nil {
					return
				}
			}
			if stop {
				return
			}
		}
	}()
}

// Wait blocks until the mapper's goroutine has finished.
func (m *Mapper[I, O]) Wait() {
	m.wg.Wait()
}

// NewPipe creates a new pipe that connects an input and output channel.
// A pipe is a mapper with the identity function, so it simply forwards
// all values from input to output without transformation.
func NewPipe[T any](input *Chan[T], output *Chan[T]) *Mapper[T, T] {
	return NewMapper(input, output, idMapperFunc)
}
