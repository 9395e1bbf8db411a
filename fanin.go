package gochan

import (
	"log"
	"sync"
)

// FanIn merges multiple input channels into a single output channel.
// It implements the fan-in concurrency pattern where messages from multiple
// sources are combined into one stream.
//
// The merge loop is a plain Select over all inputs, repeated until
// every input channel is closed and drained. The input set is fixed at
// construction: a FanIn blocked inside Select cannot be told about new
// channels, so there is no dynamic add/remove.
type FanIn[T any] struct {
	inputs     []*Chan[T]
	selfOwnOut bool
	outChan    *Chan[T]
	wg         sync.WaitGroup
}

// NewFanIn creates a new FanIn that merges the given input channels into
// outChan. If outChan is nil, a new rendezvous channel is created, owned
// by the FanIn and closed once every input is exhausted.
// The FanIn starts running immediately upon creation.
// Panics if any input channel is nil.
func NewFanIn[T any](outChan *Chan[T], inputs ...*Chan[T]) *FanIn[T] {
	for _, input := range inputs {
		if input == nil {
			panic("Cannot add nil channels")
		}
	}
	selfOwnOut := false
	if outChan == nil {
		outChan = New[T](0)
		selfOwnOut = true
	}
	out := &FanIn[T]{
		inputs:     inputs,
		outChan:    outChan,
		selfOwnOut: selfOwnOut,
	}
	out.start()
	return out
}

// RecvChan returns the channel on which merged output can be received.
func (fi *FanIn[T]) RecvChan() *Chan[T] {
	return fi.outChan
}

// Count returns the number of input channels being merged.
func (fi *FanIn[T]) Count() int {
	return len(fi.inputs)
}

// Wait blocks until every input channel is exhausted and the merge loop
// has finished.
func (fi *FanIn[T]) Wait() {
	fi.wg.Wait()
}

func (fi *FanIn[T]) start() {
	cases := make([]Case, len(fi.inputs))
	for i, input := range fi.inputs {
		cases[i] = On(input, func(v T) {
			fi.outChan.Send(v)
		})
	}
	fi.wg.Add(1)
	go func() {
		defer fi.cleanup()
		for fi.anyActive() {
			Select(cases...)
		}
	}()
}

func (fi *FanIn[T]) anyActive() bool {
	for _, input := range fi.inputs {
		if input.IsActive() {
			return true
		}
	}
	return false
}

func (fi *FanIn[T]) cleanup() {
	log.Println("FanIn drained all inputs")
	if fi.selfOwnOut {
		fi.outChan.Close()
	}
	fi.wg.Done()
}
