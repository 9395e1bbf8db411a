package gochan

import (
	"log"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanInMergesAllInputs(t *testing.T) {
	log.Println("============== TestFanInMergesAllInputs ================")
	const (
		inputs    = 3
		perInput  = 20
		totalSent = inputs * perInput
	)

	chans := make([]*Chan[int], inputs)
	for i := range chans {
		chans[i] = New[int](2)
	}
	fi := NewFanIn(nil, chans...)
	assert.Equal(t, inputs, fi.Count())

	var wg sync.WaitGroup
	for i, ch := range chans {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range perInput {
				ch.Send(i*1000 + j)
			}
			ch.Close()
		}()
	}

	// The self-owned output closes once all inputs are exhausted, so a
	// plain drain terminates.
	collected := drain(fi.RecvChan())
	wg.Wait()
	fi.Wait()

	require.Len(t, collected, totalSent)
	seen := make(map[int]bool, totalSent)
	for _, v := range collected {
		assert.False(t, seen[v], "value %d merged twice", v)
		seen[v] = true
	}
	for i := range inputs {
		for j := range perInput {
			assert.True(t, seen[i*1000+j], "value %d lost in merge", i*1000+j)
		}
	}
}

func TestFanInCallerOwnedOutput(t *testing.T) {
	log.Println("============== TestFanInCallerOwnedOutput ================")
	out := New[int](4)
	in := New[int](2)
	fi := NewFanIn(out, in)

	require.NoError(t, in.Send(1))
	in.Close()
	fi.Wait()

	v, ok := out.TryReceive()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, out.IsActive(), "caller-owned output must not be closed by the FanIn")
	out.Close()
}

func TestFanInNilInputPanics(t *testing.T) {
	log.Println("============== TestFanInNilInputPanics ================")
	assert.Panics(t, func() { NewFanIn[int](nil, nil) })
}
