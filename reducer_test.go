package gochan

import (
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDReducer(t *testing.T) {
	log.Println("============== TestIDReducer ================")
	output := New[[]int](10)

	reducer := NewIDReducer(
		WithOutputChan[int, []int, []int](output),
		WithFlushPeriod[int, []int, []int](10*time.Second),
	)
	defer reducer.Stop()

	go func() {
		for i := range 5 {
			reducer.Send(i)
		}
		// The rendezvous input means every value is collected once the
		// sends return, so this flush carries the full batch.
		reducer.Flush()
	}()

	batch, ok := recvTimeout(t, output)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, batch)
}

func TestReducerManualFlush(t *testing.T) {
	log.Println("============== TestReducerManualFlush ================")
	output := New[[]int](10)

	reducer := NewIDReducer(
		WithOutputChan[int, []int, []int](output),
		// Very long period so auto-flush does not trigger
		WithFlushPeriod[int, []int, []int](10*time.Second),
	)
	defer reducer.Stop()

	for i := range 3 {
		require.NoError(t, reducer.Send(i))
	}
	// The rendezvous input guarantees all three are collected by now.
	reducer.Flush()

	batch, ok := recvTimeout(t, output)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, batch)
}

func TestReducerMultipleBatches(t *testing.T) {
	log.Println("============== TestReducerMultipleBatches ================")
	output := New[[]int](10)

	reducer := NewIDReducer(
		WithOutputChan[int, []int, []int](output),
		WithFlushPeriod[int, []int, []int](10*time.Second),
	)
	defer reducer.Stop()

	for i := range 3 {
		require.NoError(t, reducer.Send(i))
	}
	reducer.Flush()
	batch1, ok := recvTimeout(t, output)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, batch1)

	for i := 10; i < 13; i++ {
		require.NoError(t, reducer.Send(i))
	}
	reducer.Flush()
	batch2, ok := recvTimeout(t, output)
	require.True(t, ok)
	assert.Equal(t, []int{10, 11, 12}, batch2)
}

func TestReducerCustomCollectFunc(t *testing.T) {
	log.Println("============== TestReducerCustomCollectFunc ================")
	output := New[int](10)

	// Custom reducer that sums integers
	reducer := NewReducer(
		WithOutputChan[int, int, int](output),
		WithFlushPeriod[int, int, int](10*time.Second),
	)
	reducer.CollectFunc = func(input int, sum int) (int, bool) {
		return sum + input, false
	}
	reducer.ReduceFunc = IDFunc[int]
	defer reducer.Stop()

	for i := 1; i <= 5; i++ {
		require.NoError(t, reducer.Send(i))
	}
	reducer.Flush()

	result, ok := recvTimeout(t, output)
	require.True(t, ok)
	assert.Equal(t, 15, result, "Sum should be 15")
}

func TestReducerCollectTriggeredFlush(t *testing.T) {
	log.Println("============== TestReducerCollectTriggeredFlush ================")
	output := New[[]int](10)

	reducer := NewIDReducer(
		WithOutputChan[int, []int, []int](output),
		WithFlushPeriod[int, []int, []int](10*time.Second),
	)
	// Flush as soon as a batch reaches 3 elements.
	base := reducer.CollectFunc
	reducer.CollectFunc = func(input int, collection []int) ([]int, bool) {
		c, _ := base(input, collection)
		return c, len(c) >= 3
	}
	defer reducer.Stop()

	for i := range 3 {
		require.NoError(t, reducer.Send(i))
	}

	batch, ok := recvTimeout(t, output)
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, batch)
}

func TestReducerStop(t *testing.T) {
	log.Println("============== TestReducerStop ================")
	output := New[[]int](10)

	reducer := NewIDReducer(
		WithOutputChan[int, []int, []int](output),
		WithFlushPeriod[int, []int, []int](time.Second),
	)

	require.NoError(t, reducer.Send(1))
	require.NoError(t, reducer.Send(2))

	done := make(chan bool, 1)
	go func() {
		reducer.Stop()
		done <- true
	}()
	assert.True(t, withTimeout(t, done), "Stop() must not block")

	assert.ErrorIs(t, reducer.Send(3), ErrClosedChannel, "a stopped reducer accepts no more input")
}

func TestReducerEmptyFlush(t *testing.T) {
	log.Println("============== TestReducerEmptyFlush ================")
	output := New[[]int](10)

	reducer := NewIDReducer(
		WithOutputChan[int, []int, []int](output),
		WithFlushPeriod[int, []int, []int](30*time.Millisecond),
	)
	defer reducer.Stop()

	batch, ok := recvTimeout(t, output)
	require.True(t, ok)
	assert.Empty(t, batch, "a flush with nothing collected produces an empty batch")
}

func TestReducerSendChan(t *testing.T) {
	log.Println("============== TestReducerSendChan ================")
	output := New[[]int](10)

	reducer := NewIDReducer(
		WithOutputChan[int, []int, []int](output),
		WithFlushPeriod[int, []int, []int](10*time.Second),
	)
	defer reducer.Stop()

	sendChan := reducer.SendChan()
	require.NoError(t, sendChan.Send(10))
	require.NoError(t, sendChan.Send(20))
	reducer.Flush()

	batch, ok := recvTimeout(t, output)
	require.True(t, ok)
	assert.Equal(t, []int{10, 20}, batch)
}
