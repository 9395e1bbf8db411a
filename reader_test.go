package gochan

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderPumpsUntilError(t *testing.T) {
	log.Println("============== TestReaderPumpsUntilError ================")
	next := 0
	read := func() (int, error) {
		if next >= 3 {
			return 0, io.EOF
		}
		next++
		return next - 1, nil
	}

	r := NewReader(read, WithOutputBuffer[int](5))
	assert.ErrorIs(t, withTimeout(t, r.ClosedChan()), io.EOF)
	r.Wait()

	// The reader owned its output, so after the error the channel is
	// closed and drains exactly the values read before it.
	assert.Equal(t, []int{0, 1, 2}, drain(r.RecvChan()))
}

func TestReaderStopsWhenOutputClosed(t *testing.T) {
	log.Println("============== TestReaderStopsWhenOutputClosed ================")
	out := New[int](0)
	counter := 0
	read := func() (int, error) {
		counter++
		return counter, nil
	}

	r := NewReader(read, WithReaderChan(out))

	v, ok := recvTimeout(t, out)
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = recvTimeout(t, out)
	require.True(t, ok)
	assert.Equal(t, 2, v)

	// Closing the channel under the reader is the shutdown signal.
	out.Close()
	assert.NoError(t, withTimeout(t, r.ClosedChan()))
	r.Wait()
}

func TestReaderOnDone(t *testing.T) {
	log.Println("============== TestReaderOnDone ================")
	donec := make(chan bool, 1)
	read := func() (int, error) { return 0, io.ErrUnexpectedEOF }

	r := NewReader(read, WithOnDone(func(*Reader[int]) { donec <- true }))
	assert.True(t, withTimeout(t, donec))
	r.Wait()
}
