package gochan

// ring is a fixed-capacity FIFO over a circular slice. It is the
// storage collaborator for BufferChannel and is never used on its own:
// all access happens under the owning channel's mutex, so ring itself
// is unsynchronized.
type ring[T any] struct {
	items []T
	head  int
	count int
}

func newRing[T any](capacity int) ring[T] {
	return ring[T]{items: make([]T, capacity)}
}

// push appends v at the tail. The caller must have checked full().
func (r *ring[T]) push(v T) {
	tail := (r.head + r.count) % len(r.items)
	r.items[tail] = v
	r.count++
}

// tryPop removes and returns the oldest element, if any.
func (r *ring[T]) tryPop() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	v := r.items[r.head]
	r.items[r.head] = zero
	r.head = (r.head + 1) % len(r.items)
	r.count--
	return v, true
}

func (r *ring[T]) empty() bool { return r.count == 0 }

func (r *ring[T]) full() bool { return r.count == len(r.items) }
