package gochan

import "sync"

// Component represents any building block that can be part of a Block.
// All gochan goroutine primitives implement this interface.
//
// Components in this package have a close-driven lifecycle: they run
// until their input channel is closed and drained, so the interface
// exposes Wait rather than a Stop method. Shutting a component down
// means closing the channel that feeds it.
type Component interface {
	// Wait blocks until the component's goroutine has finished
	Wait()
}

// Block represents a composite made up of multiple connected primitives.
// A Block itself acts as a component and can be nested within other Blocks.
type Block struct {
	name       string
	mu         sync.RWMutex
	components []Component
}

// NewBlock creates a new block with the given name
func NewBlock(name string) *Block {
	return &Block{name: name}
}

// Add adds one or more components to this block
func (b *Block) Add(components ...Component) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.components = append(b.components, components...)
}

// Wait blocks until every component in the block has finished. Like the
// components themselves, a block is shut down by closing the channels
// that feed its upstream components; completion then cascades
// downstream as each stage drains.
func (b *Block) Wait() {
	b.mu.RLock()
	components := make([]Component, len(b.components))
	copy(components, b.components)
	b.mu.RUnlock()

	for _, comp := range components {
		comp.Wait()
	}
}

// Name returns the block's name
func (b *Block) Name() string {
	return b.name
}

// Count returns the number of components in this block
func (b *Block) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.components)
}
