// Package buffer maintains the queue of pending actions waiting to be mined
// into a block. Unlike a fee market mempool, this buffer is strictly first
// in first out: actions land in blocks in the exact order they arrived, no
// entry is reordered, deduplicated or dropped.
package buffer

import (
	"sync"

	"github.com/actionchain/actionchain/foundation/blockchain/database"
)

// Buffer represents the in memory list of pending actions. Enqueue and the
// flush threshold check are guarded by the same lock so two producers can't
// both observe the threshold being reached.
type Buffer struct {
	mu      sync.RWMutex
	pending []database.BlockAction
}

// New constructs a new buffer for pending actions.
func New() *Buffer {
	return &Buffer{}
}

// Add appends an action to the end of the pending list and returns the new
// pending count so the caller can decide if the batch threshold is reached.
func (b *Buffer) Add(action database.BlockAction) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, action)

	return len(b.pending)
}

// Count returns the current number of pending actions.
func (b *Buffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.pending)
}

// Copy returns a copy of the pending list in enqueue order.
func (b *Buffer) Copy() []database.BlockAction {
	b.mu.RLock()
	defer b.mu.RUnlock()

	cpy := make([]database.BlockAction, len(b.pending))
	copy(cpy, b.pending)

	return cpy
}

// Drop removes the first n actions from the pending list. It is called after
// a mined block containing those actions has been written, actions enqueued
// during mining keep their position.
func (b *Buffer) Drop(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n >= len(b.pending) {
		b.pending = nil
		return
	}

	b.pending = append([]database.BlockAction{}, b.pending[n:]...)
}

// Truncate clears all the pending actions from the buffer.
func (b *Buffer) Truncate() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = nil
}
