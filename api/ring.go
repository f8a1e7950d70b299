// File: api/ring.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Fixed-capacity FIFO contract with random access by logical index.

package api

import "github.com/momentics/reax/buffer"

// Ring is the fixed-capacity circular queue contract.
type Ring[T any] interface {
	// Push appends an item; returns buffer.ErrNoCapacity when full.
	Push(item T) error
	// Pop removes and returns the oldest item; ok is false when empty.
	Pop() (T, bool)
	// Peek returns the oldest item without removing it; ok is false when empty.
	Peek() (T, bool)
	// Get returns the item at logical index i counted from the read end.
	// An index beyond the fixed capacity is a buffer.ErrOutOfBounds error;
	// an index within capacity but beyond the current fill is absent
	// (ok == false).
	Get(i int) (item T, ok bool, err error)
	// Len returns the number of items currently queued.
	Len() int
	// Cap returns the fixed capacity.
	Cap() int
	// FreeSpace returns Cap() - Len().
	FreeSpace() int
	// IsEmpty reports whether no items are queued.
	IsEmpty() bool
}

// Compile-time interface compliance.
var _ Ring[int] = (*buffer.RingBuffer[int])(nil)
