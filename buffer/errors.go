// File: buffer/errors.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import "errors"

// Errors surfaced by RingBuffer operations.
var (
	ErrNoCapacity  = errors.New("ring buffer is full")
	ErrOutOfBounds = errors.New("index exceeds ring buffer capacity")
)
