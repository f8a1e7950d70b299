// File: buffer/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package buffer provides the two streaming containers used by the TCP
// server data path: ByteBuffer, a growable FIFO of bytes that stays
// appendable while it is being drained, and RingBuffer, a fixed-capacity
// circular queue with random access by logical index.
package buffer
