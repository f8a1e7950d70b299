// File: buffer/bytebuffer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Growable byte FIFO with append-while-draining semantics. Writes always
// land in a pending segment while reads consume from the current segment;
// the two are swapped only once the current segment is exhausted, so a
// slice handed out by GetSlice stays valid across concurrent-in-stream
// appends for the duration of a synchronous read pass.

package buffer

import "encoding/binary"

// ByteBuffer is a growable FIFO of bytes.
//
// Internally it keeps two append-only segments: current, which reads consume
// from behind a read offset, and pending, which all appends extend. When the
// read offset reaches the end of current, the next read promotes pending to
// current and starts a fresh pending segment.
//
// The zero value is an empty buffer ready for use. A ByteBuffer is not safe
// for concurrent use by multiple goroutines.
type ByteBuffer struct {
	current []byte
	pending []byte
	readOff int
}

// NewByteBuffer returns an empty ByteBuffer.
func NewByteBuffer() *ByteBuffer {
	return &ByteBuffer{}
}

// Append appends p to the buffer. Previously returned GetSlice views remain
// valid: appends only ever extend the pending segment.
func (b *ByteBuffer) Append(p []byte) {
	b.pending = append(b.pending, p...)
}

// Len returns the number of unread bytes.
func (b *ByteBuffer) Len() int {
	return len(b.current) - b.readOff + len(b.pending)
}

// swap promotes pending to current once current is fully drained.
func (b *ByteBuffer) swap() {
	if b.readOff == len(b.current) {
		b.current, b.pending = b.pending, nil
		b.readOff = 0
	}
}

// Read copies up to len(dst) bytes into dst, consuming them, crossing the
// segment boundary if needed. It returns the number of bytes copied, which
// is zero when the buffer is empty.
func (b *ByteBuffer) Read(dst []byte) int {
	total := 0
	for total < len(dst) {
		b.swap()
		avail := len(b.current) - b.readOff
		if avail == 0 {
			break
		}
		n := copy(dst[total:], b.current[b.readOff:])
		b.readOff += n
		total += n
	}
	return total
}

// GetSlice consumes and returns a view of the next contiguous unread span of
// at most max bytes, or (nil, false) when the buffer is empty. The view may
// be shorter than max even when more data remains, because it never crosses
// the segment boundary. The view stays valid until the segment it points
// into is drained and recycled; callers must not retain it beyond the
// current read pass.
func (b *ByteBuffer) GetSlice(max int) ([]byte, bool) {
	b.swap()
	avail := len(b.current) - b.readOff
	if avail == 0 || max <= 0 {
		return nil, false
	}
	n := avail
	if max < n {
		n = max
	}
	s := b.current[b.readOff : b.readOff+n]
	b.readOff += n
	return s, true
}

// take consumes exactly n bytes into a stack scratch array, straddling the
// segment boundary if needed. ok is false, with nothing consumed, when fewer
// than n bytes remain.
func (b *ByteBuffer) take(n int) (tmp [8]byte, ok bool) {
	if b.Len() < n {
		return tmp, false
	}
	b.Read(tmp[:n])
	return tmp, true
}

// GetU8 consumes one byte.
func (b *ByteBuffer) GetU8() (uint8, bool) {
	tmp, ok := b.take(1)
	return tmp[0], ok
}

// GetI8 consumes one byte as a signed integer.
func (b *ByteBuffer) GetI8() (int8, bool) {
	tmp, ok := b.take(1)
	return int8(tmp[0]), ok
}

// GetU16BE consumes two bytes as a big-endian unsigned integer.
func (b *ByteBuffer) GetU16BE() (uint16, bool) {
	tmp, ok := b.take(2)
	return binary.BigEndian.Uint16(tmp[:2]), ok
}

// GetU16LE consumes two bytes as a little-endian unsigned integer.
func (b *ByteBuffer) GetU16LE() (uint16, bool) {
	tmp, ok := b.take(2)
	return binary.LittleEndian.Uint16(tmp[:2]), ok
}

// GetI16BE consumes two bytes as a big-endian signed integer.
func (b *ByteBuffer) GetI16BE() (int16, bool) {
	v, ok := b.GetU16BE()
	return int16(v), ok
}

// GetI16LE consumes two bytes as a little-endian signed integer.
func (b *ByteBuffer) GetI16LE() (int16, bool) {
	v, ok := b.GetU16LE()
	return int16(v), ok
}

// GetU32BE consumes four bytes as a big-endian unsigned integer.
func (b *ByteBuffer) GetU32BE() (uint32, bool) {
	tmp, ok := b.take(4)
	return binary.BigEndian.Uint32(tmp[:4]), ok
}

// GetU32LE consumes four bytes as a little-endian unsigned integer.
func (b *ByteBuffer) GetU32LE() (uint32, bool) {
	tmp, ok := b.take(4)
	return binary.LittleEndian.Uint32(tmp[:4]), ok
}

// GetI32BE consumes four bytes as a big-endian signed integer.
func (b *ByteBuffer) GetI32BE() (int32, bool) {
	v, ok := b.GetU32BE()
	return int32(v), ok
}

// GetI32LE consumes four bytes as a little-endian signed integer.
func (b *ByteBuffer) GetI32LE() (int32, bool) {
	v, ok := b.GetU32LE()
	return int32(v), ok
}

// GetU64BE consumes eight bytes as a big-endian unsigned integer.
func (b *ByteBuffer) GetU64BE() (uint64, bool) {
	tmp, ok := b.take(8)
	return binary.BigEndian.Uint64(tmp[:8]), ok
}

// GetU64LE consumes eight bytes as a little-endian unsigned integer.
func (b *ByteBuffer) GetU64LE() (uint64, bool) {
	tmp, ok := b.take(8)
	return binary.LittleEndian.Uint64(tmp[:8]), ok
}

// GetI64BE consumes eight bytes as a big-endian signed integer.
func (b *ByteBuffer) GetI64BE() (int64, bool) {
	v, ok := b.GetU64BE()
	return int64(v), ok
}

// GetI64LE consumes eight bytes as a little-endian signed integer.
func (b *ByteBuffer) GetI64LE() (int64, bool) {
	v, ok := b.GetU64LE()
	return int64(v), ok
}
