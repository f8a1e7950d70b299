// File: buffer/bytebuffer_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package buffer

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestByteBufferRoundTrip(t *testing.T) {
	b := NewByteBuffer()
	src := []byte("the quick brown fox jumps over the lazy dog")
	b.Append(src)

	if b.Len() != len(src) {
		t.Fatalf("Len = %d, want %d", b.Len(), len(src))
	}

	got := make([]byte, 0, len(src))
	chunk := make([]byte, 7)
	for {
		n := b.Read(chunk)
		if n == 0 {
			break
		}
		got = append(got, chunk[:n]...)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip = %q, want %q", got, src)
	}
	if b.Len() != 0 {
		t.Fatalf("Len after drain = %d, want 0", b.Len())
	}
}

func TestByteBufferAppendWhileDraining(t *testing.T) {
	b := NewByteBuffer()
	a := []byte("abcdef")
	c := []byte("xyz")

	b.Append(a)
	head := make([]byte, 2)
	if n := b.Read(head); n != 2 {
		t.Fatalf("Read = %d, want 2", n)
	}
	b.Append(c)

	want := append([]byte("cdef"), c...)
	rest := make([]byte, len(want))
	if n := b.Read(rest); n != len(want) {
		t.Fatalf("Read = %d, want %d", n, len(want))
	}
	if !bytes.Equal(rest, want) {
		t.Fatalf("rest = %q, want %q", rest, want)
	}
}

// Scenario: append [0,1,2]; u16-BE reads 1; append [3,4]; the next u16-BE
// straddles the swap boundary and reads 515; one byte remains.
func TestByteBufferTypedReadsAcrossSwap(t *testing.T) {
	b := NewByteBuffer()
	b.Append([]byte{0, 1, 2})

	v, ok := b.GetU16BE()
	if !ok || v != 1 {
		t.Fatalf("GetU16BE = %d, %v; want 1, true", v, ok)
	}

	b.Append([]byte{3, 4})
	v, ok = b.GetU16BE()
	if !ok || v != 515 {
		t.Fatalf("GetU16BE = %d, %v; want 515, true", v, ok)
	}

	u, ok := b.GetU8()
	if !ok || u != 4 {
		t.Fatalf("GetU8 = %d, %v; want 4, true", u, ok)
	}
	if b.Len() != 0 {
		t.Fatalf("Len = %d, want 0", b.Len())
	}
}

func TestByteBufferTypedUnderflow(t *testing.T) {
	b := NewByteBuffer()
	b.Append([]byte{1, 2, 3})

	if _, ok := b.GetU32BE(); ok {
		t.Fatal("GetU32BE succeeded with 3 bytes available")
	}
	// Underflow must not consume anything.
	if b.Len() != 3 {
		t.Fatalf("Len after underflow = %d, want 3", b.Len())
	}
	if v, ok := b.GetU16LE(); !ok || v != 0x0201 {
		t.Fatalf("GetU16LE = %#x, %v; want 0x0201, true", v, ok)
	}
}

func TestByteBufferTypedWidths(t *testing.T) {
	b := NewByteBuffer()
	b.Append([]byte{0xff, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08})

	if v, ok := b.GetI8(); !ok || v != -1 {
		t.Fatalf("GetI8 = %d, %v; want -1, true", v, ok)
	}
	if v, ok := b.GetU64BE(); !ok || v != 0x0102030405060708 {
		t.Fatalf("GetU64BE = %#x, %v", v, ok)
	}

	b.Append([]byte{0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01})
	if v, ok := b.GetI64LE(); !ok || v != 0x0102030405060708 {
		t.Fatalf("GetI64LE = %#x, %v", v, ok)
	}

	b.Append([]byte{0x80, 0x00, 0x00, 0x00})
	if v, ok := b.GetI32BE(); !ok || v != -(1 << 31) {
		t.Fatalf("GetI32BE = %d, %v", v, ok)
	}
}

func TestByteBufferGetSlice(t *testing.T) {
	b := NewByteBuffer()
	b.Append([]byte("hello"))
	// Force a partial drain so the next append lands in a separate segment.
	if s, ok := b.GetSlice(2); !ok || string(s) != "he" {
		t.Fatalf("GetSlice(2) = %q, %v", s, ok)
	}
	b.Append([]byte("world"))

	// The remainder of the first segment comes out first, never crossing
	// the swap boundary.
	s, ok := b.GetSlice(64)
	if !ok || string(s) != "llo" {
		t.Fatalf("GetSlice(64) = %q, %v; want \"llo\"", s, ok)
	}
	s, ok = b.GetSlice(64)
	if !ok || string(s) != "world" {
		t.Fatalf("GetSlice(64) = %q, %v; want \"world\"", s, ok)
	}
	if _, ok := b.GetSlice(64); ok {
		t.Fatal("GetSlice on empty buffer returned a view")
	}
}

// Randomized append/read interleaving: whatever goes in must come out in
// order regardless of chunking.
func TestByteBufferPropertyBased(t *testing.T) {
	rng := rand.New(rand.NewSource(0x5eed))
	for trial := 0; trial < 50; trial++ {
		b := NewByteBuffer()
		var in, out []byte
		for op := 0; op < 200; op++ {
			if rng.Intn(2) == 0 {
				chunk := make([]byte, rng.Intn(17))
				rng.Read(chunk)
				b.Append(chunk)
				in = append(in, chunk...)
			} else {
				dst := make([]byte, rng.Intn(17))
				n := b.Read(dst)
				out = append(out, dst[:n]...)
			}
			if b.Len() != len(in)-len(out) {
				t.Fatalf("Len = %d, want %d", b.Len(), len(in)-len(out))
			}
		}
		rest := make([]byte, b.Len())
		b.Read(rest)
		out = append(out, rest...)
		if !bytes.Equal(in, out) {
			t.Fatalf("trial %d: stream mismatch", trial)
		}
	}
}
