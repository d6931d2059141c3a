// Package ringbuffer provides a fixed-capacity sample ring used as a
// delay line, with integer and linearly interpolated fractional taps.
package ringbuffer

import (
	"fmt"
	"math"
)

// Float constrains the supported sample types.
type Float interface {
	~float32 | ~float64
}

// Buffer is a fixed-capacity ring of samples. It starts zero-filled;
// Push writes at the write index, Pop consumes at the read index, and
// Get/GetFrac tap relative to the read index without consuming.
//
// Used as an always-full delay line by pushing and popping in lockstep:
// the read index then points at the oldest of the last Cap() samples.
type Buffer[F Float] struct {
	data  []F
	read  int
	write int
}

// New creates a zero-filled buffer with the given capacity.
func New[F Float](capacity int) (*Buffer[F], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("ringbuffer capacity must be > 0: %d", capacity)
	}
	return &Buffer[F]{data: make([]F, capacity)}, nil
}

// Reset zero-fills the buffer and rewinds both indices.
func (b *Buffer[F]) Reset() {
	clear(b.data)
	b.read = 0
	b.write = 0
}

// Push writes v at the write index and advances it, overwriting
// whatever was there.
func (b *Buffer[F]) Push(v F) {
	b.data[b.write] = v
	b.write = (b.write + 1) % len(b.data)
}

// Pop returns the value at the read index and advances it.
func (b *Buffer[F]) Pop() F {
	v := b.data[b.read]
	b.read = (b.read + 1) % len(b.data)
	return v
}

// Peek returns the value at the read index without advancing.
func (b *Buffer[F]) Peek() F {
	return b.data[b.read]
}

// Get returns the value offset samples past the read index.
func (b *Buffer[F]) Get(offset int) F {
	return b.data[(b.read+offset)%len(b.data)]
}

// GetFrac returns the value at a fractional offset past the read index,
// linearly interpolated between the two adjacent samples.
func (b *Buffer[F]) GetFrac(offset F) F {
	whole := math.Floor(float64(offset))
	frac := F(float64(offset) - whole)

	i := int(whole)
	return (1-frac)*b.Get(i) + frac*b.Get(i+1)
}

// ReadIndex returns the current read index.
func (b *Buffer[F]) ReadIndex() int { return b.read }

// SetReadIndex positions the read index.
func (b *Buffer[F]) SetReadIndex(i int) { b.read = ((i % len(b.data)) + len(b.data)) % len(b.data) }

// WriteIndex returns the current write index.
func (b *Buffer[F]) WriteIndex() int { return b.write }

// SetWriteIndex positions the write index.
func (b *Buffer[F]) SetWriteIndex(i int) { b.write = ((i % len(b.data)) + len(b.data)) % len(b.data) }

// Cap returns the buffer capacity.
func (b *Buffer[F]) Cap() int { return len(b.data) }
