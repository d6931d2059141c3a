package conv

import (
	algofft "github.com/MeKo-Christian/algo-fft"
)

// accumulatorT stores convolution energy that has not yet been emitted,
// addressed by offset relative to the current output cursor: index 0 is
// the first sample after the end of the block just produced.
//
// It is a flat fixed-capacity slice with exactly two mutators, add and
// drainFront. The capacity covers the largest offset any partition can
// produce, (P+1)*blockSize - 1, so add never needs a bounds check beyond
// the invariants the partition set guarantees.
type accumulatorT[F algofft.Float] struct {
	buf []F
}

func newAccumulator[F algofft.Float](capacity int) *accumulatorT[F] {
	return &accumulatorT[F]{buf: make([]F, capacity)}
}

// add accumulates v at the given offset past the current cursor.
func (a *accumulatorT[F]) add(offset int, v F) {
	a.buf[offset] += v
}

// drainFront copies the first len(dst) pending values into dst, shifts
// the remainder down, and zero-backfills the vacated slots. This is the
// "advance the cursor by len(dst)" operation.
func (a *accumulatorT[F]) drainFront(dst []F) {
	n := len(dst)
	copy(dst, a.buf[:n])
	copy(a.buf, a.buf[n:])
	clear(a.buf[len(a.buf)-n:])
}

// reset zero-fills the buffer and rewinds the cursor.
func (a *accumulatorT[F]) reset() {
	clear(a.buf)
}

// capacity returns the total number of addressable offsets.
func (a *accumulatorT[F]) capacity() int {
	return len(a.buf)
}
