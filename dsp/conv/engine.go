package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ConvolverT is a block-based convolution engine with a fixed impulse
// response. It emits the full linear convolution of the input stream:
// every processed block already includes tail energy carried over from
// earlier blocks, and the final OutputTailSize() samples are drained via
// Flush after the stream ends.
//
// The type parameters F and C select precision; use the [Convolver] and
// [Convolver32] specializations for the common cases.
//
// ProcessBlockTo and Flush are allocation-free with per-call cost
// independent of the stream position. A ConvolverT is exclusively owned
// by its caller: it is not safe for concurrent use and not reentrant.
type ConvolverT[F algofft.Float, C algofft.Complex] struct {
	mode      Mode
	blockSize int
	kernelLen int

	parts    *partitionSetT[F, C]
	acc      *accumulatorT[F]
	strategy blockStrategy[F]

	tailRemaining int
}

// Convolver is the float64 specialization of ConvolverT.
type Convolver = ConvolverT[float64, complex128]

// Convolver32 is the float32 specialization of ConvolverT.
type Convolver32 = ConvolverT[float32, complex64]

// NewConvolverT creates a generic convolution engine for the given kernel.
//
// blockSize is the fixed size of input and output blocks and must be
// positive; FrequencyDomain mode additionally requires a power of two.
// The kernel is copied; the caller's slice is not retained.
func NewConvolverT[F algofft.Float, C algofft.Complex](
	kernel []F, mode Mode, blockSize int,
) (*ConvolverT[F, C], error) {
	if mode != TimeDomain && mode != FrequencyDomain {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}

	parts, err := newPartitionSet[F, C](kernel, mode, blockSize)
	if err != nil {
		return nil, err
	}

	// (P+1)*blockSize slots cover the largest possible scheduling offset,
	// P*blockSize + blockSize - 1.
	acc := newAccumulator[F]((parts.count() + 1) * blockSize)

	c := &ConvolverT[F, C]{
		mode:          mode,
		blockSize:     blockSize,
		kernelLen:     len(kernel),
		parts:         parts,
		acc:           acc,
		tailRemaining: len(kernel) - 1,
	}

	switch mode {
	case TimeDomain:
		c.strategy = newTimeDomain(parts, acc)
	case FrequencyDomain:
		c.strategy = newFrequencyDomain(parts, acc)
	}

	return c, nil
}

// NewConvolver creates a float64 convolution engine.
func NewConvolver(kernel []float64, mode Mode, blockSize int) (*Convolver, error) {
	return NewConvolverT[float64, complex128](kernel, mode, blockSize)
}

// NewConvolver32 creates a float32 convolution engine.
func NewConvolver32(kernel []float32, mode Mode, blockSize int) (*Convolver32, error) {
	return NewConvolverT[float32, complex64](kernel, mode, blockSize)
}

// ProcessBlock convolves a single input block and returns the output
// block. Input must be exactly BlockSize() samples; callers whose stream
// length is not a multiple of the block size must zero-pad the final
// block themselves.
func (c *ConvolverT[F, C]) ProcessBlock(input []F) ([]F, error) {
	output := make([]F, c.blockSize)
	if err := c.ProcessBlockTo(output, input); err != nil {
		return nil, err
	}
	return output, nil
}

// ProcessBlockTo convolves an input block into a pre-allocated output
// block, both exactly BlockSize() samples. This is the zero-allocation
// variant of ProcessBlock.
//
// The call either succeeds and advances the stream by one block, or fails
// before any state mutation.
func (c *ConvolverT[F, C]) ProcessBlockTo(output, input []F) error {
	if len(input) != c.blockSize {
		return fmt.Errorf("%w: expected %d input samples, got %d", ErrLengthMismatch, c.blockSize, len(input))
	}
	if len(output) != c.blockSize {
		return fmt.Errorf("%w: expected %d output samples, got %d", ErrLengthMismatch, c.blockSize, len(output))
	}

	// Previously scheduled tail energy is the baseline for this block;
	// the strategy then adds the current block's contributions on top.
	c.acc.drainFront(output)

	return c.strategy.processBlock(output, input)
}

// Flush drains up to min(len(output), remaining tail) pending samples
// into output and returns the count written; the rest of output is
// zeroed. The total across all Flush calls equals OutputTailSize().
// Calling Flush after the tail is exhausted writes zeros and returns 0.
func (c *ConvolverT[F, C]) Flush(output []F) int {
	clear(output)

	n := min(len(output), c.tailRemaining)
	if n > 0 {
		c.acc.drainFront(output[:n])
		c.tailRemaining -= n
	}

	return n
}

// OutputTailSize returns the tail length len(kernel) - 1, independent of
// block size, call history, or resets.
func (c *ConvolverT[F, C]) OutputTailSize() int {
	return c.kernelLen - 1
}

// Reset zeroes all carried-over tail energy and rewinds the stream,
// ready for a fresh signal. The partition set, mode, and block size are
// untouched; changing any of those requires a new engine.
func (c *ConvolverT[F, C]) Reset() {
	c.acc.reset()
	c.tailRemaining = c.kernelLen - 1
}

// BlockSize returns the fixed input/output block size.
func (c *ConvolverT[F, C]) BlockSize() int {
	return c.blockSize
}

// KernelLen returns the impulse response length.
func (c *ConvolverT[F, C]) KernelLen() int {
	return c.kernelLen
}

// Mode returns the configured convolution strategy.
func (c *ConvolverT[F, C]) Mode() Mode {
	return c.mode
}

// PartitionCount returns the number of kernel partitions,
// ceil(KernelLen()/BlockSize()).
func (c *ConvolverT[F, C]) PartitionCount() int {
	return c.parts.count()
}

// TimePartition returns a copy of partition i in the time domain,
// BlockSize() samples with the final partition zero-padded.
func (c *ConvolverT[F, C]) TimePartition(i int) ([]F, error) {
	if i < 0 || i >= c.parts.count() {
		return nil, fmt.Errorf("%w: index %d, have %d partitions", ErrPartitionOutOfRange, i, c.parts.count())
	}

	part := make([]F, c.blockSize)
	copy(part, c.parts.time[i])
	return part, nil
}

// FrequencyPartition returns a copy of partition i's precomputed
// spectrum, 2*BlockSize() bins. It fails in TimeDomain mode, where no
// spectra are computed.
func (c *ConvolverT[F, C]) FrequencyPartition(i int) ([]C, error) {
	if c.mode != FrequencyDomain {
		return nil, fmt.Errorf("%w: no spectra in %v mode", ErrInvalidMode, c.mode)
	}
	if i < 0 || i >= c.parts.count() {
		return nil, fmt.Errorf("%w: index %d, have %d partitions", ErrPartitionOutOfRange, i, c.parts.count())
	}

	spectrum := make([]C, c.parts.fftSize)
	copy(spectrum, c.parts.spectra[i])
	return spectrum, nil
}
