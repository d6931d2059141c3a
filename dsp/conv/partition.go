package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// partitionSetT holds the impulse response split into fixed-size
// partitions. In frequency mode each partition is additionally
// zero-extended to 2*blockSize samples and forward-transformed once, so
// the per-block spectral multiplication realizes linear rather than
// circular convolution.
//
// A partition set is immutable after construction and exclusively owned
// by one engine instance. Concatenating the time partitions and dropping
// the final zero padding reconstructs the kernel exactly.
type partitionSetT[F algofft.Float, C algofft.Complex] struct {
	blockSize int
	kernelLen int
	fftSize   int // 2*blockSize, frequency mode only

	time    [][]F // partition i, zero-padded to blockSize samples
	spectra [][]C // frequency mode: FFT of partition i, fftSize bins

	plan *algofft.Plan[C] // frequency mode only, shared with the strategy
}

// newPartitionSet validates the configuration and precomputes the
// partitions (and, in frequency mode, their spectra).
func newPartitionSet[F algofft.Float, C algofft.Complex](
	kernel []F, mode Mode, blockSize int,
) (*partitionSetT[F, C], error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyImpulseResponse
	}

	if blockSize <= 0 {
		return nil, fmt.Errorf("%w: block size must be positive, got %d", ErrInvalidBlockSize, blockSize)
	}

	if mode == FrequencyDomain && !isPowerOf2(blockSize) {
		return nil, fmt.Errorf("%w: frequency-domain block size must be a power of two, got %d",
			ErrInvalidBlockSize, blockSize)
	}

	count := (len(kernel) + blockSize - 1) / blockSize

	ps := &partitionSetT[F, C]{
		blockSize: blockSize,
		kernelLen: len(kernel),
		time:      make([][]F, count),
	}

	// The kernel is copied partition by partition; the caller's slice is
	// never retained. The final partition is zero-padded to blockSize.
	for i := range ps.time {
		part := make([]F, blockSize)
		copy(part, kernel[i*blockSize:min((i+1)*blockSize, len(kernel))])
		ps.time[i] = part
	}

	if mode == FrequencyDomain {
		if err := ps.computeSpectra(); err != nil {
			return nil, err
		}
	}

	return ps, nil
}

// computeSpectra transforms every partition, zero-extended to twice the
// block size, into its complex spectrum.
func (ps *partitionSetT[F, C]) computeSpectra() error {
	ps.fftSize = 2 * ps.blockSize

	plan, err := algofft.NewPlanT[C](ps.fftSize)
	if err != nil {
		return fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}
	ps.plan = plan

	padded := make([]C, ps.fftSize)
	ps.spectra = make([][]C, len(ps.time))

	for i, part := range ps.time {
		clear(padded)
		for k, v := range part {
			padded[k] = toComplex[F, C](v)
		}

		spectrum := make([]C, ps.fftSize)
		if err := plan.Forward(spectrum, padded); err != nil {
			return fmt.Errorf("conv: failed to transform partition %d: %w", i, err)
		}
		ps.spectra[i] = spectrum
	}

	return nil
}

// count returns the number of partitions P = ceil(kernelLen/blockSize).
func (ps *partitionSetT[F, C]) count() int {
	return len(ps.time)
}
