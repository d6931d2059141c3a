package conv

import (
	"errors"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by the convolution engine.
var (
	ErrEmptyInput           = errors.New("conv: empty input")
	ErrEmptyImpulseResponse = errors.New("conv: empty impulse response")
	ErrInvalidBlockSize     = errors.New("conv: invalid block size")
	ErrInvalidMode          = errors.New("conv: invalid convolution mode")
	ErrLengthMismatch       = errors.New("conv: block length mismatch")
	ErrPartitionOutOfRange  = errors.New("conv: partition index out of range")
)

// Mode selects the per-block convolution strategy.
type Mode int

const (
	// TimeDomain computes every block by direct multiply-accumulate.
	TimeDomain Mode = iota

	// FrequencyDomain computes every block by partitioned spectral
	// multiplication. Requires a power-of-two block size.
	FrequencyDomain
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case TimeDomain:
		return "TimeDomain"
	case FrequencyDomain:
		return "FrequencyDomain"
	default:
		return "Unknown"
	}
}

// isPowerOf2 returns true if n is a power of 2.
func isPowerOf2(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}

// toComplex converts a real sample to the matching complex type.
func toComplex[F algofft.Float, C algofft.Complex](v F) C {
	return C(complex(float64(v), 0))
}

// toFloat extracts the real part of a complex sample.
func toFloat[F algofft.Float, C algofft.Complex](c C) F {
	return F(real(complex128(c)))
}
