package conv

import (
	"github.com/cwbudde/algo-vecmath"
)

// Direct performs one-shot direct time-domain linear convolution of signal
// and kernel. Returns a new slice of length len(signal) + len(kernel) - 1.
//
// This is an O(N*M) algorithm. For streaming use with long kernels, create
// a [Convolver] in FrequencyDomain mode instead.
func Direct(signal, kernel []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}
	if len(kernel) == 0 {
		return nil, ErrEmptyImpulseResponse
	}

	result := make([]float64, len(signal)+len(kernel)-1)
	DirectTo(result, signal, kernel)
	return result, nil
}

// DirectTo performs direct convolution into a pre-allocated destination.
// dst must have length len(signal) + len(kernel) - 1.
func DirectTo(dst, signal, kernel []float64) {
	for i := range dst {
		dst[i] = 0
	}

	// SIMD pays off once the kernel spans a few vector lanes.
	const simdThreshold = 4
	if len(kernel) >= simdThreshold {
		directToSIMD(dst, signal, kernel)
	} else {
		directToScalar(dst, signal, kernel)
	}
}

func directToScalar(dst, signal, kernel []float64) {
	for i, x := range signal {
		for j, h := range kernel {
			dst[i+j] += x * h
		}
	}
}

// directToSIMD vectorizes the inner loop via vecmath block operations.
func directToSIMD(dst, signal, kernel []float64) {
	m := len(kernel)
	temp := make([]float64, m)

	for i, x := range signal {
		vecmath.ScaleBlock(temp, kernel, x)
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}
