package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// frequencyDomainT implements blockStrategy via uniformly partitioned
// overlap-add: the zero-padded input block is transformed once, multiplied
// bin-wise with every precomputed partition spectrum, inverse-transformed,
// and routed through the same offset rule as the time-domain strategy.
// O(P*B*log B) per block.
//
// The inverse transform of the algo-fft plan is normalized, which supplies
// the 1/(2*blockSize) scaling of the forward/inverse round trip.
type frequencyDomainT[F algofft.Float, C algofft.Complex] struct {
	parts *partitionSetT[F, C]
	acc   *accumulatorT[F]

	signalBuf  []C // fftSize: packed input, later per-partition product
	signalFreq []C // fftSize: spectrum of the padded input block
	convTime   []F // fftSize: inverse-transformed product
}

func newFrequencyDomain[F algofft.Float, C algofft.Complex](
	parts *partitionSetT[F, C], acc *accumulatorT[F],
) *frequencyDomainT[F, C] {
	return &frequencyDomainT[F, C]{
		parts:      parts,
		acc:        acc,
		signalBuf:  make([]C, parts.fftSize),
		signalFreq: make([]C, parts.fftSize),
		convTime:   make([]F, parts.fftSize),
	}
}

func (s *frequencyDomainT[F, C]) processBlock(out, in []F) error {
	blockSize := s.parts.blockSize

	// Zero-pad the block to 2*blockSize and transform it once.
	clear(s.signalBuf)
	for i, v := range in {
		s.signalBuf[i] = toComplex[F, C](v)
	}

	if err := s.parts.plan.Forward(s.signalFreq, s.signalBuf); err != nil {
		return fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	for i, spectrum := range s.parts.spectra {
		for k := range s.signalBuf {
			s.signalBuf[k] = s.signalFreq[k] * spectrum[k]
		}

		if err := s.parts.plan.Inverse(s.signalBuf, s.signalBuf); err != nil {
			return fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		for k := range s.convTime {
			s.convTime[k] = toFloat[F, C](s.signalBuf[k])
		}

		routeContribution(out, s.acc, i*blockSize, s.convTime)
	}

	return nil
}
