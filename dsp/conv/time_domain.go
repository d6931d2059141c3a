package conv

import (
	algofft "github.com/MeKo-Christian/algo-fft"
)

// timeDomainT implements blockStrategy by direct multiply-accumulate:
// every (input sample, kernel sample) pair of every partition contributes
// input[a]*partition[i][b] at absolute offset i*blockSize + a + b.
// O(P*B^2) per block.
type timeDomainT[F algofft.Float, C algofft.Complex] struct {
	parts *partitionSetT[F, C]
	acc   *accumulatorT[F]

	// One partition's full convolution with the block, 2*blockSize-1
	// samples, reused across partitions and calls.
	scratch []F
}

func newTimeDomain[F algofft.Float, C algofft.Complex](
	parts *partitionSetT[F, C], acc *accumulatorT[F],
) *timeDomainT[F, C] {
	return &timeDomainT[F, C]{
		parts:   parts,
		acc:     acc,
		scratch: make([]F, 2*parts.blockSize-1),
	}
}

func (s *timeDomainT[F, C]) processBlock(out, in []F) error {
	blockSize := s.parts.blockSize

	for i, part := range s.parts.time {
		clear(s.scratch)

		// Zero input samples are multiplied out rather than skipped so
		// non-finite kernel values propagate arithmetically.
		for a, x := range in {
			for b, h := range part {
				s.scratch[a+b] += x * h
			}
		}

		routeContribution(out, s.acc, i*blockSize, s.scratch)
	}

	return nil
}
