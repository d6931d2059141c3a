package conv

import (
	algofft "github.com/MeKo-Christian/algo-fft"
)

// blockStrategy computes one block of partitioned convolution.
//
// processBlock adds the contributions of the current input block on top
// of out (which the engine has pre-filled with the drained accumulator
// baseline) and schedules all contributions landing past the block
// boundary in the shared accumulator. Implementations must not allocate.
type blockStrategy[F algofft.Float] interface {
	processBlock(out, in []F) error
}

// routeContribution adds one partition's convolution result, which starts
// at absolute offset base relative to the beginning of the current block.
// Samples landing inside the block go directly into out; everything past
// the boundary is scheduled in the accumulator at offset-len(out).
func routeContribution[F algofft.Float](out []F, acc *accumulatorT[F], base int, contrib []F) {
	blockSize := len(out)
	for k, v := range contrib {
		if off := base + k; off < blockSize {
			out[off] += v
		} else {
			acc.add(off-blockSize, v)
		}
	}
}
