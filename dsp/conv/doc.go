// Package conv implements a block-based convolution engine for streaming
// audio: a fixed impulse response is convolved against a stream of
// fixed-size input blocks, producing the full linear convolution block by
// block plus a drainable tail.
//
// The engine supports two interchangeable per-block strategies:
//
//   - TimeDomain: direct multiply-accumulate over every partition,
//     O(P*B^2) per block. Simple, exact, best for short kernels.
//   - FrequencyDomain: uniformly partitioned overlap-add via FFT,
//     O(P*B*log B) per block. The kernel partitions are transformed once
//     at construction.
//
// Both strategies produce matching results within floating tolerance.
//
// # Usage
//
//	c, err := conv.NewConvolver(kernel, conv.FrequencyDomain, 1024)
//	out := make([]float64, 1024)
//	for each input block {
//		err = c.ProcessBlockTo(out, block) // out includes carried-over tail energy
//	}
//	tail := make([]float64, c.OutputTailSize())
//	c.Flush(tail) // remaining len(kernel)-1 samples
//
// ProcessBlockTo and Flush are allocation-free and their per-call cost is
// independent of how much of the stream has been processed, making them
// suitable for real-time audio callbacks. A Convolver is not safe for
// concurrent use.
//
// For one-shot convolution of complete signals, [Direct] performs plain
// time-domain convolution with SIMD-accelerated inner loops.
package conv
