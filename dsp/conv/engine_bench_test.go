package conv

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-convolver/internal/testutil"
)

func BenchmarkProcessBlockTo(b *testing.B) {
	benchmarks := []struct {
		kernelLen int
		blockSize int
	}{
		{256, 64},
		{4096, 128},
		{16384, 512},
	}

	for _, bm := range benchmarks {
		kernel := testutil.DeterministicNoise(1, 1.0, bm.kernelLen)
		input := testutil.DeterministicNoise(2, 1.0, bm.blockSize)
		output := make([]float64, bm.blockSize)

		for _, mode := range []Mode{TimeDomain, FrequencyDomain} {
			name := fmt.Sprintf("%v/kernel%d/block%d", mode, bm.kernelLen, bm.blockSize)

			b.Run(name, func(b *testing.B) {
				c, err := NewConvolver(kernel, mode, bm.blockSize)
				if err != nil {
					b.Fatalf("NewConvolver failed: %v", err)
				}

				b.ReportAllocs()
				b.ResetTimer()

				for range b.N {
					_ = c.ProcessBlockTo(output, input)
				}
			})
		}
	}
}

func BenchmarkProcessBlockTo32(b *testing.B) {
	kernel := testutil.ToFloat32(testutil.DeterministicNoise(1, 1.0, 4096))
	input := testutil.ToFloat32(testutil.DeterministicNoise(2, 1.0, 128))
	output := make([]float32, 128)

	c, err := NewConvolver32(kernel, FrequencyDomain, 128)
	if err != nil {
		b.Fatalf("NewConvolver32 failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		_ = c.ProcessBlockTo(output, input)
	}
}

func BenchmarkDirect(b *testing.B) {
	signal := testutil.DeterministicNoise(1, 1.0, 4096)

	for _, kernelLen := range []int{8, 64, 512} {
		kernel := testutil.DeterministicNoise(2, 1.0, kernelLen)
		dst := make([]float64, len(signal)+kernelLen-1)

		b.Run(fmt.Sprintf("kernel%d", kernelLen), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				DirectTo(dst, signal, kernel)
			}
		})
	}
}
