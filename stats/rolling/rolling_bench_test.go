package rolling

import (
	"math"
	"strconv"
	"testing"
)

func makeBenchSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2*math.Pi*float64(i)/64) + 0.1*float64(i%7)
	}

	return out
}

func BenchmarkMeanStd(b *testing.B) {
	sizes := []int{256, 1024, 4096, 16384, 65536}
	for _, n := range sizes {
		a := makeBenchSeries(n)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * 8))

			for range b.N {
				_, _, _ = MeanStd(a, 64)
			}
		})
	}
}

func BenchmarkMean(b *testing.B) {
	a := makeBenchSeries(16384)
	b.ReportAllocs()
	b.SetBytes(int64(len(a) * 8))

	for range b.N {
		_, _ = Mean(a, 64)
	}
}
