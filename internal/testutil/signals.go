package testutil

import (
	"math"
	"math/rand"
)

// Noise generates a reproducible gaussian series for a fixed seed.
func Noise(seed int64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// SineSeries generates a sine with the given period in samples.
func SineSeries(period, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*float64(i)/period)
	}
	return out
}

// ConstantSeries generates a constant-valued series. Every window of such a
// series has zero variance, which exercises the degenerate-statistics paths.
func ConstantSeries(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
