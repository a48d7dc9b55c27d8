// Package rolling computes sliding-window statistics over a time series.
//
// Mean and standard deviation are produced for every window position in a
// single O(n) pass over the input by sliding a rolling sum and sum of squares
// rather than rescanning each window. Standard deviation is the population
// form (denominator = window), matching the z-normalization used by
// distance-profile computation.
package rolling

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by rolling statistics functions.
var (
	ErrEmptyInput    = errors.New("rolling: empty input")
	ErrInvalidWindow = errors.New("rolling: invalid window size")
)

func validate(a []float64, window int) error {
	if len(a) == 0 {
		return ErrEmptyInput
	}
	if window < 1 || window > len(a) {
		return ErrInvalidWindow
	}
	return nil
}

// MeanStd computes the sliding mean and population standard deviation of a
// for the given window size. Both results have length len(a) - window + 1.
//
// The two statistics share one rolling sum and sum of squares, so this is
// cheaper than separate Mean and Std calls and is the intended entry point
// for distance-profile computation. Rounding in the rolling accumulators can
// drive the variance of a near-constant window slightly negative; such values
// are clamped to zero so the standard deviation stays real.
func MeanStd(a []float64, window int) ([]float64, []float64, error) {
	if err := validate(a, window); err != nil {
		return nil, nil, err
	}

	n := len(a)
	count := n - window + 1
	mean := make([]float64, count)
	std := make([]float64, count)

	// Element-wise squares via the SIMD kernel; the rolling pass below only
	// ever adds and subtracts precomputed terms.
	sq := make([]float64, n)
	vecmath.MulBlock(sq, a, a)

	var sum, sumSq float64
	for i := 0; i < window; i++ {
		sum += a[i]
		sumSq += sq[i]
	}

	w := float64(window)
	for i := 0; ; i++ {
		mu := sum / w
		variance := sumSq/w - mu*mu
		if variance < 0 {
			variance = 0
		}

		mean[i] = mu
		std[i] = math.Sqrt(variance)

		if i+window >= n {
			break
		}
		sum += a[i+window] - a[i]
		sumSq += sq[i+window] - sq[i]
	}

	return mean, std, nil
}

// Mean computes the sliding arithmetic mean of a for the given window size.
// The result has length len(a) - window + 1.
func Mean(a []float64, window int) ([]float64, error) {
	if err := validate(a, window); err != nil {
		return nil, err
	}

	n := len(a)
	out := make([]float64, n-window+1)

	var sum float64
	for i := 0; i < window; i++ {
		sum += a[i]
	}

	w := float64(window)
	for i := 0; ; i++ {
		out[i] = sum / w
		if i+window >= n {
			break
		}
		sum += a[i+window] - a[i]
	}

	return out, nil
}

// Std computes the sliding population standard deviation of a for the given
// window size. The result has length len(a) - window + 1.
func Std(a []float64, window int) ([]float64, error) {
	_, std, err := MeanStd(a, window)
	return std, err
}
