// Package slide computes the sliding dot product between a query and every
// equal-length window of a longer series.
//
// Two strategies are provided:
//
//   - FFTDotProduct: frequency-domain convolution, O(n log n), the fast path
//     for long series
//   - DirectDotProduct: time-domain convolution, O(n*m), the reference path
//     for short queries and correctness checks
//
// Both compute the full convolution of the series with the time-reversed
// query and keep only the trailing valid range [m-1, n); outputs before index
// m-1 are convolution edge effects and are discarded. The two paths agree
// within floating tolerance on the same input, and DotProduct picks between
// them based on query length.
package slide

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Errors returned by sliding dot product functions.
var (
	ErrEmptyInput   = errors.New("slide: empty input")
	ErrEmptyQuery   = errors.New("slide: empty query")
	ErrQueryTooLong = errors.New("slide: query longer than series")
)

// Queries at or below this length run faster in the time domain than through
// a pair of FFTs.
const directThreshold = 64

func validate(ts, query []float64) error {
	if len(ts) == 0 {
		return ErrEmptyInput
	}
	if len(query) == 0 {
		return ErrEmptyQuery
	}
	if len(query) > len(ts) {
		return ErrQueryTooLong
	}
	return nil
}

// DotProduct computes the sliding dot product with automatic strategy
// selection: direct convolution for short queries, FFT convolution otherwise.
// The result has length len(ts) - len(query) + 1.
func DotProduct(ts, query []float64) ([]float64, error) {
	if err := validate(ts, query); err != nil {
		return nil, err
	}

	if len(query) <= directThreshold {
		return DirectDotProduct(ts, query)
	}

	return FFTDotProduct(ts, query)
}

// FFTDotProduct computes the sliding dot product via frequency-domain
// convolution: both the series and the zero-padded, reversed query are
// transformed, multiplied bin-wise, and inverse-transformed; the real part of
// the trailing valid range [m-1, n) is the result.
//
// The FFT size is the next power of two that fits the full linear convolution
// (n + m - 1 samples), so the circular transform is free of wrap-around in
// the range that is kept.
func FFTDotProduct(ts, query []float64) ([]float64, error) {
	if err := validate(ts, query); err != nil {
		return nil, err
	}

	n := len(ts)
	m := len(query)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("slide: failed to create FFT plan: %w", err)
	}

	x := make([]complex128, fftSize)
	for i, v := range ts {
		x[i] = complex(v, 0)
	}

	// Reversed query, zero-padded to the FFT size.
	y := make([]complex128, fftSize)
	for i, v := range query {
		y[m-1-i] = complex(v, 0)
	}

	if err := plan.Forward(x, x); err != nil {
		return nil, fmt.Errorf("slide: forward FFT failed: %w", err)
	}
	if err := plan.Forward(y, y); err != nil {
		return nil, fmt.Errorf("slide: forward FFT failed: %w", err)
	}

	for i := range x {
		x[i] *= y[i]
	}

	if err := plan.Inverse(x, x); err != nil {
		return nil, fmt.Errorf("slide: inverse FFT failed: %w", err)
	}

	out := make([]float64, n-m+1)
	for i := range out {
		out[i] = real(x[m-1+i])
	}

	return out, nil
}

// DirectDotProduct computes the sliding dot product via direct time-domain
// convolution with the reversed query, trimmed to the same valid range as
// FFTDotProduct. This is the O(n*m) reference path.
func DirectDotProduct(ts, query []float64) ([]float64, error) {
	if err := validate(ts, query); err != nil {
		return nil, err
	}

	n := len(ts)
	m := len(query)

	full := make([]float64, n+m-1)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			full[i+j] += ts[i] * query[m-1-j]
		}
	}

	return full[m-1 : n], nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
