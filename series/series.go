// Package series provides validation, conversion, and sanitization of raw
// time-series input for distance-profile computation.
//
// All downstream numeric kernels operate on one-dimensional []float64 data.
// This package is the single entry point that turns caller-supplied sequences
// into that canonical form and deals with non-finite values (NaN, ±Inf),
// which matrix-profile algorithms handle by masking rather than by erroring.
//
// # Usage
//
//	ts, query, err := series.ValidateSeriesAndQuery(rawTS, rawQuery)
//	if err != nil { ... }
//
//	pl := series.ProfileLength(len(ts), len(query))
//	skip := series.FindSkipLocations(ts, pl, len(query))
//	ts = series.CleanNonFinite(ts)
package series

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by validation and conversion functions.
var (
	ErrNotArrayLike      = errors.New("series: value is not array-like")
	ErrNotOneDimensional = errors.New("series: value is not one-dimensional")
	ErrEmptyInput        = errors.New("series: empty input")
	ErrQueryTooLong      = errors.New("series: query longer than time series")
)

// FromAny converts a sequence-like value into a []float64.
//
// Accepted forms are []float64 (returned as-is, no copy), []float32, []int,
// []int32, and []int64, all upcast to float64. Nested slices fail with
// ErrNotOneDimensional; anything else fails with ErrNotArrayLike.
func FromAny(value any) ([]float64, error) {
	switch v := value.(type) {
	case []float64:
		return v, nil
	case []float32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int32:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case []int64:
		out := make([]float64, len(v))
		for i, x := range v {
			out[i] = float64(x)
		}
		return out, nil
	case [][]float64, [][]float32, [][]int, [][]int32, [][]int64:
		return nil, ErrNotOneDimensional
	default:
		return nil, ErrNotArrayLike
	}
}

// IsArrayLike reports whether FromAny can convert value.
func IsArrayLike(value any) bool {
	_, err := FromAny(value)
	return err == nil
}

// IsSimilarityJoin reports whether two distinct series are being joined,
// i.e. both arguments are array-like. A nil second series means a self-join.
func IsSimilarityJoin(tsA, tsB any) bool {
	return IsArrayLike(tsA) && IsArrayLike(tsB)
}

// ProfileLength returns the number of alignment positions for a series of
// length n and a query of length m: n - m + 1.
func ProfileLength(n, m int) int {
	return n - m + 1
}

// ValidateSeriesAndQuery converts and validates a time series and query pair.
//
// Both arguments are converted with FromAny in order; the returned error names
// the failing argument and wraps the sentinel distinguishing not-array-like
// from not-one-dimensional. Empty inputs and queries longer than the series
// are rejected before any numeric work.
func ValidateSeriesAndQuery(ts, query any) ([]float64, []float64, error) {
	tsArr, err := FromAny(ts)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid ts value: %w", err)
	}

	queryArr, err := FromAny(query)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid query value: %w", err)
	}

	if len(tsArr) == 0 {
		return nil, nil, fmt.Errorf("invalid ts value: %w", ErrEmptyInput)
	}
	if len(queryArr) == 0 {
		return nil, nil, fmt.Errorf("invalid query value: %w", ErrEmptyInput)
	}
	if len(queryArr) > len(tsArr) {
		return nil, nil, ErrQueryTooLong
	}

	return tsArr, queryArr, nil
}

// FindSkipLocations returns a mask of length profileLength where position i is
// true iff the window ts[i : i+windowSize] contains a NaN or ±Inf value.
//
// Every window is scanned independently. An incremental scan that carries
// state across overlapping windows can miss values entering and leaving the
// window in the same step, so the full rescan is deliberate.
func FindSkipLocations(ts []float64, profileLength, windowSize int) []bool {
	skip := make([]bool, profileLength)

	for i := 0; i < profileLength; i++ {
		for _, v := range ts[i : i+windowSize] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				skip[i] = true
				break
			}
		}
	}

	return skip
}

// CleanNonFinite replaces every NaN and ±Inf entry with 0 and returns the
// slice.
//
// The input is mutated in place: the caller hands over ownership of the
// buffer and must copy beforehand if the original values matter. When the
// same slice is shared across parallel batches, clean once before dispatch.
func CleanNonFinite(ts []float64) []float64 {
	for i, v := range ts {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			ts[i] = 0
		}
	}

	return ts
}
