// Package profile turns sliding dot products and window statistics into a
// z-normalized Euclidean distance profile, and masks trivial self-matches.
//
// Degenerate positions are part of the output, not failures: a zero-variance
// window divides by zero and a rounding-induced negative squared distance
// falls outside the square root's domain, and both surface as non-finite
// entries at that position while the rest of the profile stays valid.
// Callers that want mismatched statistics flagged instead of silently turned
// into NaN can opt into strict checking with WithStrictCheck.
package profile

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by distance profile functions.
var (
	ErrLengthMismatch     = errors.New("profile: statistics length mismatch")
	ErrInvalidWindow      = errors.New("profile: invalid window size")
	ErrInvariantViolation = errors.New("profile: squared distance substantially negative")
)

type config struct {
	strict    bool
	strictTol float64
}

// Option mutates the distance computation configuration.
type Option func(*config)

// WithStrictCheck enables invariant checking: a finite squared distance below
// -tol fails with ErrInvariantViolation instead of propagating as NaN. Zero
// standard deviations still produce a non-finite entry at that position only.
// Rounding noise sits within a few ulps of zero, so tolerances around 1e-9
// separate it reliably from mismatched statistics input. A tol <= 0 falls
// back to 1e-9.
func WithStrictCheck(tol float64) Option {
	return func(cfg *config) {
		if tol <= 0 {
			tol = 1e-9
		}
		cfg.strict = true
		cfg.strictTol = tol
	}
}

// Distances computes the z-normalized Euclidean distance profile from a
// sliding dot product and precomputed window statistics.
//
// For each position i:
//
//	dSq = 2 * (w - (dot[i] - w*tsMean[i]*queryMean) / (tsStd[i]*queryStd))
//	dist[i] = sqrt(dSq)
//
// Division by a zero standard deviation and negative values under the square
// root both yield a non-finite entry at that position only; strict checking
// flags finite negatives but never the zero-deviation degeneracy.
func Distances(dot []float64, windowSize int, tsMean, tsStd []float64, queryMean, queryStd float64, opts ...Option) ([]float64, error) {
	if windowSize < 1 {
		return nil, ErrInvalidWindow
	}
	if len(tsMean) != len(dot) || len(tsStd) != len(dot) {
		return nil, fmt.Errorf("%w: dot %d, mean %d, std %d",
			ErrLengthMismatch, len(dot), len(tsMean), len(tsStd))
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	w := float64(windowSize)
	dist := make([]float64, len(dot))

	for i := range dot {
		dSq := 2 * (w - (dot[i]-w*tsMean[i]*queryMean)/(tsStd[i]*queryStd))

		// A -Inf squared distance comes from dividing by a zero standard
		// deviation, which is a per-position degeneracy, not a caller
		// error; strict checking only flags finite negatives.
		if cfg.strict && !math.IsInf(dSq, -1) && dSq < -cfg.strictTol {
			return nil, fmt.Errorf("%w: %g at position %d", ErrInvariantViolation, dSq, i)
		}

		// sqrt of a negative value is NaN, which is the documented
		// propagation for rounding-induced negatives.
		dist[i] = math.Sqrt(dSq)
	}

	return dist, nil
}

// ApplyExclusionZone suppresses trivial self-matches by setting the entries
// in [max(0, centerIndex-radius), min(seriesLength-windowSize+1,
// centerIndex+radius)) to +Inf. The profile is mutated in place and returned.
//
// Cross-series joins have no trivial self-match, so the call is a no-op when
// isJoin is true or when radius <= 0.
func ApplyExclusionZone(dist []float64, radius int, isJoin bool, windowSize, seriesLength, centerIndex int) []float64 {
	if isJoin || radius <= 0 {
		return dist
	}

	start := centerIndex - radius
	if start < 0 {
		start = 0
	}

	end := centerIndex + radius
	if limit := seriesLength - windowSize + 1; end > limit {
		end = limit
	}
	if end > len(dist) {
		end = len(dist)
	}

	for i := start; i < end; i++ {
		dist[i] = math.Inf(1)
	}

	return dist
}
