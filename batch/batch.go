// Package batch partitions a distance-profile computation into contiguous
// index ranges for parallel execution.
//
// The package only decides how work is split; scheduling the ranges onto
// goroutines or a worker pool is the caller's job. Ranges produced for a
// given (profileLength, jobCount) pair are disjoint, ascending, and cover
// [0, profileLength) exactly, so per-range results can be combined without
// synchronization.
package batch

import "log"

// Logger is the diagnostics sink for job-count clamping. The default writes
// through the standard library logger; inject a replacement with SetLogger.
type Logger interface {
	Printf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

var logger Logger = log.Default()

// SetLogger replaces the package diagnostics sink. A nil logger silences
// diagnostics entirely.
func SetLogger(l Logger) {
	if l == nil {
		logger = nopLogger{}
		return
	}
	logger = l
}

// Range is a half-open interval [Start, End) of profile positions.
type Range struct {
	Start int
	End   int
}

// Len returns the number of positions in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// IsEmpty reports whether the range covers no positions. Empty trailing
// ranges occur when the job count exceeds what the profile length supports;
// callers treat them as no-ops, not errors.
func (r Range) IsEmpty() bool {
	return r.Start >= r.End
}

// ValidJobCount clamps a requested worker count into [1, maxParallelism].
// Requests below 1 default to the maximum; requests above it are capped.
// A diagnostic is logged whenever the requested value is changed.
//
// maxParallelism is an injected capability, typically runtime.NumCPU()
// queried once at startup; values below 1 are treated as 1.
func ValidJobCount(requested, maxParallelism int) int {
	if maxParallelism < 1 {
		maxParallelism = 1
	}

	jobs := requested
	if jobs < 1 || jobs > maxParallelism {
		jobs = maxParallelism
	}

	if jobs != requested {
		logger.Printf("batch: clamped job count from %d to %d", requested, jobs)
	}

	return jobs
}

// Ranges partitions [0, profileLength) into batches for jobCount workers
// using batchSize = ceil(profileLength / jobCount).
//
// Small profiles collapse to a single [0, profileLength) batch: when the
// batch size works out to the whole profile, or when there are more jobs
// than positions. The requested parallelism is deliberately discarded there
// rather than producing zero-width batches. Otherwise jobCount ranges are
// returned, the trailing ones possibly shorter or empty.
//
// Each call computes a fresh slice; there is no shared iteration state.
func Ranges(profileLength, jobCount int) []Range {
	batchSize := (profileLength + jobCount - 1) / jobCount

	if batchSize == profileLength || jobCount > profileLength {
		return []Range{{Start: 0, End: profileLength}}
	}

	ranges := make([]Range, 0, jobCount)
	for i := 0; i < jobCount; i++ {
		start := i * batchSize
		end := start + batchSize
		if end > profileLength {
			end = profileLength
		}
		ranges = append(ranges, Range{Start: start, End: end})
	}

	return ranges
}
