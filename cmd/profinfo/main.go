// Command profinfo computes a z-normalized distance profile for a query
// subsequence taken from a time series and prints summary statistics.
//
// Usage:
//
//	profinfo [flags]
//
// Without a -csv file it synthesizes a test signal.
//
// Examples:
//
//	profinfo -n 2048 -m 64 -index 100
//	profinfo -csv data.csv -m 32 -jobs 4
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/cwbudde/algo-matrixprofile/batch"
	"github.com/cwbudde/algo-matrixprofile/profile"
	"github.com/cwbudde/algo-matrixprofile/series"
	"github.com/cwbudde/algo-matrixprofile/slide"
	"github.com/cwbudde/algo-matrixprofile/stats/rolling"
)

func main() {
	var (
		n       = flag.Int("n", 2048, "synthetic series length (ignored with -csv)")
		m       = flag.Int("m", 64, "query window size")
		index   = flag.Int("index", 0, "query start index within the series")
		jobs    = flag.Int("jobs", 0, "worker count (<1 uses all cores)")
		radius  = flag.Int("radius", -1, "exclusion zone radius (<0 uses m/4)")
		csvPath = flag.String("csv", "", "read series values from file (one value per line or comma-separated)")
	)
	flag.Parse()

	ts, err := loadSeries(*csvPath, *n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "profinfo: %v\n", err)
		os.Exit(1)
	}

	if *index < 0 || *index+*m > len(ts) {
		fmt.Fprintf(os.Stderr, "profinfo: query [%d, %d) out of range for series of length %d\n",
			*index, *index+*m, len(ts))
		os.Exit(1)
	}

	// The query aliases the series, which is cleaned in place below; copy it
	// first so sanitization happens exactly once per buffer.
	query := make([]float64, *m)
	copy(query, ts[*index:*index+*m])

	ts, query, err = series.ValidateSeriesAndQuery(ts, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "profinfo: %v\n", err)
		os.Exit(1)
	}

	dist, skipped, err := computeProfile(ts, query, *index, *radius, *jobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "profinfo: %v\n", err)
		os.Exit(1)
	}

	printSummary(os.Stdout, dist, skipped, *m, *index)
}

// computeProfile runs the full pipeline, splitting the profile into batches
// executed on one goroutine each. Batches write disjoint slices of the
// result, so no locking is needed.
func computeProfile(ts, query []float64, index, radius, requestedJobs int) ([]float64, int, error) {
	m := len(query)
	pl := series.ProfileLength(len(ts), m)

	skip := series.FindSkipLocations(ts, pl, m)
	ts = series.CleanNonFinite(ts)
	query = series.CleanNonFinite(query)

	tsMean, tsStd, err := rolling.MeanStd(ts, m)
	if err != nil {
		return nil, 0, err
	}
	queryMean, queryStd, err := rolling.MeanStd(query, m)
	if err != nil {
		return nil, 0, err
	}

	jobs := batch.ValidJobCount(requestedJobs, runtime.NumCPU())
	dist := make([]float64, pl)

	var wg sync.WaitGroup
	errs := make([]error, jobs)

	for i, r := range batch.Ranges(pl, jobs) {
		if r.IsEmpty() {
			continue
		}

		wg.Add(1)
		go func(i int, r batch.Range) {
			defer wg.Done()

			// The dot products for positions [Start, End) depend only on
			// ts[Start : End+m-1].
			dot, err := slide.DotProduct(ts[r.Start:r.End+m-1], query)
			if err != nil {
				errs[i] = err
				return
			}

			d, err := profile.Distances(dot, m, tsMean[r.Start:r.End], tsStd[r.Start:r.End], queryMean[0], queryStd[0])
			if err != nil {
				errs[i] = err
				return
			}
			copy(dist[r.Start:r.End], d)
		}(i, r)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, 0, err
		}
	}

	if radius < 0 {
		radius = (m + 3) / 4
	}
	profile.ApplyExclusionZone(dist, radius, false, m, len(ts), index)

	skipped := 0
	for i, s := range skip {
		if s {
			dist[i] = math.Inf(1)
			skipped++
		}
	}

	return dist, skipped, nil
}

func printSummary(w *os.File, dist []float64, skipped, m, index int) {
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	minIdx := -1
	excluded := 0

	for i, d := range dist {
		if math.IsInf(d, 1) {
			excluded++
			continue
		}
		if math.IsNaN(d) {
			continue
		}
		if d < minVal {
			minVal = d
			minIdx = i
		}
		if d > maxVal {
			maxVal = d
		}
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Profile length:\t%d\n", len(dist))
	fmt.Fprintf(tw, "Window size:\t%d\n", m)
	fmt.Fprintf(tw, "Query index:\t%d\n", index)
	fmt.Fprintf(tw, "Excluded positions:\t%d\n", excluded)
	fmt.Fprintf(tw, "Skipped (non-finite) windows:\t%d\n", skipped)
	if minIdx >= 0 {
		fmt.Fprintf(tw, "Best match index:\t%d\n", minIdx)
		fmt.Fprintf(tw, "Best match distance:\t%.6f\n", minVal)
		fmt.Fprintf(tw, "Worst match distance:\t%.6f\n", maxVal)
	}
	tw.Flush()
}

// loadSeries reads values from path, or synthesizes a signal of length n
// when path is empty.
func loadSeries(path string, n int) ([]float64, error) {
	if path == "" {
		return syntheticSeries(n), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		for _, field := range strings.FieldsFunc(scanner.Text(), func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		}) {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parsing %q: %w", field, err)
			}
			out = append(out, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no values in %s", path)
	}

	return out, nil
}

// syntheticSeries builds a deterministic test signal: two sine components
// plus a weak repeating transient, so the profile has clear non-trivial
// matches.
func syntheticSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		x := float64(i)
		out[i] = math.Sin(2*math.Pi*x/128) + 0.5*math.Sin(2*math.Pi*x/37)
		if i%512 < 16 {
			out[i] += 0.25 * math.Sin(2*math.Pi*x/8)
		}
	}
	return out
}
