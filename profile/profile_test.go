package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-matrixprofile/internal/testutil"
	"github.com/cwbudde/algo-matrixprofile/slide"
	"github.com/cwbudde/algo-matrixprofile/stats/rolling"
)

// zNormDistance computes the z-normalized Euclidean distance between two
// windows the slow, obvious way.
func zNormDistance(a, b []float64) float64 {
	norm := func(x []float64) []float64 {
		var sum, sumSq float64
		for _, v := range x {
			sum += v
			sumSq += v * v
		}
		n := float64(len(x))
		mean := sum / n
		std := math.Sqrt(sumSq/n - mean*mean)

		out := make([]float64, len(x))
		for i, v := range x {
			out[i] = (v - mean) / std
		}
		return out
	}

	na := norm(a)
	nb := norm(b)
	var sum float64
	for i := range na {
		d := na[i] - nb[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func TestDistancesAgainstNaive(t *testing.T) {
	const (
		n = 300
		m = 16
	)

	ts := testutil.Noise(11, n)
	query := testutil.Noise(12, m)

	dot, err := slide.DirectDotProduct(ts, query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tsMean, tsStd, err := rolling.MeanStd(ts, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	queryMean, queryStd, err := rolling.MeanStd(query, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dist, err := Distances(dot, m, tsMean, tsStd, queryMean[0], queryStd[0])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(dist) != n-m+1 {
		t.Fatalf("length mismatch: got %d, expected %d", len(dist), n-m+1)
	}

	want := make([]float64, len(dist))
	for i := range want {
		want[i] = zNormDistance(ts[i:i+m], query)
	}
	testutil.RequireSliceNearlyEqualRel(t, dist, want, 1e-8)
}

func TestDistancesZeroStd(t *testing.T) {
	// Middle window is constant: its std is zero and only that position
	// becomes non-finite.
	dot := []float64{10, 12, 9}
	tsMean := []float64{2, 3, 2}
	tsStd := []float64{1, 0, 1.5}

	dist, err := Distances(dot, 3, tsMean, tsStd, 2.0, 1.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !math.IsNaN(dist[1]) && !math.IsInf(dist[1], 0) {
		t.Errorf("dist[1] = %v, expected non-finite for zero std", dist[1])
	}
	for _, i := range []int{0, 2} {
		if math.IsNaN(dist[i]) || math.IsInf(dist[i], 0) {
			t.Errorf("dist[%d] = %v, expected finite", i, dist[i])
		}
	}
}

func TestDistancesZeroQueryStd(t *testing.T) {
	dot := []float64{10, 12}
	tsMean := []float64{2, 3}
	tsStd := []float64{1, 1}

	dist, err := Distances(dot, 3, tsMean, tsStd, 2.0, 0.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, d := range dist {
		if !math.IsNaN(d) && !math.IsInf(d, 0) {
			t.Errorf("dist[%d] = %v, expected non-finite for zero query std", i, d)
		}
	}
}

func TestDistancesStrict(t *testing.T) {
	// Mismatched statistics drive the squared distance far below zero.
	dot := []float64{1000}
	tsMean := []float64{0}
	tsStd := []float64{1}

	// Default mode propagates NaN.
	dist, err := Distances(dot, 4, tsMean, tsStd, 0.0, 1.0)
	if err != nil {
		t.Fatalf("unexpected error in default mode: %v", err)
	}
	if !math.IsNaN(dist[0]) {
		t.Errorf("dist[0] = %v, expected NaN", dist[0])
	}

	// Strict mode flags the violation.
	_, err = Distances(dot, 4, tsMean, tsStd, 0.0, 1.0, WithStrictCheck(1e-9))
	if !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("expected ErrInvariantViolation, got %v", err)
	}
}

func TestDistancesStrictZeroStd(t *testing.T) {
	// A zero standard deviation drives the squared distance to -Inf. That is
	// a per-position degeneracy, so strict mode must leave a non-finite
	// entry there instead of rejecting the whole profile.
	dot := []float64{1, 12, 0}
	tsMean := []float64{2, 3, 2}
	tsStd := []float64{1, 0, 1.5}

	dist, err := Distances(dot, 3, tsMean, tsStd, 0.0, 1.0, WithStrictCheck(1e-9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(dist[1]) && !math.IsInf(dist[1], 0) {
		t.Errorf("dist[1] = %v, expected non-finite for zero std", dist[1])
	}
	testutil.RequireFinite(t, []float64{dist[0], dist[2]})

	// Same behavior when the zero variance comes from a constant stretch in
	// a real series.
	const m = 4
	ts := append(testutil.Noise(21, 8), testutil.ConstantSeries(3, m)...)
	ts = append(ts, testutil.Noise(22, 8)...)
	query := testutil.Noise(23, m)

	dot, err = slide.DirectDotProduct(ts, query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tsMeanR, tsStdR, err := rolling.MeanStd(ts, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	queryMean, queryStd, err := rolling.MeanStd(query, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dist, err = Distances(dot, m, tsMeanR, tsStdR, queryMean[0], queryStd[0], WithStrictCheck(1e-9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsNaN(dist[8]) && !math.IsInf(dist[8], 0) {
		t.Errorf("dist[8] = %v, expected non-finite for the constant window", dist[8])
	}
}

func TestDistancesStrictToleratesRounding(t *testing.T) {
	// An exact self-match: the squared distance is zero up to rounding and
	// must pass strict checking.
	ts := []float64{1, 2, 3, 4}
	dot := []float64{30} // ts . ts
	mean := []float64{2.5}
	std := []float64{math.Sqrt(1.25)}

	_, err := Distances(dot, 4, mean, std, 2.5, math.Sqrt(1.25), WithStrictCheck(1e-9))
	if err != nil {
		t.Fatalf("strict mode rejected rounding noise: %v (ts %v)", err, ts)
	}
}

func TestDistancesErrors(t *testing.T) {
	if _, err := Distances([]float64{1, 2}, 3, []float64{1}, []float64{1, 2}, 0, 1); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
	if _, err := Distances([]float64{1}, 0, []float64{1}, []float64{1}, 0, 1); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestApplyExclusionZone(t *testing.T) {
	dist := make([]float64, 10)
	for i := range dist {
		dist[i] = 1
	}

	result := ApplyExclusionZone(dist, 2, false, 3, 12, 5)

	for i := range result {
		excluded := i >= 3 && i < 7
		if excluded && !math.IsInf(result[i], 1) {
			t.Errorf("result[%d] = %v, expected +Inf", i, result[i])
		}
		if !excluded && result[i] != 1 {
			t.Errorf("result[%d] = %v, expected untouched 1", i, result[i])
		}
	}
}

func TestApplyExclusionZoneClamps(t *testing.T) {
	dist := []float64{1, 1, 1, 1}

	// Zone at the left edge clamps to 0.
	ApplyExclusionZone(dist, 3, false, 2, 5, 0)
	for i := 0; i < 3; i++ {
		if !math.IsInf(dist[i], 1) {
			t.Errorf("dist[%d] = %v, expected +Inf", i, dist[i])
		}
	}
	if dist[3] != 1 {
		t.Errorf("dist[3] = %v, expected untouched", dist[3])
	}

	// Zone past the right edge clamps to the profile length.
	dist = []float64{1, 1, 1, 1}
	ApplyExclusionZone(dist, 3, false, 2, 5, 3)
	if !math.IsInf(dist[3], 1) {
		t.Errorf("dist[3] = %v, expected +Inf", dist[3])
	}
}

func TestApplyExclusionZoneNoOps(t *testing.T) {
	dist := []float64{1, 2, 3}

	ApplyExclusionZone(dist, 2, true, 1, 3, 1)
	ApplyExclusionZone(dist, 0, false, 1, 3, 1)
	ApplyExclusionZone(dist, -1, false, 1, 3, 1)

	for i, v := range dist {
		if v != float64(i+1) {
			t.Errorf("dist[%d] = %v, expected untouched %v", i, v, float64(i+1))
		}
	}
}
