package batch_test

import (
	"fmt"

	"github.com/cwbudde/algo-matrixprofile/batch"
)

func ExampleRanges() {
	for _, r := range batch.Ranges(10, 3) {
		fmt.Printf("[%d, %d)\n", r.Start, r.End)
	}

	// Output:
	// [0, 4)
	// [4, 8)
	// [8, 10)
}

func ExampleRanges_smallProfile() {
	// More jobs than positions: the profile stays one batch instead of
	// splintering into zero-width ranges.
	fmt.Println(batch.Ranges(5, 10))

	// Output:
	// [{0 5}]
}
