// Package stats computes the sample statistics backing calibration
// verdicts.
package stats

import (
	"fmt"
	"math"
)

// Summary aggregates one batch of measurements.
type Summary struct {
	N    int
	Mean float64
	// Std is the population standard deviation. Calibration treats its
	// samples as the whole population of interest, not a draw from a
	// larger one, so there is no Bessel correction.
	Std float64
}

// Summarize reduces samples to a Summary. An empty batch yields the zero
// Summary.
func Summarize(samples []float64) Summary {
	n := len(samples)
	if n == 0 {
		return Summary{}
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(n)

	var sqDev float64
	for _, v := range samples {
		d := v - mean
		sqDev += d * d
	}

	return Summary{
		N:    n,
		Mean: mean,
		Std:  math.Sqrt(sqDev / float64(n)),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("n: %d, mean: %.4f, sigma: %.4f", s.N, s.Mean, s.Std)
}
