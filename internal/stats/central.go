package stats

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// Summary captures the central tendency and dispersion of one sample set.
type Summary struct {
	Mean   float64
	StdDev float64
	// Margin is the confidence half-width z*StdDev/sqrt(n).
	Margin float64
}

// Median returns the middle of the samples: the single central element for an
// odd count, the average of the two central elements for an even count.
// The input is not mutated.
func Median(samples []float64) (float64, error) {
	n := len(samples)
	if n == 0 {
		return 0, ErrNoSamples
	}

	sorted := make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2], nil
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2, nil
}

// Mean returns the arithmetic mean of the samples.
func Mean(samples []float64) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}
	return lo.Sum(samples) / float64(len(samples)), nil
}

// Describe computes the sample mean, the Bessel-corrected sample standard
// deviation (dividing by n-1), and the confidence half-width z*stddev/sqrt(n)
// for the given confidence multiplier (1.96 for ~95%). At least two samples
// are required.
func Describe(samples []float64, z float64) (Summary, error) {
	n := len(samples)
	if n == 0 {
		return Summary{}, ErrNoSamples
	}
	if n < 2 {
		return Summary{}, ErrTooFewSamples
	}

	mean := lo.Sum(samples) / float64(n)
	sumSq := lo.SumBy(samples, func(v float64) float64 {
		d := v - mean
		return d * d
	})

	sd := math.Sqrt(sumSq / float64(n-1))
	return Summary{
		Mean:   mean,
		StdDev: sd,
		Margin: z * sd / math.Sqrt(float64(n)),
	}, nil
}
