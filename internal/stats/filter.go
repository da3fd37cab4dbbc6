package stats

import (
	"sort"

	"github.com/samber/lo"
)

// iqrFenceFactor is Tukey's constant: values further than 1.5 interquartile
// ranges outside the quartiles count as outliers.
const iqrFenceFactor = 1.5

// FilterIQR returns the samples lying within the Tukey fences
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR], with the quartiles taken at the n/4 and 3n/4
// positions of the sorted samples. Inputs with fewer than four samples are
// returned unchanged, since quartiles carry no information at that size.
//
// The input is never mutated and survivors keep their relative order.
func FilterIQR(samples []float64) []float64 {
	n := len(samples)
	if n < 4 {
		return samples
	}

	sorted := make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)

	q1 := sorted[n/4]
	q3 := sorted[3*n/4]
	iqr := q3 - q1

	lower := q1 - iqrFenceFactor*iqr
	upper := q3 + iqrFenceFactor*iqr

	return lo.Filter(samples, func(v float64, _ int) bool {
		return v >= lower && v <= upper
	})
}
