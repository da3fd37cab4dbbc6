// Package stats implements the statistical kernel behind the benchmark
// engine: interquartile-range outlier rejection, medians, and
// confidence-margin estimation over per-round samples.
package stats

import "errors"

var (
	// ErrNoSamples is returned when an estimator is handed an empty sample set.
	ErrNoSamples = errors.New("stats: no samples")

	// ErrTooFewSamples is returned when a dispersion estimate is requested for
	// fewer than two samples, where a sample standard deviation is undefined.
	ErrTooFewSamples = errors.New("stats: too few samples")
)
