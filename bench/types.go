package bench

import "time"

// Action is the unit of work under measurement. The engine invokes it
// synchronously, many times back-to-back. A non-nil error aborts the run
// immediately and is returned from Run unchanged; a benchmark of a failing
// action is not a meaningful measurement.
type Action func() error

// Sink receives the engine's one-line progress summaries. The default sink
// writes to standard output; tests typically swap in a capturing function.
// The engine never calls the sink from more than one goroutine.
type Sink func(line string)

// SchedulingHint elevates the scheduling priority of the measuring thread or
// process before a run. Elevation is best effort: a non-nil error is reported
// through the engine's sink and otherwise ignored.
type SchedulingHint interface {
	Elevate() error
}

// PhaseResult summarizes one measurement phase. It is produced by the phase
// runner and read-only to consumers.
type PhaseResult struct {
	// Name identifies the phase in progress output.
	Name string

	// Rounds is the number of rounds executed, including discarded ones.
	Rounds int

	// Invocations is the number of back-to-back action calls per round.
	Invocations int64

	// AvgNsPerOp is the phase's representative time per operation: the
	// median of the filtered samples, robust to residual skew.
	AvgNsPerOp float64

	// RawNsPerOp holds every non-discarded per-round time sample.
	RawNsPerOp []float64

	// FilteredNsPerOp holds the time samples surviving outlier rejection.
	FilteredNsPerOp []float64

	// AvgBytesPerOp is the mean of the filtered per-round allocation
	// samples.
	AvgBytesPerOp float64
}

// Outcome is the final estimate returned by Run.
type Outcome struct {
	// NetNsPerOp is the action's time per operation with the calibrated
	// harness overhead subtracted, never negative.
	NetNsPerOp float64

	// BytesPerOp is the action's heap allocation per operation.
	BytesPerOp float64
}

// TimePerOp returns the net time per operation as a time.Duration.
func (o Outcome) TimePerOp() time.Duration {
	return time.Duration(o.NetNsPerOp)
}
