package suite

import (
	"time"

	"github.com/IridiumIO/PerfUnit/bench"
)

// Benchmark is one named unit of work registered with a Suite.
type Benchmark struct {
	// Name identifies the benchmark in status output, reports and history.
	Name string

	// Action is the work under measurement.
	Action bench.Action

	// Opts are engine options layered on top of the suite defaults.
	Opts []bench.Option
}

// Result captures one benchmark's measurement, including the ceilings it was
// judged against so reports can render verdicts.
type Result struct {
	Name    string
	Outcome bench.Outcome

	// Elapsed is the wall-clock cost of the whole measurement, phases and
	// calibration included.
	Elapsed time.Duration

	// Err is the configuration or action error that aborted the
	// measurement, nil on success.
	Err error

	// MaxTime and MaxBytes are the effective ceilings, negative when
	// disabled.
	MaxTime  time.Duration
	MaxBytes int64
}

// Passed reports whether the measurement finished without error and sits
// under every enabled ceiling.
func (r Result) Passed() bool {
	if r.Err != nil {
		return false
	}
	if r.MaxTime >= 0 && r.Outcome.NetNsPerOp > float64(r.MaxTime.Nanoseconds()) {
		return false
	}
	if r.MaxBytes >= 0 && r.Outcome.BytesPerOp > float64(r.MaxBytes) {
		return false
	}
	return true
}
