// Package history persists suite runs as an append-only JSON log and
// compares any two runs benchmark by benchmark, so a measurement taken
// today can be judged against the one taken before a change.
package history

import (
	"time"

	"github.com/samber/lo"

	"github.com/IridiumIO/PerfUnit/suite"
)

// Entry is one benchmark's measurement inside a stored run.
type Entry struct {
	Name       string  `json:"name"`
	NetNsPerOp float64 `json:"net_ns_per_op"`
	BytesPerOp float64 `json:"bytes_per_op"`
}

// Run is a completed suite execution.
type Run struct {
	Timestamp time.Time `json:"timestamp"`
	Label     string    `json:"label,omitempty"`
	Entries   []Entry   `json:"entries"`
}

// NewRun captures the measured suite results under a label, stamped with
// the current time. Benchmarks whose action failed carry no measurement
// and are left out; a later Compare lists them as removed.
func NewRun(label string, results []suite.Result) Run {
	entries := lo.FilterMap(results, func(r suite.Result, _ int) (Entry, bool) {
		if r.Err != nil {
			return Entry{}, false
		}
		return Entry{
			Name:       r.Name,
			NetNsPerOp: r.Outcome.NetNsPerOp,
			BytesPerOp: r.Outcome.BytesPerOp,
		}, true
	})
	return Run{Timestamp: time.Now(), Label: label, Entries: entries}
}
