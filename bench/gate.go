package bench

import "time"

// underCeilings reports whether a gate-checked phase already satisfies the
// enabled ceilings, permitting the run to stop early. A negative ceiling is
// disabled; with neither ceiling enabled the gate never permits the
// short-circuit.
func underCeilings(r PhaseResult, maxTime time.Duration, maxBytes int64) bool {
	timeEnabled := maxTime >= 0
	memEnabled := maxBytes >= 0

	timeOK := r.AvgNsPerOp <= float64(maxTime.Nanoseconds())
	memOK := r.AvgBytesPerOp <= float64(maxBytes)

	switch {
	case timeEnabled && memEnabled:
		return timeOK && memOK
	case timeEnabled:
		return timeOK
	case memEnabled:
		return memOK
	default:
		return false
	}
}
