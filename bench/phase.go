package bench

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/IridiumIO/PerfUnit/internal/stats"
	"github.com/IridiumIO/PerfUnit/internal/units"
)

// Measurement protocol constants.
const (
	// settleDelay is the pause before every round, letting transient system
	// activity die down before the timer starts.
	settleDelay = 10 * time.Millisecond

	// discardRounds is the number of leading throwaway rounds absorbing
	// first-touch effects.
	discardRounds = 1

	// confidenceZ is the multiplier for a ~95% confidence interval.
	confidenceZ = 1.96

	// relMarginTarget stops a phase once the confidence half-width falls
	// under this fraction of the mean.
	relMarginTarget = 0.005
)

// phaseSpec sizes one measurement phase.
type phaseSpec struct {
	name        string
	invocations int64
	minRounds   int
	maxRounds   int
}

// runPhase executes up to maxRounds+discardRounds rounds of the action,
// stopping early once the estimate is stable, and emits a one-line summary
// through the engine sink. An action error aborts the phase immediately.
func (e *Engine) runPhase(spec phaseSpec, action Action) (PhaseResult, error) {
	var nsSamples, byteSamples []float64

	rounds := 0
	for i := 0; i < spec.maxRounds+discardRounds; i++ {
		nsPerOp, bytesPerOp, err := measureRound(action, spec.invocations)
		if err != nil {
			return PhaseResult{}, err
		}
		rounds++

		if i < discardRounds {
			continue
		}
		nsSamples = append(nsSamples, nsPerOp)
		byteSamples = append(byteSamples, bytesPerOp)

		if rounds > discardRounds+4 && stableEstimate(nsSamples, spec.minRounds) {
			break
		}
	}

	return e.summarizePhase(spec, rounds, nsSamples, byteSamples)
}

// measureRound times one batch of invocations, bracketing the timed window
// with allocation snapshots and finishing with a full garbage-collection
// pass so rounds' allocation accounting stays independent.
func measureRound(action Action, invocations int64) (nsPerOp, bytesPerOp float64, err error) {
	time.Sleep(settleDelay)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	start := time.Now()
	for i := int64(0); i < invocations; i++ {
		if err := action(); err != nil {
			return 0, 0, err
		}
	}
	elapsed := time.Since(start)

	runtime.ReadMemStats(&after)
	runtime.GC()

	ops := float64(invocations)
	nsPerOp = float64(elapsed.Nanoseconds()) / ops
	bytesPerOp = float64(after.TotalAlloc-before.TotalAlloc) / ops
	return nsPerOp, bytesPerOp, nil
}

// stableEstimate decides whether a phase may stop early: the filtered
// samples must be numerous enough for the observed variance and their
// confidence half-width must sit under the relative-margin target. Noisy
// workloads therefore run longer while stable ones stop near minRounds.
func stableEstimate(nsSamples []float64, minRounds int) bool {
	filtered := stats.FilterIQR(nsSamples)

	sum, err := stats.Describe(filtered, confidenceZ)
	if err != nil || sum.Mean <= 0 {
		return false
	}

	required := float64(minRounds)
	noise := confidenceZ * sum.StdDev / (relMarginTarget * sum.Mean)
	if needed := math.Ceil(noise * noise); needed > required {
		required = needed
	}

	return float64(len(filtered)) >= required && sum.Margin/sum.Mean < relMarginTarget
}

// summarizePhase filters the recorded samples, derives the representative
// time and allocation, and emits the phase's summary line.
func (e *Engine) summarizePhase(spec phaseSpec, rounds int, nsSamples, byteSamples []float64) (PhaseResult, error) {
	filteredNs := stats.FilterIQR(nsSamples)
	filteredBytes := stats.FilterIQR(byteSamples)

	avgNs, err := stats.Median(filteredNs)
	if err != nil {
		return PhaseResult{}, fmt.Errorf("phase %s: %w", spec.name, err)
	}
	avgBytes, err := stats.Mean(filteredBytes)
	if err != nil {
		return PhaseResult{}, fmt.Errorf("phase %s: %w", spec.name, err)
	}

	result := PhaseResult{
		Name:            spec.name,
		Rounds:          rounds,
		Invocations:     spec.invocations,
		AvgNsPerOp:      avgNs,
		RawNsPerOp:      nsSamples,
		FilteredNsPerOp: filteredNs,
		AvgBytesPerOp:   avgBytes,
	}

	e.emit(phaseLine(result))
	return result, nil
}

// phaseLine renders the one-line summary emitted after every phase. The
// confidence half-width appears only when at least two filtered samples
// back it.
func phaseLine(r PhaseResult) string {
	line := fmt.Sprintf("[%s] %d rounds x %s ops: %s/op",
		r.Name, r.Rounds, units.FormatCount(r.Invocations), units.FormatNanos(r.AvgNsPerOp))

	if sum, err := stats.Describe(r.FilteredNsPerOp, confidenceZ); err == nil {
		line += fmt.Sprintf(" ±%s", units.FormatNanos(sum.Margin))
	}

	return line + fmt.Sprintf(", %s/op", units.FormatBytes(r.AvgBytesPerOp))
}
