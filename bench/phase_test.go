package bench

import (
	"errors"
	"strings"
	"testing"
)

func TestStableEstimate(t *testing.T) {
	tight := make([]float64, 10)
	for i := range tight {
		tight[i] = 100
	}

	noisy := make([]float64, 10)
	for i := range noisy {
		noisy[i] = 100
		if i%2 == 1 {
			noisy[i] = 200
		}
	}

	tests := []struct {
		name      string
		samples   []float64
		minRounds int
		want      bool
	}{
		{"tight samples converge", tight, 5, true},
		{"noisy samples keep running", noisy, 5, false},
		{"round floor binds even when stable", tight[:5], 8, false},
		{"single sample", []float64{100}, 1, false},
		{"no samples", nil, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stableEstimate(tt.samples, tt.minRounds); got != tt.want {
				t.Errorf("stableEstimate(%v, %d) = %v, want %v",
					tt.samples, tt.minRounds, got, tt.want)
			}
		})
	}
}

func TestMeasureRoundCountsAllocations(t *testing.T) {
	alloc := func() error {
		blackhole = make([]byte, 1024)
		return nil
	}

	nsPerOp, bytesPerOp, err := measureRound(alloc, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if nsPerOp <= 0 {
		t.Errorf("nsPerOp = %v, want > 0", nsPerOp)
	}
	if bytesPerOp < 1024 || bytesPerOp > 2048 {
		t.Errorf("bytesPerOp = %v, want about 1024", bytesPerOp)
	}
}

func TestMeasureRoundPropagatesActionError(t *testing.T) {
	boom := errors.New("round failed")

	_, _, err := measureRound(func() error { return boom }, 2)
	if err != boom {
		t.Fatalf("error = %v, want the action's own error", err)
	}
}

func TestRunPhaseRoundAccounting(t *testing.T) {
	e, lines := newCapturingEngine(t)

	calls := 0
	count := func() error {
		calls++
		return nil
	}

	result, err := e.runPhase(phaseSpec{
		name:        "probe",
		invocations: 3,
		minRounds:   2,
		maxRounds:   2,
	}, count)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// one discarded round plus two recorded ones
	if result.Rounds != 3 {
		t.Errorf("Rounds = %d, want 3", result.Rounds)
	}
	if calls != 9 {
		t.Errorf("action calls = %d, want 9", calls)
	}
	if len(result.RawNsPerOp) != 2 {
		t.Errorf("raw samples = %d, want 2 (discard excluded)", len(result.RawNsPerOp))
	}
	if result.Invocations != 3 {
		t.Errorf("Invocations = %d, want 3", result.Invocations)
	}
	if result.AvgNsPerOp < 0 {
		t.Errorf("AvgNsPerOp = %v, want >= 0", result.AvgNsPerOp)
	}

	if len(*lines) != 1 {
		t.Fatalf("sink lines = %d, want exactly 1 phase summary", len(*lines))
	}
	if !strings.HasPrefix((*lines)[0], "[probe] 3 rounds x 3 ops:") {
		t.Errorf("summary line = %q", (*lines)[0])
	}
}

func TestRunPhaseAbortsOnActionError(t *testing.T) {
	e, lines := newCapturingEngine(t)

	boom := errors.New("phase failed")
	calls := 0
	failing := func() error {
		calls++
		if calls == 5 {
			return boom
		}
		return nil
	}

	_, err := e.runPhase(phaseSpec{
		name:        "probe",
		invocations: 3,
		minRounds:   2,
		maxRounds:   2,
	}, failing)
	if err != boom {
		t.Fatalf("error = %v, want the action's own error", err)
	}
	if calls != 5 {
		t.Errorf("action calls = %d, want the run to stop at the failing call", calls)
	}
	if len(*lines) != 0 {
		t.Errorf("no summary line expected on abort, got %v", *lines)
	}
}

func TestPhaseLine(t *testing.T) {
	r := PhaseResult{
		Name:            "probe",
		Rounds:          3,
		Invocations:     1000,
		AvgNsPerOp:      1500,
		FilteredNsPerOp: []float64{1400, 1600},
		AvgBytesPerOp:   24,
	}

	line := phaseLine(r)

	if !strings.HasPrefix(line, "[probe] 3 rounds x 1,000 ops: 1.5µs/op") {
		t.Errorf("line = %q", line)
	}
	if !strings.Contains(line, "±") {
		t.Errorf("line %q should carry a confidence half-width for two samples", line)
	}
	if !strings.HasSuffix(line, "24B/op") {
		t.Errorf("line = %q, want a trailing allocation figure", line)
	}
}

func TestPhaseLineNoMarginForSingleSample(t *testing.T) {
	r := PhaseResult{
		Name:            "probe",
		Rounds:          2,
		Invocations:     10,
		AvgNsPerOp:      1500,
		FilteredNsPerOp: []float64{1500},
		AvgBytesPerOp:   0,
	}

	if line := phaseLine(r); strings.Contains(line, "±") {
		t.Errorf("line %q must not fabricate a half-width from one sample", line)
	}
}

// blackhole keeps test allocations observable to the allocation counter.
var blackhole []byte
