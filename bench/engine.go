package bench

import (
	"fmt"
	"math"
	"runtime"

	"github.com/samber/lo"

	"github.com/IridiumIO/PerfUnit/internal/hostpriority"
	"github.com/IridiumIO/PerfUnit/internal/stats"
	"github.com/IridiumIO/PerfUnit/internal/units"
)

// Engine measures actions against one fixed configuration. Engines are
// reusable across runs but not safe for concurrent use: measurements must
// not overlap or they pollute each other's numbers.
type Engine struct {
	cfg  Config
	sink Sink
	hint SchedulingHint
}

// New builds an Engine from the defaults and the given options.
// Configuration is validated eagerly: a violated invariant is reported as
// an error matching ErrInvalidConfig and no engine is returned.
//
// Example:
//
//	engine, err := bench.New(
//	    bench.WithMaxTimePerOp(500*time.Microsecond),
//	    bench.WithFixedIterationRounds(20),
//	)
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:  cfg,
		sink: StdoutSink,
		hint: hostHint{},
	}, nil
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetSink replaces the engine's output sink. Callers may swap sinks between
// runs; the engine never writes to the sink concurrently.
func (e *Engine) SetSink(s Sink) {
	if s != nil {
		e.sink = s
	}
}

// SetSchedulingHint replaces the best-effort priority elevation attempted at
// the start of every run. Tests stub this to keep runs hermetic.
func (e *Engine) SetSchedulingHint(h SchedulingHint) {
	if h != nil {
		e.hint = h
	}
}

func (e *Engine) emit(line string) {
	if e.sink != nil {
		e.sink(line)
	}
}

// hostHint is the default SchedulingHint, backed by the host's priority
// facilities.
type hostHint struct{}

func (hostHint) Elevate() error { return hostpriority.Elevate() }

// Run measures the action and returns its net time and heap allocation per
// operation.
//
// The run is a straight-line pipeline: a small fixed warm-up of the no-op
// baseline and of the action itself (the latter gate-checked for an early
// exit), invocation sizing against the configured duration target, full-size
// warm-up and calibration of the no-op baseline, a full-size warm-up of the
// action (gate-checked again), and the final measurement. The calibrated
// baseline is subtracted from every final-phase sample and the median of the
// differences, clamped at zero, becomes the net estimate.
//
// The calling goroutine stays locked to its OS thread for the duration of
// the run. An error returned by the action aborts the run immediately and is
// returned unchanged; no partial Outcome is produced.
func (e *Engine) Run(action Action) (Outcome, error) {
	if action == nil {
		return Outcome{}, ErrNilAction
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := e.hint.Elevate(); err != nil {
		e.emit(fmt.Sprintf("priority elevation unavailable: %v", err))
	}

	noop := Action(func() error { return nil })

	// Pay first-call costs of the harness loop itself before anything that
	// feeds the estimate.
	if _, err := e.runPhase(phaseSpec{
		name:        "jit-overhead",
		invocations: e.cfg.JITWarmupInvocations,
		minRounds:   e.cfg.JITWarmupRounds,
		maxRounds:   e.cfg.JITWarmupRounds,
	}, noop); err != nil {
		return Outcome{}, err
	}

	jitRunner, err := e.runPhase(phaseSpec{
		name:        "jit-runner",
		invocations: e.cfg.JITWarmupInvocations,
		minRounds:   e.cfg.JITWarmupRounds,
		maxRounds:   e.cfg.JITWarmupRounds,
	}, action)
	if err != nil {
		return Outcome{}, err
	}
	if underCeilings(jitRunner, e.cfg.MaxTimePerOp, e.cfg.MaxBytesPerOp) {
		return e.finish(jitRunner.AvgNsPerOp, jitRunner.AvgBytesPerOp), nil
	}

	estimated, err := estimateInvocations(action, e.cfg.MinTotalDuration)
	if err != nil {
		return Outcome{}, err
	}
	invocations := max(e.cfg.MinInvocations, estimated)

	// Full-size baseline warm-up, not used for output: it stabilizes caches
	// and the allocator before calibration.
	if _, err := e.runPhase(phaseSpec{
		name:        "warmup-overhead",
		invocations: invocations,
		minRounds:   e.cfg.MinWarmupRounds,
		maxRounds:   e.cfg.MaxWarmupRounds,
	}, noop); err != nil {
		return Outcome{}, err
	}

	overhead, err := e.runPhase(phaseSpec{
		name:        "actual-overhead",
		invocations: invocations,
		minRounds:   e.cfg.MinIterationRounds,
		maxRounds:   e.cfg.MaxIterationRounds,
	}, noop)
	if err != nil {
		return Outcome{}, err
	}

	warmupRunner, err := e.runPhase(phaseSpec{
		name:        "warmup-runner",
		invocations: invocations,
		minRounds:   e.cfg.MinWarmupRounds,
		maxRounds:   e.cfg.MaxWarmupRounds,
	}, action)
	if err != nil {
		return Outcome{}, err
	}
	if underCeilings(warmupRunner, e.cfg.MaxTimePerOp, e.cfg.MaxBytesPerOp) {
		return e.finish(warmupRunner.AvgNsPerOp, warmupRunner.AvgBytesPerOp), nil
	}

	actual, err := e.runPhase(phaseSpec{
		name:        "actual-runner",
		invocations: invocations,
		minRounds:   e.cfg.MinIterationRounds,
		maxRounds:   e.cfg.MaxIterationRounds,
	}, action)
	if err != nil {
		return Outcome{}, err
	}

	net, err := netPerOp(actual.RawNsPerOp, overhead.AvgNsPerOp)
	if err != nil {
		return Outcome{}, err
	}

	return e.finish(net, actual.AvgBytesPerOp), nil
}

// finish emits the final summary line and assembles the outcome.
func (e *Engine) finish(netNs, bytesPerOp float64) Outcome {
	e.emit(fmt.Sprintf("net: %s/op, %s/op",
		units.FormatNanos(netNs), units.FormatBytes(bytesPerOp)))
	return Outcome{NetNsPerOp: netNs, BytesPerOp: bytesPerOp}
}

// netPerOp subtracts the calibrated overhead from every raw sample and takes
// the median of the differences. Timing noise must never yield a negative
// duration, so the result clamps at zero.
func netPerOp(rawNs []float64, overheadNs float64) (float64, error) {
	diffs := lo.Map(rawNs, func(v float64, _ int) float64 {
		return v - overheadNs
	})

	net, err := stats.Median(diffs)
	if err != nil {
		return 0, err
	}
	return math.Max(0, net), nil
}

// Run measures action with a throwaway engine built from opts. It is the
// one-shot convenience over New followed by Engine.Run.
func Run(action Action, opts ...Option) (Outcome, error) {
	e, err := New(opts...)
	if err != nil {
		return Outcome{}, err
	}
	return e.Run(action)
}

// RunVolatileFast trades statistical confidence for speed: every round and
// invocation bound is pinned to one and the duration target drops to the
// lowest legal floor. Useful for exploratory runs, not for CI assertions.
func RunVolatileFast(action Action) (Outcome, error) {
	return Run(action,
		WithMinTotalDuration(MinTotalDurationFloor),
		WithMinInvocations(1),
		WithJITWarmup(1, 1),
		WithFixedWarmupRounds(1),
		WithFixedIterationRounds(1),
	)
}
