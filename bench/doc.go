// Package bench provides an adaptive statistical benchmark engine: it
// measures the steady-state execution time and per-operation heap allocation
// of a caller-supplied action, converging on a confidence interval instead
// of trusting a single timed run.
//
// The engine batches invocations into rounds sized to be measurable above
// clock resolution, discards leading rounds, rejects outlier rounds through
// interquartile-range filtering, and keeps sampling until the confidence
// half-width falls under 0.5% of the mean. Separate phases calibrate the
// harness's own loop overhead with a no-op baseline, and that overhead is
// subtracted from the final estimate.
//
// # Basic Usage
//
//	outcome, err := bench.Run(func() error {
//	    parse(payload)
//	    return nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(outcome.TimePerOp(), outcome.BytesPerOp)
//
// # Ceilings and Short-Circuiting
//
// Callers asserting "fast enough" rather than "how fast" can set ceilings.
// Once an early gate-checked phase already satisfies every enabled ceiling,
// the run returns immediately with that phase's numbers:
//
//	outcome, err := bench.Run(action,
//	    bench.WithMaxTimePerOp(200*time.Microsecond),
//	    bench.WithMaxBytesPerOp(0), // zero allocations demanded
//	)
//
// A negative ceiling (the default, bench.Disabled) switches a gate off. Zero
// is a real ceiling, not a disable sentinel.
//
// # Reusable Engines
//
// New builds a validated engine that can measure several actions under the
// same configuration. The progress sink and the scheduling hint are
// injectable, which keeps tests deterministic:
//
//	engine, err := bench.New(bench.WithFixedIterationRounds(20))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine.SetSink(func(line string) { log.Print(line) })
//	outcome, err := engine.Run(action)
//
// # Exploratory Runs
//
// RunVolatileFast pins every bound to one for a quick, low-confidence
// answer:
//
//	outcome, _ := bench.RunVolatileFast(action)
//
// # Error Handling
//
// Configuration problems surface before any measurement as errors matching
// ErrInvalidConfig. An error returned by the action aborts the run at once
// and is returned unchanged; the engine never retries.
//
// The engine is single-threaded and runs with the calling goroutine locked
// to its OS thread; scheduling priority is raised best-effort at the start
// of each run.
package bench
