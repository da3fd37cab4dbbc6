// Package suite runs collections of named benchmarks sequentially through
// the bench engine, spacing them out so one measurement's tail (GC, cache
// pressure) cannot leak into the next, and serializing overlapping Run calls
// behind a single measurement slot.
package suite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/IridiumIO/PerfUnit/bench"
	"github.com/IridiumIO/PerfUnit/internal/units"
)

// DefaultCooldown is the pause between consecutive benchmark starts.
const DefaultCooldown = 300 * time.Millisecond

// ErrNoBenchmarks is returned by Run when nothing was registered.
var ErrNoBenchmarks = errors.New("suite: no benchmarks registered")

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
	blue  = color.New(color.FgBlue)
)

// Suite is an ordered collection of benchmarks sharing engine defaults.
type Suite struct {
	name       string
	defaults   []bench.Option
	overrides  map[string][]bench.Option
	benchmarks []Benchmark

	cooldown time.Duration
	pacer    *rate.Limiter
	slot     *semaphore.Weighted

	out      io.Writer
	sink     bench.Sink
	hint     bench.SchedulingHint
	progress bool
}

// Option adjusts suite behavior.
type Option func(*Suite)

// WithDefaults sets engine options applied to every benchmark. Per-benchmark
// options layer on top.
func WithDefaults(opts ...bench.Option) Option {
	return func(s *Suite) {
		s.defaults = append(s.defaults, opts...)
	}
}

// WithCooldown sets the minimum spacing between benchmark starts. Zero
// disables pacing.
func WithCooldown(d time.Duration) Option {
	return func(s *Suite) {
		if d >= 0 {
			s.cooldown = d
		}
	}
}

// WithOutput redirects the suite's status lines (default: standard output).
func WithOutput(w io.Writer) Option {
	return func(s *Suite) {
		if w != nil {
			s.out = w
		}
	}
}

// WithEngineSink forwards the engines' per-phase summary lines to sink.
// By default they are discarded; the suite's own status lines and progress
// bar carry the narrative.
func WithEngineSink(sink bench.Sink) Option {
	return func(s *Suite) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// WithSchedulingHint overrides the priority elevation used by every engine.
func WithSchedulingHint(h bench.SchedulingHint) Option {
	return func(s *Suite) {
		s.hint = h
	}
}

// WithProgress draws a progress bar on standard error while the suite runs.
func WithProgress() Option {
	return func(s *Suite) {
		s.progress = true
	}
}

// New builds an empty suite.
func New(name string, opts ...Option) *Suite {
	s := &Suite{
		name:      name,
		overrides: make(map[string][]bench.Option),
		cooldown:  DefaultCooldown,
		slot:      semaphore.NewWeighted(1),
		out:       os.Stdout,
		sink:      func(string) {},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cooldown > 0 {
		s.pacer = rate.NewLimiter(rate.Every(s.cooldown), 1)
	}
	return s
}

// Add registers a benchmark. Registration order is execution order. Returns
// the suite for chaining.
func (s *Suite) Add(name string, action bench.Action, opts ...bench.Option) *Suite {
	s.benchmarks = append(s.benchmarks, Benchmark{Name: name, Action: action, Opts: opts})
	return s
}

// Run measures every registered benchmark in order and returns their
// results. A benchmark failure is captured in its Result and does not stop
// the suite. Overlapping Run calls on the same suite serialize behind a
// single measurement slot; ctx cancels while waiting for the slot or between
// benchmarks, never mid-measurement.
func (s *Suite) Run(ctx context.Context) ([]Result, error) {
	if len(s.benchmarks) == 0 {
		return nil, ErrNoBenchmarks
	}

	if err := s.slot.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.slot.Release(1)

	s.printHeader()

	var bar *progressbar.ProgressBar
	if s.progress {
		bar = makeProgressBar(len(s.benchmarks))
	}

	results := make([]Result, 0, len(s.benchmarks))
	for i, b := range s.benchmarks {
		if s.pacer != nil {
			if err := s.pacer.Wait(ctx); err != nil {
				return results, err
			}
		}

		blue.Fprintf(s.out, "[%d/%d] ", i+1, len(s.benchmarks))
		fmt.Fprintln(s.out, b.Name)

		result := s.runOne(b)
		results = append(results, result)
		s.printStatus(result)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}
	return results, nil
}

// runOne builds a fresh engine for the benchmark and measures it. The
// effective option order is suite defaults, then code-level benchmark
// options, then declarative overrides from configuration.
func (s *Suite) runOne(b Benchmark) Result {
	opts := make([]bench.Option, 0, len(s.defaults)+len(b.Opts))
	opts = append(opts, s.defaults...)
	opts = append(opts, b.Opts...)
	opts = append(opts, s.overrides[b.Name]...)

	engine, err := bench.New(opts...)
	if err != nil {
		return Result{Name: b.Name, Err: err, MaxTime: bench.Disabled, MaxBytes: bench.Disabled}
	}

	engine.SetSink(s.sink)
	if s.hint != nil {
		engine.SetSchedulingHint(s.hint)
	}

	cfg := engine.Config()
	start := time.Now()
	outcome, err := engine.Run(b.Action)

	return Result{
		Name:     b.Name,
		Outcome:  outcome,
		Elapsed:  time.Since(start),
		Err:      err,
		MaxTime:  cfg.MaxTimePerOp,
		MaxBytes: cfg.MaxBytesPerOp,
	}
}

func (s *Suite) printHeader() {
	if s.name == "" {
		return
	}
	bold.Fprintln(s.out, "╔════════════════════════════════════════════════════════════╗")
	bold.Fprintf(s.out, "║  %-58s║\n", s.name)
	bold.Fprintln(s.out, "╚════════════════════════════════════════════════════════════╝")
}

func (s *Suite) printStatus(r Result) {
	if r.Err != nil {
		red.Fprintf(s.out, "    ✗ failed: %v\n", r.Err)
		return
	}
	green.Fprintf(s.out, "    ✓ %s/op, %s/op (took %v)\n",
		units.FormatNanos(r.Outcome.NetNsPerOp),
		units.FormatBytes(r.Outcome.BytesPerOp),
		r.Elapsed.Round(time.Millisecond))
}

func makeProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Measuring"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
