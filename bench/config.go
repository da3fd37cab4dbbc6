package bench

import (
	"fmt"
	"time"
)

// Configuration defaults and floors.
const (
	// DefaultMinTotalDuration is the wall-clock target one estimation round
	// must reach when sizing invocations per round.
	DefaultMinTotalDuration = 100 * time.Millisecond

	// MinTotalDurationFloor is the smallest legal duration target. Below
	// this, invocation sizing degenerates into clock-resolution noise.
	MinTotalDurationFloor = 50 * time.Millisecond

	DefaultMinInvocations     int64 = 4
	DefaultMinWarmupRounds          = 10
	DefaultMaxWarmupRounds          = 50
	DefaultMinIterationRounds       = 5
	DefaultMaxIterationRounds       = 50

	DefaultJITWarmupInvocations int64 = 10
	DefaultJITWarmupRounds            = 3

	// Disabled switches a ceiling off. Any negative value disables; zero is
	// a real ceiling (an effectively-instant or zero-allocation demand),
	// not a disable sentinel.
	Disabled = -1
)

// Config holds the engine's measurement parameters. Build it through New
// with functional options; the zero value is not a valid configuration.
type Config struct {
	// MinTotalDuration is the duration target used when estimating how many
	// invocations make up one measurable round.
	MinTotalDuration time.Duration

	// MinInvocations is the lower bound on invocations per round regardless
	// of the estimate.
	MinInvocations int64

	// MinWarmupRounds and MaxWarmupRounds bound the warm-up phases.
	MinWarmupRounds int
	MaxWarmupRounds int

	// MinIterationRounds and MaxIterationRounds bound the calibration and
	// measurement phases.
	MinIterationRounds int
	MaxIterationRounds int

	// JITWarmupInvocations and JITWarmupRounds size the small fixed phases
	// that pay first-call costs before real measurement.
	JITWarmupInvocations int64
	JITWarmupRounds      int

	// MaxTimePerOp short-circuits the run as soon as a gate-checked phase
	// already satisfies this time ceiling. Negative disables the gate; zero
	// demands an effectively-instant action.
	MaxTimePerOp time.Duration

	// MaxBytesPerOp is the allocation counterpart of MaxTimePerOp.
	MaxBytesPerOp int64
}

// Option adjusts one field of the engine configuration.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		MinTotalDuration:     DefaultMinTotalDuration,
		MinInvocations:       DefaultMinInvocations,
		MinWarmupRounds:      DefaultMinWarmupRounds,
		MaxWarmupRounds:      DefaultMaxWarmupRounds,
		MinIterationRounds:   DefaultMinIterationRounds,
		MaxIterationRounds:   DefaultMaxIterationRounds,
		JITWarmupInvocations: DefaultJITWarmupInvocations,
		JITWarmupRounds:      DefaultJITWarmupRounds,
		MaxTimePerOp:         Disabled,
		MaxBytesPerOp:        Disabled,
	}
}

// WithMinTotalDuration sets the duration target for invocation sizing.
// Values below MinTotalDurationFloor fail validation.
func WithMinTotalDuration(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.MinTotalDuration = d
	}
}

// WithMinInvocations sets the lower bound on invocations per round.
func WithMinInvocations(n int64) Option {
	return func(cfg *Config) {
		cfg.MinInvocations = n
	}
}

// WithWarmupRounds bounds the warm-up phases to [minRounds, maxRounds].
func WithWarmupRounds(minRounds, maxRounds int) Option {
	return func(cfg *Config) {
		cfg.MinWarmupRounds = minRounds
		cfg.MaxWarmupRounds = maxRounds
	}
}

// WithFixedWarmupRounds pins the warm-up phases to exactly n rounds.
func WithFixedWarmupRounds(n int) Option {
	return WithWarmupRounds(n, n)
}

// WithIterationRounds bounds the calibration and measurement phases to
// [minRounds, maxRounds].
func WithIterationRounds(minRounds, maxRounds int) Option {
	return func(cfg *Config) {
		cfg.MinIterationRounds = minRounds
		cfg.MaxIterationRounds = maxRounds
	}
}

// WithFixedIterationRounds pins the calibration and measurement phases to
// exactly n rounds.
func WithFixedIterationRounds(n int) Option {
	return WithIterationRounds(n, n)
}

// WithJITWarmup sizes the small fixed phases that absorb first-call costs.
func WithJITWarmup(invocations int64, rounds int) Option {
	return func(cfg *Config) {
		cfg.JITWarmupInvocations = invocations
		cfg.JITWarmupRounds = rounds
	}
}

// WithMaxTimePerOp enables the time ceiling. A run short-circuits once a
// gate-checked phase measures at or under d per operation. Pass a negative
// duration (or Disabled) to switch the gate off; zero is a real ceiling.
func WithMaxTimePerOp(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.MaxTimePerOp = d
	}
}

// WithMaxBytesPerOp enables the allocation ceiling, the memory counterpart
// of WithMaxTimePerOp.
func WithMaxBytesPerOp(n int64) Option {
	return func(cfg *Config) {
		cfg.MaxBytesPerOp = n
	}
}

// validate reports the first violated configuration invariant, wrapped in
// ErrInvalidConfig.
func (c Config) validate() error {
	if c.MinTotalDuration < MinTotalDurationFloor {
		return fmt.Errorf("%w: min total duration %v is below the %v floor",
			ErrInvalidConfig, c.MinTotalDuration, MinTotalDurationFloor)
	}

	counts := []struct {
		name  string
		value int64
	}{
		{"min invocations", c.MinInvocations},
		{"min warmup rounds", int64(c.MinWarmupRounds)},
		{"max warmup rounds", int64(c.MaxWarmupRounds)},
		{"min iteration rounds", int64(c.MinIterationRounds)},
		{"max iteration rounds", int64(c.MaxIterationRounds)},
		{"jit warmup invocations", c.JITWarmupInvocations},
		{"jit warmup rounds", int64(c.JITWarmupRounds)},
	}
	for _, count := range counts {
		if count.value < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d",
				ErrInvalidConfig, count.name, count.value)
		}
	}

	if c.MinWarmupRounds > c.MaxWarmupRounds {
		return fmt.Errorf("%w: min warmup rounds %d exceeds max %d",
			ErrInvalidConfig, c.MinWarmupRounds, c.MaxWarmupRounds)
	}
	if c.MinIterationRounds > c.MaxIterationRounds {
		return fmt.Errorf("%w: min iteration rounds %d exceeds max %d",
			ErrInvalidConfig, c.MinIterationRounds, c.MaxIterationRounds)
	}

	return nil
}
