package suite

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/IridiumIO/PerfUnit/bench"
	"github.com/IridiumIO/PerfUnit/internal/units"
)

// FileConfig mirrors the on-disk YAML layout:
//
//	suite:
//	  name: parsers
//	  cooldown_ms: 300
//	defaults:
//	  min_total_duration_ms: 100
//	  max_time_ms: 2.5
//	  max_memory: 64KB
//	benchmarks:
//	  decode-small:
//	    max_time_ms: 0.5
//	    max_memory: 1KB
//
// Times follow the engine's external convention and are given in
// milliseconds; memory quantities are humanized byte strings with decimal
// multipliers.
type FileConfig struct {
	Suite struct {
		Name       string  `yaml:"name"`
		CooldownMs float64 `yaml:"cooldown_ms"`
	} `yaml:"suite"`

	Defaults   Overrides            `yaml:"defaults"`
	Benchmarks map[string]Overrides `yaml:"benchmarks"`
}

// Overrides carries the engine tunables expressible declaratively. Absent
// fields leave the corresponding setting untouched.
type Overrides struct {
	MinTotalDurationMs *float64 `yaml:"min_total_duration_ms"`
	MaxTimeMs          *float64 `yaml:"max_time_ms"`
	MaxMemory          *string  `yaml:"max_memory"`
}

// LoadConfig reads and parses a YAML suite configuration.
func LoadConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("suite: parsing %s: %w", path, err)
	}
	return fc, nil
}

// Options converts the overrides into engine options. Millisecond values
// convert at 1,000,000 nanoseconds per millisecond; a negative max_time_ms
// disables the time ceiling, matching the engine's sentinel convention.
func (o Overrides) Options() ([]bench.Option, error) {
	var opts []bench.Option

	if o.MinTotalDurationMs != nil {
		opts = append(opts, bench.WithMinTotalDuration(msToDuration(*o.MinTotalDurationMs)))
	}
	if o.MaxTimeMs != nil {
		opts = append(opts, bench.WithMaxTimePerOp(msToDuration(*o.MaxTimeMs)))
	}
	if o.MaxMemory != nil {
		n, err := units.ParseBytes(*o.MaxMemory)
		if err != nil {
			return nil, err
		}
		opts = append(opts, bench.WithMaxBytesPerOp(n))
	}

	return opts, nil
}

// FromConfig translates a loaded file configuration into suite options: the
// cooldown, suite-wide engine defaults, and per-benchmark overrides (matched
// by registration name and applied after code-level options).
func FromConfig(fc FileConfig) ([]Option, error) {
	var opts []Option

	if fc.Suite.CooldownMs > 0 {
		opts = append(opts, WithCooldown(msToDuration(fc.Suite.CooldownMs)))
	}

	defaults, err := fc.Defaults.Options()
	if err != nil {
		return nil, fmt.Errorf("suite: defaults: %w", err)
	}
	if len(defaults) > 0 {
		opts = append(opts, WithDefaults(defaults...))
	}

	for name, o := range fc.Benchmarks {
		benchOpts, err := o.Options()
		if err != nil {
			return nil, fmt.Errorf("suite: benchmark %s: %w", name, err)
		}
		opts = append(opts, withOverride(name, benchOpts))
	}

	return opts, nil
}

func withOverride(name string, opts []bench.Option) Option {
	return func(s *Suite) {
		s.overrides[name] = append(s.overrides[name], opts...)
	}
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
