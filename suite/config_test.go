package suite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/IridiumIO/PerfUnit/bench"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
suite:
  name: parsers
  cooldown_ms: 150
defaults:
  min_total_duration_ms: 75
  max_time_ms: 2.5
benchmarks:
  decode-small:
    max_time_ms: 0.5
    max_memory: 1KB
`)

	fc, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fc.Suite.Name != "parsers" {
		t.Errorf("name = %q, want parsers", fc.Suite.Name)
	}
	if fc.Suite.CooldownMs != 150 {
		t.Errorf("cooldown_ms = %v, want 150", fc.Suite.CooldownMs)
	}
	if fc.Defaults.MaxTimeMs == nil || *fc.Defaults.MaxTimeMs != 2.5 {
		t.Errorf("defaults max_time_ms = %v, want 2.5", fc.Defaults.MaxTimeMs)
	}

	small, ok := fc.Benchmarks["decode-small"]
	if !ok {
		t.Fatal("decode-small override missing")
	}
	if small.MaxTimeMs == nil || *small.MaxTimeMs != 0.5 {
		t.Errorf("decode-small max_time_ms = %v, want 0.5", small.MaxTimeMs)
	}
	if small.MaxMemory == nil || *small.MaxMemory != "1KB" {
		t.Errorf("decode-small max_memory = %v, want 1KB", small.MaxMemory)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, "suite: [unclosed")
	if _, err := LoadConfig(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestOverridesOptions(t *testing.T) {
	durMs, timeMs, mem := 75.0, 0.5, "64KB"
	o := Overrides{
		MinTotalDurationMs: &durMs,
		MaxTimeMs:          &timeMs,
		MaxMemory:          &mem,
	}

	opts, err := o.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, err := bench.New(opts...)
	if err != nil {
		t.Fatalf("options did not validate: %v", err)
	}

	cfg := e.Config()
	if cfg.MinTotalDuration != 75*time.Millisecond {
		t.Errorf("MinTotalDuration = %v, want 75ms", cfg.MinTotalDuration)
	}
	if cfg.MaxTimePerOp != 500*time.Microsecond {
		t.Errorf("MaxTimePerOp = %v, want 0.5ms converted at 1e6 ns/ms", cfg.MaxTimePerOp)
	}
	if cfg.MaxBytesPerOp != 64_000 {
		t.Errorf("MaxBytesPerOp = %d, want 64000 (decimal multiplier)", cfg.MaxBytesPerOp)
	}
}

func TestOverridesNegativeTimeDisablesCeiling(t *testing.T) {
	timeMs := -1.0
	o := Overrides{MaxTimeMs: &timeMs}

	opts, err := o.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e, err := bench.New(opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg := e.Config(); cfg.MaxTimePerOp >= 0 {
		t.Errorf("MaxTimePerOp = %v, want disabled", cfg.MaxTimePerOp)
	}
}

func TestOverridesEmpty(t *testing.T) {
	opts, err := (Overrides{}).Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 0 {
		t.Errorf("options = %d, want none for empty overrides", len(opts))
	}
}

func TestOverridesInvalidMemory(t *testing.T) {
	mem := "12XB"
	if _, err := (Overrides{MaxMemory: &mem}).Options(); err == nil {
		t.Error("expected an error for an unparseable memory quantity")
	}
}

func TestFromConfigAppliesSuiteSettings(t *testing.T) {
	path := writeConfig(t, `
suite:
  cooldown_ms: 150
defaults:
  max_time_ms: 2
benchmarks:
  slow-path:
    max_time_ms: 10
`)

	fc, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := FromConfig(fc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := New("configured", opts...)
	if s.cooldown != 150*time.Millisecond {
		t.Errorf("cooldown = %v, want 150ms", s.cooldown)
	}
	if len(s.defaults) != 1 {
		t.Errorf("defaults = %d options, want 1", len(s.defaults))
	}
	if len(s.overrides["slow-path"]) != 1 {
		t.Errorf("slow-path overrides = %d options, want 1", len(s.overrides["slow-path"]))
	}
}

func TestFromConfigRejectsBadBenchmarkOverride(t *testing.T) {
	fc := FileConfig{}
	mem := "not-a-size"
	fc.Benchmarks = map[string]Overrides{"broken": {MaxMemory: &mem}}

	_, err := FromConfig(fc)
	if err == nil {
		t.Fatal("expected an error for a bad benchmark override")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q should name the offending benchmark", err)
	}
}
