// Package units renders the engine's numeric results in human-readable form
// and parses humanized byte quantities from declarative configuration.
//
// Byte multipliers are decimal (1 KB = 1,000 bytes), matching the millisecond
// convention used for time ceilings.
package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Decimal byte multipliers.
const (
	KB int64 = 1000
	MB int64 = 1000 * KB
	GB int64 = 1000 * MB
)

// FormatNanos formats a nanosecond quantity in the most appropriate unit,
// stepping through ns, µs, ms and s at factors of 1000.
func FormatNanos(ns float64) string {
	if ns == 0 {
		return "0"
	}

	if ns < 1000 {
		if ns == math.Trunc(ns) {
			return fmt.Sprintf("%dns", int64(ns))
		}
		return fmt.Sprintf("%.2fns", ns)
	}

	if ns < 1_000_000 {
		us := ns / 1000.0
		if us == math.Trunc(us) {
			return fmt.Sprintf("%dµs", int64(us))
		}
		return fmt.Sprintf("%.1fµs", us)
	}

	if ns < 1_000_000_000 {
		ms := ns / 1_000_000.0
		if ms == math.Trunc(ms) {
			return fmt.Sprintf("%dms", int64(ms))
		}
		return fmt.Sprintf("%.2fms", ms)
	}

	return fmt.Sprintf("%.2fs", ns/1_000_000_000.0)
}

// FormatBytes formats a byte quantity using decimal multipliers.
func FormatBytes(b float64) string {
	switch {
	case b < float64(KB):
		if b == math.Trunc(b) {
			return fmt.Sprintf("%dB", int64(b))
		}
		return fmt.Sprintf("%.1fB", b)
	case b < float64(MB):
		return fmt.Sprintf("%.2fKB", b/float64(KB))
	case b < float64(GB):
		return fmt.Sprintf("%.2fMB", b/float64(MB))
	default:
		return fmt.Sprintf("%.2fGB", b/float64(GB))
	}
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	s := strconv.FormatInt(n, 10)

	neg := false
	if strings.HasPrefix(s, "-") {
		neg, s = true, s[1:]
	}

	var result strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(c)
	}

	if neg {
		return "-" + result.String()
	}
	return result.String()
}

// ParseBytes parses a humanized byte quantity such as "512", "64KB" or
// "1.5MB". Suffixes are case-insensitive and use decimal multipliers.
func ParseBytes(s string) (int64, error) {
	t := strings.ToUpper(strings.TrimSpace(s))
	if t == "" {
		return 0, fmt.Errorf("units: empty byte quantity")
	}

	mult := int64(1)
	switch {
	case strings.HasSuffix(t, "GB"):
		mult, t = GB, strings.TrimSuffix(t, "GB")
	case strings.HasSuffix(t, "MB"):
		mult, t = MB, strings.TrimSuffix(t, "MB")
	case strings.HasSuffix(t, "KB"):
		mult, t = KB, strings.TrimSuffix(t, "KB")
	case strings.HasSuffix(t, "B"):
		t = strings.TrimSuffix(t, "B")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
	if err != nil {
		return 0, fmt.Errorf("units: invalid byte quantity %q: %w", s, err)
	}
	if v < 0 {
		return 0, fmt.Errorf("units: negative byte quantity %q", s)
	}

	return int64(v * float64(mult)), nil
}
