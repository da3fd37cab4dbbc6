package units

import "testing"

func TestFormatNanos(t *testing.T) {
	tests := []struct {
		name string
		ns   float64
		want string
	}{
		{"zero", 0, "0"},
		{"sub nanosecond", 0.53, "0.53ns"},
		{"whole nanoseconds", 420, "420ns"},
		{"whole microseconds", 2000, "2µs"},
		{"fractional microseconds", 1500, "1.5µs"},
		{"whole milliseconds", 3_000_000, "3ms"},
		{"fractional milliseconds", 2_340_000, "2.34ms"},
		{"seconds", 1_500_000_000, "1.50s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatNanos(tt.ns); got != tt.want {
				t.Errorf("FormatNanos(%v) = %q, want %q", tt.ns, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		b    float64
		want string
	}{
		{"zero", 0, "0B"},
		{"bytes", 512, "512B"},
		{"fractional bytes", 24.5, "24.5B"},
		{"kilobytes", 2000, "2.00KB"},
		{"megabytes", 1_500_000, "1.50MB"},
		{"gigabytes", 2_000_000_000, "2.00GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBytes(tt.b); got != tt.want {
				t.Errorf("FormatBytes(%v) = %q, want %q", tt.b, got, tt.want)
			}
		})
	}
}

func TestFormatBytesDecimalMultipliers(t *testing.T) {
	// 1024 is past the decimal kilobyte boundary
	if got := FormatBytes(1024); got != "1.02KB" {
		t.Errorf("FormatBytes(1024) = %q, want %q", got, "1.02KB")
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-42000, "-42,000"},
	}

	for _, tt := range tests {
		if got := FormatCount(tt.n); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"512", 512},
		{"512B", 512},
		{"64KB", 64_000},
		{"64kb", 64_000},
		{"1.5MB", 1_500_000},
		{"2GB", 2_000_000_000},
		{" 128 KB ", 128_000},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := ParseBytes(tt.in)
		if err != nil {
			t.Fatalf("ParseBytes(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseBytes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseBytesErrors(t *testing.T) {
	for _, in := range []string{"", "abc", "12XB", "-5KB"} {
		if _, err := ParseBytes(in); err == nil {
			t.Errorf("ParseBytes(%q) expected error, got nil", in)
		}
	}
}
