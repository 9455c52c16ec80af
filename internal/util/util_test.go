package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{name: "negative clamps to zero", duration: -time.Second, expected: "0s"},
		{name: "under one minute", duration: 45 * time.Second, expected: "45s"},
		{name: "rounded second to minute", duration: 59*time.Second + 500*time.Millisecond, expected: "1m0s"},
		{name: "minutes and seconds", duration: 2*time.Minute + 30*time.Second, expected: "2m30s"},
		{name: "session limit", duration: 30 * time.Minute, expected: "30m0s"},
		{name: "hours and minutes", duration: time.Hour + 30*time.Minute, expected: "1h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatDuration(tt.duration); got != tt.expected {
				t.Fatalf("FormatDuration(%s) = %s, want %s", tt.duration, got, tt.expected)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	if got := FormatPrice(999.999); got != "1000.00" {
		t.Fatalf("FormatPrice = %s", got)
	}
	if got := FormatPrice(5); got != "5.00" {
		t.Fatalf("FormatPrice = %s", got)
	}
}

func TestOrDash(t *testing.T) {
	t.Parallel()

	empty, value := "", "x"
	for in, want := range map[*string]string{nil: "-", &empty: "-", &value: "x"} {
		if got := OrDash(in); got != want {
			t.Fatalf("OrDash = %q, want %q", got, want)
		}
	}
}
