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
		{name: "under one minute", duration: 45 * time.Second, expected: "45s"},
		{name: "rounded second to minute", duration: 59*time.Second + 500*time.Millisecond, expected: "1m0s"},
		{name: "minutes and seconds", duration: 2*time.Minute + 30*time.Second, expected: "2m30s"},
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

func TestFormatRemaining(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline time.Time
		expected string
	}{
		{name: "future", deadline: now.Add(90 * time.Minute), expected: "in 1h30m"},
		{name: "exactly now", deadline: now, expected: "expired"},
		{name: "past", deadline: now.Add(-time.Hour), expected: "expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FormatRemaining(tt.deadline, now); got != tt.expected {
				t.Fatalf("FormatRemaining() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		limit    int
		expected string
	}{
		{name: "short enough", in: "Ann", limit: 10, expected: "Ann"},
		{name: "cut with marker", in: "Annabelle Lee", limit: 8, expected: "Annab..."},
		{name: "multibyte", in: "Jürgen Müller", limit: 7, expected: "Jürg..."},
		{name: "tiny limit", in: "Annabelle", limit: 2, expected: "An"},
		{name: "no limit", in: "Annabelle", limit: 0, expected: "Annabelle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Truncate(tt.in, tt.limit); got != tt.expected {
				t.Fatalf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.expected)
			}
		})
	}
}
