// Package util holds small formatting helpers for terminal output.
package util

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}

// FormatRemaining describes how long until deadline, or "expired" once passed.
func FormatRemaining(deadline, now time.Time) string {
	left := deadline.Sub(now)
	if left <= 0 {
		return "expired"
	}

	return "in " + FormatDuration(left)
}

// Truncate shortens s to at most limit runes, marking the cut with "...".
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= 3 {
		return string([]rune(s)[:limit])
	}

	return string([]rune(s)[:limit-3]) + "..."
}
