// Package timeutil provides small helpers for formatting durations in log output.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration compactly, in the style of the npm debug
// package time diffs: microseconds below 1ms, milliseconds below 1s, seconds
// below 1m, then minutes and hours.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.1fm", d.Minutes())
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}
