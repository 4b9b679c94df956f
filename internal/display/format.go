// Package display holds small formatting helpers for logs and the run summary.
package display

import (
	"fmt"
	"time"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatSeconds renders a duration in seconds with one decimal ("12.3s"),
// the unit used throughout the persisted statistics.
func FormatSeconds(secs float64) string {
	return fmt.Sprintf("%.1fs", secs)
}

// FormatElapsed renders a wall-clock span compactly: "42s", "3m05s", "2h14m".
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// EstimateBatch projects the wall-clock time of n jobs at perJob each over
// workers parallel slots.
func EstimateBatch(n, workers int, perJob time.Duration) time.Duration {
	if n <= 0 || workers <= 0 {
		return 0
	}
	rounds := (n + workers - 1) / workers
	return time.Duration(rounds) * perJob
}
