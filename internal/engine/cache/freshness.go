package cache

import (
	"fmt"
	"time"
)

// Duration formatting constants.
const (
	// minutesPerHour is used for duration formatting calculations.
	minutesPerHour = 60

	// hoursPerDay is used for duration formatting calculations.
	hoursPerDay = 24
)

// IsFresh reports whether entry can be reused instead of refetched.
// An entry is fresh when strictly less than interval has elapsed since
// it was fetched; an entry exactly interval old is already stale. A nil
// entry is never fresh.
//
// The check is pure: two calls with the same entry, interval, and now
// always agree, and neither mutates the entry.
func IsFresh(entry *Entry, interval time.Duration, now time.Time) bool {
	if entry == nil {
		return false
	}
	return now.Sub(entry.FetchedAt) < interval
}

// Age returns how long ago the entry was fetched, relative to now.
// Returns 0 for a nil entry.
func Age(entry *Entry, now time.Time) time.Duration {
	if entry == nil {
		return 0
	}
	return now.Sub(entry.FetchedAt)
}

// FormatDuration formats a duration in a human-readable way.
// Examples: "1h", "30m", "5m30s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % minutesPerHour
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}
