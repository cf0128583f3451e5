package common

import (
	"fmt"
	"time"
)

// FormatTimestamp renders a post time in local time with a relative age,
// e.g. "Oct 18, 2026 at 3:04 PM · 5m ago".
func FormatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 at 3:04 PM") + " · " + RelativeAge(t, now)
}

// RelativeAge renders how long ago t was.
func RelativeAge(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d/(24*time.Hour)))
	default:
		return t.Local().Format("Jan 2")
	}
}
