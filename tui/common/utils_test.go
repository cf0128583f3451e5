package common

import (
	"strings"
	"testing"
	"time"
)

func TestRelativeAge(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.Local)
	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-2 * 24 * time.Hour), "2d ago"},
		{now.Add(-30 * 24 * time.Hour), "Sep 18"},
	}
	for _, tc := range tests {
		if got := RelativeAge(tc.at, now); got != tc.want {
			t.Fatalf("RelativeAge(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2026, 10, 18, 15, 4, 0, 0, time.Local)
	got := FormatTimestamp(now.Add(-5*time.Minute), now)
	if !strings.HasPrefix(got, "Oct 18, 2026 at 2:59 PM") || !strings.HasSuffix(got, "5m ago") {
		t.Fatalf("unexpected timestamp: %q", got)
	}
	if FormatTimestamp(time.Time{}, now) != "" {
		t.Fatalf("zero time must render empty")
	}
}
