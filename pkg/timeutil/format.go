// Package timeutil formats durations for log and console output.
package timeutil

import (
	"fmt"
	"time"
)

// FormatDuration renders d in the compact style used by the debug logger:
// "0ms", "850ms", "1.2s", "3m 5s", "2h 10m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		minutes := int(d / time.Minute)
		seconds := int((d % time.Minute) / time.Second)
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		hours := int(d / time.Hour)
		minutes := int((d % time.Hour) / time.Minute)
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
}
