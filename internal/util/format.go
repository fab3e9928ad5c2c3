package util

import (
	"fmt"
	"time"
)

// FormatCount renders an event count compactly.
func FormatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	} else if n < 1000000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%.1fM", float64(n)/1000000)
}

// FormatElapsed renders an event timestamp at a precision suited to its
// magnitude.
func FormatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.3fs", d.Seconds())
	default:
		minutes := int(d.Minutes())
		seconds := d.Seconds() - float64(minutes)*60
		return fmt.Sprintf("%dm%05.2fs", minutes, seconds)
	}
}
