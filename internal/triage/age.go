package triage

import (
	"fmt"
	"math"
	"time"
)

// RelativeAge renders how long ago t was, in whole days rounded up:
// "Today", "Yesterday", "3 days ago", "2 weeks ago", "5 months ago", "2 years ago".
func RelativeAge(t, now time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	diff := now.Sub(t)
	if diff < 0 {
		diff = -diff
	}
	days := int(math.Ceil(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", ceilDiv(days, 7))
	case days < 365:
		return fmt.Sprintf("%d months ago", ceilDiv(days, 30))
	default:
		return fmt.Sprintf("%d years ago", ceilDiv(days, 365))
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
