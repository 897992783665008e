package forecast

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatDuration renders a duration for forecast messages. Durations
// under 30 minutes are not worth surfacing and come back empty.
// Otherwise: whole minutes under an hour, whole hours under a day,
// one-decimal days (trailing .0 stripped) up to two days, and whole
// days beyond that. Always rounded, never truncated; whole-day ties
// round to even.
func FormatDuration(d time.Duration) string {
	s := d.Seconds()
	switch {
	case s < 1800:
		return ""
	case s < 3600:
		m := int(math.Round(s / 60))
		if m >= 60 {
			return "1h"
		}
		return fmt.Sprintf("%dm", m)
	case s < 86400:
		h := int(math.Round(s / 3600))
		if h >= 24 {
			return "1 d"
		}
		return fmt.Sprintf("%dh", h)
	case s < 172800:
		days := fmt.Sprintf("%.1f", s/86400)
		days = strings.TrimSuffix(days, ".0")
		return days + " d"
	default:
		return fmt.Sprintf("%d d", int(math.RoundToEven(s/86400)))
	}
}
