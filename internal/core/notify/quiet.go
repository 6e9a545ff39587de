package notify

import (
	"fmt"
	"time"
)

// ParseClock parses a 24h "HH:MM" value into minutes after midnight.
func ParseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: want HH:MM", v)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Active reports whether now falls inside the quiet window. Bounds are
// inclusive. A window whose start is after its end spans midnight
// (22:00-08:00); start equal to end covers the whole day. Unparsable bounds
// never suppress.
//
// A same-day window (08:00-22:00) is quiet only between its bounds. The
// older either-bound comparison (now >= start || now <= end) made such a
// window quiet around the clock; see DESIGN.md before changing this.
func (q QuietHours) Active(now time.Time) bool {
	if !q.Enabled {
		return false
	}

	start, err := ParseClock(q.Start)
	if err != nil {
		return false
	}
	end, err := ParseClock(q.End)
	if err != nil {
		return false
	}

	cur := now.Hour()*60 + now.Minute()
	switch {
	case start < end:
		return cur >= start && cur <= end
	case start > end:
		return cur >= start || cur <= end
	default:
		return true
	}
}
