package seed

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Calendar units are fixed-width here: the seed only needs a plausible
// ordering of timestamps, not calendar arithmetic.
var units = map[string]time.Duration{
	"second": time.Second,
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"week":   7 * 24 * time.Hour,
	"month":  30 * 24 * time.Hour,
	"year":   365 * 24 * time.Hour,
}

// ParseRelativeTime resolves phrases like "2 days ago" or "just now" into an
// absolute timestamp anchored at now.
func ParseRelativeTime(phrase string, now time.Time) (time.Time, error) {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "just now" || p == "now" {
		return now, nil
	}

	fields := strings.Fields(p)
	if len(fields) != 3 || fields[2] != "ago" {
		return time.Time{}, fmt.Errorf("unparseable relative time %q", phrase)
	}

	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return time.Time{}, fmt.Errorf("unparseable relative time %q", phrase)
	}

	unit, ok := units[strings.TrimSuffix(fields[1], "s")]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown time unit in %q", phrase)
	}
	return now.Add(-time.Duration(n) * unit), nil
}
