// Package daterange builds the inclusive completion window used by reports.
package daterange

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the user-facing date format for --since and --until.
	DateLayout = "2006-01-02"

	// DefaultLookbackDays is how far back the window starts when --since is empty.
	DefaultLookbackDays = 14
)

// Range is an inclusive window. Until is always the last second of its day.
type Range struct {
	Since time.Time
	Until time.Time
}

// Parse builds a Range from YYYY-MM-DD strings interpreted in now's location.
// An empty since defaults to 14 days before now, an empty until to now.
func Parse(since, until string, now time.Time) (Range, error) {
	loc := now.Location()
	today := startOfDay(now)

	sinceDay := today.AddDate(0, 0, -DefaultLookbackDays)
	if since != "" {
		d, err := time.ParseInLocation(DateLayout, since, loc)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --since date %q (want YYYY-MM-DD): %w", since, err)
		}
		sinceDay = d
	}

	untilDay := today
	if until != "" {
		d, err := time.ParseInLocation(DateLayout, until, loc)
		if err != nil {
			return Range{}, fmt.Errorf("invalid --until date %q (want YYYY-MM-DD): %w", until, err)
		}
		untilDay = d
	}

	if sinceDay.After(untilDay) {
		return Range{}, fmt.Errorf("--since %s is after --until %s", sinceDay.Format(DateLayout), untilDay.Format(DateLayout))
	}

	return Range{Since: sinceDay, Until: EndOfDay(untilDay)}, nil
}

// EndOfDay returns 23:59:59 on t's calendar day in t's location.
func EndOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Second)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// String renders the window as "(YYYY-MM-DD to YYYY-MM-DD)".
func (r Range) String() string {
	return fmt.Sprintf("(%s to %s)", r.Since.Format(DateLayout), r.Until.Format(DateLayout))
}
