package reporting

import (
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// WINDOW - Inclusive time boundary for report queries
// =============================================================================

// Window is an inclusive [Start, End] time range. Reports are always
// computed for a window; an unbounded report uses the full ledger.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains returns true if t falls within [Start, End].
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w Window) String() string {
	return "[" + w.Start.Format(time.RFC3339) + ", " + w.End.Format(time.RFC3339) + "]"
}

// Month returns the window covering the given calendar month, from the
// first instant of day 1 to the last instant of the final day.
func Month(year int, month time.Month, loc *time.Location) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Window{
		Start: start,
		End:   start.AddDate(0, 1, 0).Add(-time.Nanosecond),
	}
}

// CurrentMonth returns the calendar month containing now.
func CurrentMonth(now time.Time) Window {
	return Month(now.Year(), now.Month(), now.Location())
}

// ErrInvalidMonthKey is returned for month keys not in YYYY-MM form.
var ErrInvalidMonthKey = errors.New("invalid month key, expected YYYY-MM")

// ParseMonth converts a "YYYY-MM" key into its calendar-month window.
func ParseMonth(key string, loc *time.Location) (Window, error) {
	t, err := time.ParseInLocation("2006-01", key, loc)
	if err != nil {
		return Window{}, fmt.Errorf("%w: %q", ErrInvalidMonthKey, key)
	}
	return Month(t.Year(), t.Month(), loc), nil
}
