package schedule

import (
	"errors"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ErrUnparseableDate is returned when a date string is not YYYY-MM-DD.
var ErrUnparseableDate = errors.New("date is not in YYYY-MM-DD format")

// NearestMonday snaps an arbitrary date to the Monday of the week it sits
// closest to: Sundays roll forward one day, every other day rolls back to
// the Monday that started its week. The adjusted flag tells the caller a
// snap happened so the correction is never silent.
// PRE: value is intended as a week start
// POST: returns the snapped date and whether it differs from the input
func NearestMonday(value string) (string, bool, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return value, false, ErrUnparseableDate
	}
	// Monday=1 .. Sunday=7
	idx := int(t.Weekday())
	if idx == 0 {
		idx = 7
	}
	var snapped time.Time
	if idx == 7 {
		snapped = t.AddDate(0, 0, 1)
	} else {
		snapped = t.AddDate(0, 0, -(idx - 1))
	}
	out := snapped.Format(DateLayout)
	return out, out != value, nil
}

// NextMonday returns the first Monday on or after the given date; the date
// itself when it already is a Monday. Unparseable input is returned
// unchanged.
func NextMonday(value string) string {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return value
	}
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, 1)
	}
	return t.Format(DateLayout)
}

// AddDays shifts a date by a number of days. Unparseable input is returned
// unchanged rather than rejected, so a half-typed date survives a renumber.
func AddDays(value string, days int) string {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return value
	}
	return t.AddDate(0, 0, days).Format(DateLayout)
}

// GameDate derives a game's calendar date from its week's Monday and its
// day offset. Returns "" when the day is unset or the Monday is invalid.
func GameDate(monday string, day int) string {
	if day < Monday || day > Sunday {
		return ""
	}
	t, err := time.Parse(DateLayout, monday)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, day).Format(DateLayout)
}

// IsMonday reports whether the value parses and falls on a Monday.
func IsMonday(value string) bool {
	t, err := time.Parse(DateLayout, value)
	return err == nil && t.Weekday() == time.Monday
}

// DaysBetween returns b - a in whole days, or false when either side does
// not parse.
func DaysBetween(a, b string) (int, bool) {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0, false
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0, false
	}
	return int(tb.Sub(ta).Hours() / 24), true
}
