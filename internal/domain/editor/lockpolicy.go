package editor

import (
	"sort"

	"courtside/internal/domain/schedule"
)

// StaleLockDays is how far behind "today" the current week may fall
// before the whole season locks down.
const StaleLockDays = 14

// ComputeLockedWeeks derives which weeks are closed to score edits:
//
//  1. Only non-off weeks with parseable dates participate.
//  2. The "current" week is the most recent one dated on or before today.
//  3. A season whose current week is more than StaleLockDays behind today
//     locks completely.
//  4. Otherwise the most recent week (current or earlier) still missing a
//     score stays open and everything else locks; with nothing missing,
//     weeks up to and including the current one lock and the future stays
//     editable.
//
// The result seeds State.LockedWeeks at hydration; manual toggles own the
// set afterwards.
// PRE: today is a YYYY-MM-DD date
func ComputeLockedWeeks(weeks []schedule.Week, today string) IDSet {
	var played []schedule.Week
	for _, w := range weeks {
		if w.IsOffWeek || !parseable(w.MondayDate) {
			continue
		}
		played = append(played, w)
	}
	// ISO dates order lexicographically.
	sort.Slice(played, func(i, j int) bool { return played[i].MondayDate < played[j].MondayDate })

	current := -1
	for i, w := range played {
		if w.MondayDate <= today {
			current = i
		}
	}
	if current < 0 {
		return NewIDSet()
	}

	locked := NewIDSet()
	if days, ok := schedule.DaysBetween(played[current].MondayDate, today); ok && days > StaleLockDays {
		for _, w := range played {
			locked = locked.With(w.ID)
		}
		return locked
	}

	incomplete := -1
	for i := current; i >= 0; i-- {
		if weekIncomplete(played[i]) {
			incomplete = i
			break
		}
	}

	if incomplete >= 0 {
		for i, w := range played {
			if i != incomplete {
				locked = locked.With(w.ID)
			}
		}
		return locked
	}

	for i := 0; i <= current; i++ {
		locked = locked.With(played[i].ID)
	}
	return locked
}

// weekIncomplete reports whether the week still has a non-deleted game
// missing either score. A week with no games is complete.
func weekIncomplete(w schedule.Week) bool {
	for _, g := range w.Games {
		if !g.IsDeleted && !g.HasBothScores() {
			return true
		}
	}
	return false
}

func parseable(date string) bool {
	_, ok := schedule.DaysBetween(date, date)
	return ok
}
