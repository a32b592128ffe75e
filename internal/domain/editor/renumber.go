package editor

import "courtside/internal/domain/schedule"

// The renumbering core. Week numbers are purely positional: after any
// structural change every week is renumbered 1..N from its final position
// and consecutive weeks sit exactly seven days apart. Callers translate
// "after week X" anchors into a plain insertion index before reaching
// these functions.

// insertAt places w at index idx (0-based, clamped). Weeks previously at
// position >= idx shift one slot later and seven days forward. The new
// week's Monday comes from its neighbours:
//   - empty list: the next Monday on or after today
//   - at the front: seven days before the first week
//   - at the end: seven days after the last week's pre-shift date
//   - in between: the pre-shift date of the week that will now follow it
//
// POST: returns the new list plus the ids of every week whose number,
// date or contained-game date changed (the inserted week included)
func insertAt(weeks []schedule.Week, w schedule.Week, idx int, today string) ([]schedule.Week, []string) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(weeks) {
		idx = len(weeks)
	}

	switch {
	case len(weeks) == 0:
		w.MondayDate = schedule.NextMonday(today)
	case idx == 0:
		w.MondayDate = schedule.AddDays(weeks[0].MondayDate, -7)
	case idx == len(weeks):
		w.MondayDate = schedule.AddDays(weeks[len(weeks)-1].MondayDate, 7)
	default:
		w.MondayDate = weeks[idx].MondayDate
	}

	out := make([]schedule.Week, 0, len(weeks)+1)
	out = append(out, weeks[:idx]...)
	out = append(out, w)
	for i := idx; i < len(weeks); i++ {
		shifted := weeks[i]
		shifted.MondayDate = schedule.AddDays(shifted.MondayDate, 7)
		out = append(out, shifted)
	}
	return renumberAndDiff(out, weeks)
}

// removeAt drops the week at index idx. Every later week shifts one slot
// earlier and seven days back.
// POST: returns the new list plus the ids of every week that changed
func removeAt(weeks []schedule.Week, idx int) ([]schedule.Week, []string) {
	out := make([]schedule.Week, 0, len(weeks)-1)
	out = append(out, weeks[:idx]...)
	for i := idx + 1; i < len(weeks); i++ {
		shifted := weeks[i]
		shifted.MondayDate = schedule.AddDays(shifted.MondayDate, -7)
		out = append(out, shifted)
	}
	return renumberAndDiff(out, weeks)
}

// renumberAndDiff reassigns contiguous week numbers from final position,
// rederives every game date, and reports which weeks differ from their
// counterpart in before. Weeks in the result never alias game slices from
// the input.
func renumberAndDiff(weeks, before []schedule.Week) ([]schedule.Week, []string) {
	prev := make(map[string]schedule.Week, len(before))
	for _, w := range before {
		prev[w.ID] = w
	}

	out := make([]schedule.Week, len(weeks))
	var changed []string
	for i, w := range weeks {
		w.WeekNumber = i + 1
		w = w.RecomputeGameDates()
		out[i] = w

		old, existed := prev[w.ID]
		if !existed || old.WeekNumber != w.WeekNumber || old.MondayDate != w.MondayDate || gameDatesDiffer(old, w) {
			changed = append(changed, w.ID)
		}
	}
	return out, changed
}

// gameDatesDiffer reports whether any game moved to a different derived
// date between the two versions of a week.
func gameDatesDiffer(a, b schedule.Week) bool {
	if len(a.Games) != len(b.Games) {
		return true
	}
	for i := range a.Games {
		if a.Games[i].Date != b.Games[i].Date {
			return true
		}
	}
	return false
}
