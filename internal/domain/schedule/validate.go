package schedule

import (
	"fmt"
	"strings"
)

// Required game fields checked before a save is allowed.
const (
	MissingLevel = "level"
	MissingTeam1 = "team1"
	MissingTeam2 = "team2"
	MissingDay   = "day"
	MissingTime  = "time"
)

// GameIssue names one game that cannot be saved and the fields it lacks.
type GameIssue struct {
	GameID      string
	WeekNumber  int
	DisplayWeek int
	Missing     []string
}

// Describe renders the issue as a single user-facing line.
func (i GameIssue) Describe() string {
	return fmt.Sprintf("week %d: a game is missing %s", i.DisplayWeek, strings.Join(i.Missing, ", "))
}

// ValidationReport aggregates every save-blocking problem across the whole
// schedule. Saves are all-or-nothing: a single issue blocks everything.
type ValidationReport struct {
	Issues []GameIssue
}

// OK reports whether the schedule may be saved.
func (r ValidationReport) OK() bool {
	return len(r.Issues) == 0
}

// Message renders a user-facing summary enumerating every offending game.
// POST: returns "" when the report is clean
func (r ValidationReport) Message() string {
	if r.OK() {
		return ""
	}
	var b strings.Builder
	b.WriteString("The schedule cannot be saved:\n")
	for _, issue := range r.Issues {
		fmt.Fprintf(&b, "- %s\n", issue.Describe())
	}
	return strings.TrimRight(b.String(), "\n")
}

// ValidateForSave checks every non-deleted game for the fields the backend
// requires: level, both teams, a day and a time. Deleted games and off
// weeks are skipped.
// INVARIANT: weeks are not mutated
func ValidateForSave(weeks []Week) ValidationReport {
	display := DisplayNumbers(weeks)
	var report ValidationReport
	for _, w := range weeks {
		if w.IsOffWeek {
			continue
		}
		for _, g := range w.Games {
			if g.IsDeleted {
				continue
			}
			var missing []string
			if g.LevelID == "" {
				missing = append(missing, MissingLevel)
			}
			if g.Team1ID == "" {
				missing = append(missing, MissingTeam1)
			}
			if g.Team2ID == "" {
				missing = append(missing, MissingTeam2)
			}
			if g.DayOfWeek == UnsetDay {
				missing = append(missing, MissingDay)
			}
			if g.Time == "" {
				missing = append(missing, MissingTime)
			}
			if len(missing) > 0 {
				report.Issues = append(report.Issues, GameIssue{
					GameID:      g.ID,
					WeekNumber:  w.WeekNumber,
					DisplayWeek: display[w.ID],
					Missing:     missing,
				})
			}
		}
	}
	return report
}
