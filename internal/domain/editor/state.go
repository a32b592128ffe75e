// Package editor holds the schedule editing engine: an immutable state
// snapshot plus a closed set of pure operations over it. Every operation
// returns a new State and never mutates its receiver; unmatched ids are
// silent no-ops so the operation set stays total. The engine never reads
// the wall clock — "today" is always passed in by the caller.
package editor

import (
	"encoding/json"
	"fmt"
	"sort"

	"courtside/internal/domain/league"
	"courtside/internal/domain/schedule"
)

// State is one immutable snapshot of an editing session. Transitions
// replace the snapshot wholesale; the change-tracking sets record which
// entities differ from what the backend last confirmed.
type State struct {
	Season       string
	Today        string          // the session's "today", fixed at hydration
	Weeks        []schedule.Week // ordered by WeekNumber
	Levels       []league.Level
	TeamsByLevel map[string][]league.Team
	Courts       []league.Court

	ChangedGames      IDSet // persisted games with unsaved field edits
	NewGames          IDSet // games created this session, not yet saved
	ChangedWeeks      IDSet // weeks whose number, date or games moved
	NewWeeks          IDSet // weeks created this session
	DeletedWeeks      IDSet // persisted weeks removed this session
	ValidationChanges IDSet // week edits that can affect save validation
	LockedWeeks       IDSet // weeks closed to score edits

	// parkedEdits holds ids whose ChangedGames membership was set aside
	// while the game sits soft-deleted, so a restore can reinstate it.
	parkedEdits IDSet
}

// GamePayload is the wire form of a game in a load snapshot.
type GamePayload struct {
	ID          string `json:"id"`
	Day         *int   `json:"day"`
	Time        string `json:"time"`
	Court       string `json:"court"`
	Level       string `json:"level"`
	Team1       string `json:"team1"`
	Team2       string `json:"team2"`
	Score1      *int   `json:"score1"`
	Score2      *int   `json:"score2"`
	RefereeTeam string `json:"referee_team"`
	RefereeName string `json:"referee_name"`
}

// WeekPayload is the wire form of a week in a load snapshot.
type WeekPayload struct {
	ID          string        `json:"id"`
	MondayDate  string        `json:"monday_date"`
	IsOffWeek   bool          `json:"is_off_week"`
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Games       []GamePayload `json:"games"`
}

// LoadSnapshot is what the persistence gateway hands the editor on load.
// Weeks are keyed by week number as the backend stores them.
type LoadSnapshot struct {
	Season       string                   `json:"season"`
	Weeks        map[int]WeekPayload      `json:"weeks"`
	Levels       []league.Level           `json:"levels"`
	TeamsByLevel map[string][]league.Team `json:"teams_by_level"`
	Courts       []league.Court           `json:"courts"`
}

// UnmarshalJSON accepts both "teams_by_level" and the legacy camel-cased
// "teamsByLevel" key some backends emit.
func (s *LoadSnapshot) UnmarshalJSON(data []byte) error {
	type plain LoadSnapshot
	aux := struct {
		*plain
		TeamsByLevelCamel map[string][]league.Team `json:"teamsByLevel"`
	}{plain: (*plain)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if s.TeamsByLevel == nil {
		s.TeamsByLevel = aux.TeamsByLevelCamel
	}
	return nil
}

// HydrateOptions tweaks initial hydration.
type HydrateOptions struct {
	// DisableLocking skips the lock-policy pass, leaving every week
	// editable (used by admin tooling).
	DisableLocking bool
}

// Hydrate builds a fresh State from a gateway snapshot. Weeks are ordered
// by their stored number and renumbered contiguously from 1; every game
// starts undeleted with its date derived from the week's Monday. The lock
// policy runs once here — and only here — unless disabled.
// PRE: today is a YYYY-MM-DD date
// POST: all change-tracking sets are empty except LockedWeeks
func Hydrate(snap LoadSnapshot, today string, opts HydrateOptions) State {
	numbers := make([]int, 0, len(snap.Weeks))
	for n := range snap.Weeks {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	weeks := make([]schedule.Week, 0, len(numbers))
	newGames := NewIDSet()
	for i, n := range numbers {
		p := snap.Weeks[n]
		w := schedule.Week{
			ID:          p.ID,
			WeekNumber:  i + 1,
			MondayDate:  p.MondayDate,
			IsOffWeek:   p.IsOffWeek,
			Title:       p.Title,
			Description: p.Description,
		}
		if w.ID == "" {
			w.ID = fmt.Sprintf("week-%d", i+1)
		}
		for j, gp := range p.Games {
			g := schedule.Game{
				ID:            gp.ID,
				DayOfWeek:     schedule.UnsetDay,
				Time:          gp.Time,
				CourtID:       gp.Court,
				LevelID:       gp.Level,
				Team1ID:       gp.Team1,
				Team2ID:       gp.Team2,
				Team1Score:    gp.Score1,
				Team2Score:    gp.Score2,
				RefereeTeamID: gp.RefereeTeam,
				RefereeName:   gp.RefereeName,
			}
			if gp.Day != nil {
				g.DayOfWeek = *gp.Day
			}
			// A game without a backend id has never been saved.
			if g.ID == "" {
				g.ID = fmt.Sprintf("game-%d-%d", i+1, j+1)
				newGames = newGames.With(g.ID)
			}
			w.Games = append(w.Games, g)
		}
		weeks = append(weeks, w.RecomputeGameDates())
	}

	st := State{
		Season:            snap.Season,
		Today:             today,
		Weeks:             weeks,
		Levels:            snap.Levels,
		TeamsByLevel:      snap.TeamsByLevel,
		Courts:            snap.Courts,
		ChangedGames:      NewIDSet(),
		NewGames:          newGames,
		ChangedWeeks:      NewIDSet(),
		NewWeeks:          NewIDSet(),
		DeletedWeeks:      NewIDSet(),
		ValidationChanges: NewIDSet(),
		LockedWeeks:       NewIDSet(),
		parkedEdits:       NewIDSet(),
	}
	if !opts.DisableLocking {
		st.LockedWeeks = ComputeLockedWeeks(st.Weeks, today)
	}
	return st
}

// ResetChangeTracking clears every tracking set. Called exactly once per
// confirmed save; the week/game data itself is untouched.
func (s State) ResetChangeTracking() State {
	out := s
	out.ChangedGames = NewIDSet()
	out.NewGames = NewIDSet()
	out.ChangedWeeks = NewIDSet()
	out.NewWeeks = NewIDSet()
	out.DeletedWeeks = NewIDSet()
	out.ValidationChanges = NewIDSet()
	out.LockedWeeks = NewIDSet()
	out.parkedEdits = NewIDSet()
	return out
}

// HasUnsavedChanges reports whether anything would be sent on save.
func (s State) HasUnsavedChanges() bool {
	if s.ChangedGames.Len() > 0 || s.NewGames.Len() > 0 ||
		s.ChangedWeeks.Len() > 0 || s.NewWeeks.Len() > 0 || s.DeletedWeeks.Len() > 0 {
		return true
	}
	// A soft-deleted persisted game is a pending change even though its id
	// left ChangedGames.
	for _, w := range s.Weeks {
		for _, g := range w.Games {
			if g.IsDeleted && !s.NewGames.Has(g.ID) {
				return true
			}
		}
	}
	return false
}

// weekIndex returns the position of the week with the given id, or -1.
func (s State) weekIndex(weekID string) int {
	for i := range s.Weeks {
		if s.Weeks[i].ID == weekID {
			return i
		}
	}
	return -1
}

// weekIndexByNumber returns the position of the week with the given
// stored number, or -1.
func (s State) weekIndexByNumber(n int) int {
	for i := range s.Weeks {
		if s.Weeks[i].WeekNumber == n {
			return i
		}
	}
	return -1
}

// findGame locates a game by id across all weeks. Returns (-1, -1) when
// absent.
func (s State) findGame(gameID string) (weekIdx, gameIdx int) {
	for i := range s.Weeks {
		for j := range s.Weeks[i].Games {
			if s.Weeks[i].Games[j].ID == gameID {
				return i, j
			}
		}
	}
	return -1, -1
}

// replaceWeek returns a state whose week list has the week at index i
// swapped for w. Only the touched week and the list spine are copied.
func (s State) replaceWeek(i int, w schedule.Week) State {
	weeks := make([]schedule.Week, len(s.Weeks))
	copy(weeks, s.Weeks)
	weeks[i] = w
	out := s
	out.Weeks = weeks
	return out
}
