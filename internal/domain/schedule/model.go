package schedule

import (
	"errors"
	"strings"
)

// Day-of-week indexes. Games store an offset from their week's Monday.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// UnsetDay marks a game whose day has not been chosen yet.
const UnsetDay = -1

// Domain errors
var (
	ErrEmptyWeekID      = errors.New("week ID cannot be empty")
	ErrBadMondayDate    = errors.New("monday date must be a YYYY-MM-DD Monday")
	ErrOffWeekHasGames  = errors.New("an off week cannot contain games")
	ErrEmptyGameID      = errors.New("game ID cannot be empty")
	ErrInvalidDayOfWeek = errors.New("day of week must be 0 (Monday) through 6 (Sunday)")
)

// Game is one fixture inside a week. Scores and the referee fields are
// optional; Date is derived from the owning week's Monday and is never
// entered directly.
type Game struct {
	ID            string
	DayOfWeek     int    // Monday..Sunday, or UnsetDay
	Time          string // HH:MM, empty when unscheduled
	CourtID       string
	LevelID       string
	Team1ID       string
	Team2ID       string
	Team1Score    *int
	Team2Score    *int
	RefereeTeamID string // exclusive with RefereeName
	RefereeName   string
	IsDeleted     bool
	Date          string // derived: monday_date + DayOfWeek days
}

// HasBothScores reports whether both scores have been entered.
// INVARIANT: Game fields are not mutated
func (g Game) HasBothScores() bool {
	return g.Team1Score != nil && g.Team2Score != nil
}

// Clone returns a deep copy of the game.
func (g Game) Clone() Game {
	out := g
	if g.Team1Score != nil {
		v := *g.Team1Score
		out.Team1Score = &v
	}
	if g.Team2Score != nil {
		v := *g.Team2Score
		out.Team2Score = &v
	}
	return out
}

// Validate checks if the Game has structurally valid data.
// PRE: Game struct is populated
// POST: Returns nil if valid, error otherwise
func (g *Game) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return ErrEmptyGameID
	}
	if g.DayOfWeek != UnsetDay && (g.DayOfWeek < Monday || g.DayOfWeek > Sunday) {
		return ErrInvalidDayOfWeek
	}
	return nil
}

// Week is one slot in the season calendar. WeekNumber is purely positional
// (1-based, contiguous) and is reassigned whenever weeks are inserted or
// removed. Off weeks occupy a number but hold no games.
type Week struct {
	ID          string
	WeekNumber  int
	MondayDate  string // YYYY-MM-DD; kept verbatim even when unparseable
	IsOffWeek   bool
	Title       string // off weeks only
	Description string // off weeks only
	Games       []Game
}

// Clone returns a deep copy of the week and its games.
func (w Week) Clone() Week {
	out := w
	if w.Games != nil {
		out.Games = make([]Game, len(w.Games))
		for i, g := range w.Games {
			out.Games[i] = g.Clone()
		}
	}
	return out
}

// RecomputeGameDates returns a copy of the week in which every game with a
// set day carries Date = MondayDate + DayOfWeek days. Games without a day,
// or weeks without a parseable Monday, get an empty Date.
// INVARIANT: the receiver is not mutated
func (w Week) RecomputeGameDates() Week {
	out := w.Clone()
	for i, g := range out.Games {
		out.Games[i].Date = GameDate(w.MondayDate, g.DayOfWeek)
	}
	return out
}

// Validate checks if the Week has valid data.
// PRE: Week struct is populated
// POST: Returns nil if valid, error otherwise
func (w *Week) Validate() error {
	if strings.TrimSpace(w.ID) == "" {
		return ErrEmptyWeekID
	}
	if !IsMonday(w.MondayDate) {
		return ErrBadMondayDate
	}
	if w.IsOffWeek && len(w.Games) > 0 {
		return ErrOffWeekHasGames
	}
	for i := range w.Games {
		if err := w.Games[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DisplayNumbers maps week IDs to their display number: the count of
// non-off weeks up to and including that week. Off weeks are absent from
// the result. The numbering is derived, never stored, so filtering or
// renumbering cannot skew it.
func DisplayNumbers(weeks []Week) map[string]int {
	out := make(map[string]int, len(weeks))
	n := 0
	for _, w := range weeks {
		if w.IsOffWeek {
			continue
		}
		n++
		out[w.ID] = n
	}
	return out
}
