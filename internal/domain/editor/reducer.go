package editor

import (
	"strconv"

	"courtside/internal/domain/schedule"
)

// GameField names a game attribute the UI may edit generically.
type GameField string

// Editable game fields.
const (
	FieldDay         GameField = "day"
	FieldTime        GameField = "time"
	FieldCourt       GameField = "court"
	FieldLevel       GameField = "level"
	FieldTeam1       GameField = "team1"
	FieldTeam2       GameField = "team2"
	FieldScore1      GameField = "score1"
	FieldScore2      GameField = "score2"
	FieldRefereeTeam GameField = "referee_team"
	FieldRefereeName GameField = "referee_name"
)

// WeekField names a week attribute the UI may edit generically.
type WeekField string

// Editable week fields.
const (
	WeekFieldMondayDate  WeekField = "monday_date"
	WeekFieldTitle       WeekField = "title"
	WeekFieldDescription WeekField = "description"
)

// UpdateGame replaces one field on one game. Persisted games are marked
// changed; games still in NewGames are already tracked wholesale. Unknown
// game ids are a silent no-op.
func (s State) UpdateGame(gameID string, field GameField, value string) State {
	wi, gi := s.findGame(gameID)
	if wi < 0 {
		return s
	}

	week := s.Weeks[wi].Clone()
	g := setGameField(week.Games[gi], field, value)
	g.Date = schedule.GameDate(week.MondayDate, g.DayOfWeek)
	week.Games[gi] = g

	out := s.replaceWeek(wi, week)
	if !out.NewGames.Has(gameID) {
		out.ChangedGames = out.ChangedGames.With(gameID)
	}
	return out
}

// AddGame appends a game to the target week and registers it as new.
// No-op when the week does not exist or is an off week.
func (s State) AddGame(weekID string, g schedule.Game) State {
	wi := s.weekIndex(weekID)
	if wi < 0 || s.Weeks[wi].IsOffWeek || g.ID == "" {
		return s
	}

	week := s.Weeks[wi].Clone()
	g.IsDeleted = false
	g.Date = schedule.GameDate(week.MondayDate, g.DayOfWeek)
	week.Games = append(week.Games, g)

	out := s.replaceWeek(wi, week)
	out.NewGames = out.NewGames.With(g.ID)
	return out
}

// ToggleDeleteGame flips a game's soft-delete flag. A game created this
// session is hard-removed instead, since the backend has never seen it.
// Deleting takes the id out of ChangedGames, parking any tracked edit so
// a later restore reinstates it; the pending deletion itself is carried
// by the flag until save.
func (s State) ToggleDeleteGame(gameID, weekID string) State {
	wi, gi := -1, -1
	if weekID != "" {
		wi = s.weekIndex(weekID)
		if wi >= 0 {
			for j := range s.Weeks[wi].Games {
				if s.Weeks[wi].Games[j].ID == gameID {
					gi = j
					break
				}
			}
		}
	}
	if gi < 0 {
		wi, gi = s.findGame(gameID)
	}
	if wi < 0 {
		return s
	}

	week := s.Weeks[wi].Clone()
	if s.NewGames.Has(gameID) {
		week.Games = append(week.Games[:gi], week.Games[gi+1:]...)
		out := s.replaceWeek(wi, week)
		out.NewGames = out.NewGames.Without(gameID)
		out.ChangedGames = out.ChangedGames.Without(gameID)
		return out
	}

	g := week.Games[gi]
	g.IsDeleted = !g.IsDeleted
	week.Games[gi] = g

	out := s.replaceWeek(wi, week)
	if g.IsDeleted {
		if out.ChangedGames.Has(gameID) {
			out.parkedEdits = out.parkedEdits.With(gameID)
		}
		out.ChangedGames = out.ChangedGames.Without(gameID)
	} else if out.parkedEdits.Has(gameID) {
		out.ChangedGames = out.ChangedGames.With(gameID)
		out.parkedEdits = out.parkedEdits.Without(gameID)
	}
	return out
}

// UpdateWeekField sets one field on a week. A date change rederives every
// contained game's date; an unparseable date is kept verbatim so the user
// can finish typing. The week lands in ChangedWeeks and, unless
// suppressed, in ValidationChanges.
func (s State) UpdateWeekField(weekID string, field WeekField, value string, suppressValidation bool) State {
	wi := s.weekIndex(weekID)
	if wi < 0 {
		return s
	}

	week := s.Weeks[wi].Clone()
	switch field {
	case WeekFieldMondayDate:
		week.MondayDate = value
		week = week.RecomputeGameDates()
	case WeekFieldTitle:
		week.Title = value
	case WeekFieldDescription:
		week.Description = value
	default:
		return s
	}

	out := s.replaceWeek(wi, week)
	out.ChangedWeeks = out.ChangedWeeks.With(weekID)
	if !suppressValidation {
		out.ValidationChanges = out.ValidationChanges.With(weekID)
	}
	return out
}

// UpdateWeekDate is the legacy date-specific form of UpdateWeekField.
func (s State) UpdateWeekDate(weekID, value string) State {
	return s.UpdateWeekField(weekID, WeekFieldMondayDate, value, false)
}

// AddNewWeek inserts an empty playing week after the given week. An empty
// afterID inserts at the very start. newID supplies the week's id.
func (s State) AddNewWeek(afterID string, newID func() string) State {
	return s.insertWeek(afterID, schedule.Week{ID: newID()})
}

// AddOffWeek inserts a bye week after the given week.
func (s State) AddOffWeek(afterID, title, description string, newID func() string) State {
	return s.insertWeek(afterID, schedule.Week{
		ID:          newID(),
		IsOffWeek:   true,
		Title:       title,
		Description: description,
	})
}

// CopyWeek inserts a new week after afterID, cloning the template week's
// surviving games with fresh ids and cleared scores. The clones' dates
// come from the new week's placement, never from the template.
func (s State) CopyWeek(afterID, templateID string, newID func() string) State {
	ti := s.weekIndex(templateID)
	if ti < 0 || s.Weeks[ti].IsOffWeek {
		return s
	}

	w := schedule.Week{ID: newID()}
	for _, g := range s.Weeks[ti].Games {
		if g.IsDeleted {
			continue
		}
		clone := g.Clone()
		clone.ID = newID()
		clone.Team1Score = nil
		clone.Team2Score = nil
		clone.Date = ""
		w.Games = append(w.Games, clone)
	}

	out := s.insertWeek(afterID, w)
	if out.weekIndex(w.ID) < 0 {
		return s // insertion anchor missing; nothing happened
	}
	for _, g := range w.Games {
		out.NewGames = out.NewGames.With(g.ID)
	}
	return out
}

// DeleteWeek removes a week and shifts everything after it back by one
// slot and seven days. Unknown ids are a no-op. Tracking for the week's
// games is dropped; a persisted week is remembered for backend deletion.
func (s State) DeleteWeek(weekID string) State {
	wi := s.weekIndex(weekID)
	if wi < 0 {
		return s
	}

	out := s
	for _, g := range s.Weeks[wi].Games {
		out.NewGames = out.NewGames.Without(g.ID)
		out.ChangedGames = out.ChangedGames.Without(g.ID)
		out.parkedEdits = out.parkedEdits.Without(g.ID)
	}
	if out.NewWeeks.Has(weekID) {
		out.NewWeeks = out.NewWeeks.Without(weekID)
	} else {
		out.DeletedWeeks = out.DeletedWeeks.With(weekID)
	}
	out.ChangedWeeks = out.ChangedWeeks.Without(weekID)
	out.ValidationChanges = out.ValidationChanges.Without(weekID)
	out.LockedWeeks = out.LockedWeeks.Without(weekID)

	weeks, changed := removeAt(s.Weeks, wi)
	out.Weeks = weeks
	out.ChangedWeeks = out.ChangedWeeks.WithAll(changed...)
	return out
}

// ToggleWeekLock flips a week's lock by its displayed week number. Manual
// toggles always win over the computed policy.
func (s State) ToggleWeekLock(weekNumber int) State {
	wi := s.weekIndexByNumber(weekNumber)
	if wi < 0 {
		return s
	}
	id := s.Weeks[wi].ID
	out := s
	if out.LockedWeeks.Has(id) {
		out.LockedWeeks = out.LockedWeeks.Without(id)
	} else {
		out.LockedWeeks = out.LockedWeeks.With(id)
	}
	return out
}

// insertWeek resolves the "after" anchor to an index and runs the
// renumbering core. The anchor week is marked changed alongside the diff
// so the save always refreshes the insertion neighbourhood.
func (s State) insertWeek(afterID string, w schedule.Week) State {
	idx := 0
	if afterID != "" {
		ai := s.weekIndex(afterID)
		if ai < 0 {
			return s
		}
		idx = ai + 1
	}

	weeks, changed := insertAt(s.Weeks, w, idx, s.Today)
	out := s
	out.Weeks = weeks
	out.ChangedWeeks = out.ChangedWeeks.WithAll(changed...)
	if afterID != "" {
		out.ChangedWeeks = out.ChangedWeeks.With(afterID)
	}
	out.NewWeeks = out.NewWeeks.With(w.ID)
	return out
}

// parseScore turns a form value into a score pointer; empty clears it.
func parseScore(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// setGameField applies one generic field edit. Unknown fields and
// unparseable day values leave the game untouched. The two referee fields
// are mutually exclusive: setting one clears the other.
func setGameField(g schedule.Game, field GameField, value string) schedule.Game {
	switch field {
	case FieldDay:
		if value == "" {
			g.DayOfWeek = schedule.UnsetDay
		} else if n, err := strconv.Atoi(value); err == nil && n >= schedule.Monday && n <= schedule.Sunday {
			g.DayOfWeek = n
		}
	case FieldTime:
		g.Time = value
	case FieldCourt:
		g.CourtID = value
	case FieldLevel:
		g.LevelID = value
	case FieldTeam1:
		g.Team1ID = value
	case FieldTeam2:
		g.Team2ID = value
	case FieldScore1:
		g.Team1Score = parseScore(value)
	case FieldScore2:
		g.Team2Score = parseScore(value)
	case FieldRefereeTeam:
		g.RefereeTeamID = value
		if value != "" {
			g.RefereeName = ""
		}
	case FieldRefereeName:
		g.RefereeName = value
		if value != "" {
			g.RefereeTeamID = ""
		}
	}
	return g
}
