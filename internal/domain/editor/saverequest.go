package editor

import "courtside/internal/domain/schedule"

// SaveGame is the wire form of one changed or new game in a save request.
type SaveGame struct {
	ID          string `json:"id"`
	WeekID      string `json:"week_id"`
	Week        int    `json:"week"`
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

// WeekDate carries one week row whose placement or metadata changed.
type WeekDate struct {
	ID          string `json:"id"`
	WeekNumber  int    `json:"week_number"`
	MondayDate  string `json:"date"`
	IsOffWeek   bool   `json:"is_off_week"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// SaveRequest is the changed subset handed to the persistence gateway:
// upserted games, hard deletions, and week rows to upsert or remove. The
// gateway applies the whole request in one transaction or not at all.
type SaveRequest struct {
	Games         []SaveGame `json:"games"`
	DeleteGameIDs []string   `json:"delete_game_ids"`
	WeekDates     []WeekDate `json:"week_dates"`
	DeleteWeekIDs []string   `json:"delete_week_ids"`
}

// Empty reports whether the request would change nothing.
func (r SaveRequest) Empty() bool {
	return len(r.Games) == 0 && len(r.DeleteGameIDs) == 0 &&
		len(r.WeekDates) == 0 && len(r.DeleteWeekIDs) == 0
}

// BuildSaveRequest collects everything the change-tracking sets mark as
// unsaved. Soft-deleted persisted games become hard deletions; games that
// were never saved simply do not appear.
// INVARIANT: the state is not mutated
func (s State) BuildSaveRequest() SaveRequest {
	var req SaveRequest
	for _, w := range s.Weeks {
		if s.ChangedWeeks.Has(w.ID) || s.NewWeeks.Has(w.ID) {
			req.WeekDates = append(req.WeekDates, WeekDate{
				ID:          w.ID,
				WeekNumber:  w.WeekNumber,
				MondayDate:  w.MondayDate,
				IsOffWeek:   w.IsOffWeek,
				Title:       w.Title,
				Description: w.Description,
			})
		}
		for _, g := range w.Games {
			if g.IsDeleted {
				if !s.NewGames.Has(g.ID) {
					req.DeleteGameIDs = append(req.DeleteGameIDs, g.ID)
				}
				continue
			}
			if !s.NewGames.Has(g.ID) && !s.ChangedGames.Has(g.ID) {
				continue
			}
			sg := SaveGame{
				ID:          g.ID,
				WeekID:      w.ID,
				Week:        w.WeekNumber,
				Time:        g.Time,
				Court:       g.CourtID,
				Level:       g.LevelID,
				Team1:       g.Team1ID,
				Team2:       g.Team2ID,
				Score1:      g.Team1Score,
				Score2:      g.Team2Score,
				RefereeTeam: g.RefereeTeamID,
				RefereeName: g.RefereeName,
			}
			if g.DayOfWeek != schedule.UnsetDay {
				day := g.DayOfWeek
				sg.Day = &day
			}
			req.Games = append(req.Games, sg)
		}
	}
	req.DeleteWeekIDs = s.DeletedWeeks.IDs()
	return req
}
