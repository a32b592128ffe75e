package orchestrators

import (
	"context"

	"courtside/internal/domain/editor"
	"courtside/internal/domain/league"
	"courtside/internal/domain/schedule"
)

// ScheduleStoreForLoad defines the store interface needed by LoadSchedule.
type ScheduleStoreForLoad interface {
	LoadSeason(ctx context.Context, season string) ([]schedule.Week, error)
}

// LeagueStoreForLoad defines the store interface needed by LoadSchedule.
type LeagueStoreForLoad interface {
	ListLevels(ctx context.Context) ([]league.Level, error)
	ListTeams(ctx context.Context) ([]league.Team, error)
	ListCourts(ctx context.Context) ([]league.Court, error)
}

// LoadScheduleInput carries input for the load orchestrator.
type LoadScheduleInput struct {
	Season string
}

// LoadScheduleDeps holds dependencies for LoadSchedule.
type LoadScheduleDeps struct {
	ScheduleStore ScheduleStoreForLoad
	LeagueStore   LeagueStoreForLoad
}

// ExecuteLoadSchedule assembles the snapshot an editing session hydrates
// from: the season's weeks keyed by stored number plus the league
// reference data, with teams grouped under their level.
// PRE: season is non-empty
// POST: Returns a snapshot ready for editor.Hydrate
func ExecuteLoadSchedule(ctx context.Context, input LoadScheduleInput, deps LoadScheduleDeps) (editor.LoadSnapshot, error) {
	weeks, err := deps.ScheduleStore.LoadSeason(ctx, input.Season)
	if err != nil {
		return editor.LoadSnapshot{}, err
	}
	levels, err := deps.LeagueStore.ListLevels(ctx)
	if err != nil {
		return editor.LoadSnapshot{}, err
	}
	teams, err := deps.LeagueStore.ListTeams(ctx)
	if err != nil {
		return editor.LoadSnapshot{}, err
	}
	courts, err := deps.LeagueStore.ListCourts(ctx)
	if err != nil {
		return editor.LoadSnapshot{}, err
	}

	snap := editor.LoadSnapshot{
		Season:       input.Season,
		Weeks:        make(map[int]editor.WeekPayload, len(weeks)),
		Levels:       levels,
		TeamsByLevel: make(map[string][]league.Team),
		Courts:       courts,
	}
	for _, t := range teams {
		snap.TeamsByLevel[t.LevelID] = append(snap.TeamsByLevel[t.LevelID], t)
	}
	for _, w := range weeks {
		p := editor.WeekPayload{
			ID:          w.ID,
			MondayDate:  w.MondayDate,
			IsOffWeek:   w.IsOffWeek,
			Title:       w.Title,
			Description: w.Description,
		}
		for _, g := range w.Games {
			gp := editor.GamePayload{
				ID:          g.ID,
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
				gp.Day = &day
			}
			p.Games = append(p.Games, gp)
		}
		snap.Weeks[w.WeekNumber] = p
	}
	return snap, nil
}
