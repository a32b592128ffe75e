package orchestrators

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"courtside/internal/domain/editor"
	"courtside/internal/domain/league"
	"courtside/internal/domain/schedule"
)

//go:embed seed_league.yaml
var seedLeagueYAML []byte

// LeagueStoreForSeed defines the store interface needed by SeedLeague.
type LeagueStoreForSeed interface {
	CountLevels(ctx context.Context) (int, error)
	SaveLevel(ctx context.Context, value league.Level) error
	SaveTeam(ctx context.Context, value league.Team) error
	SaveCourt(ctx context.Context, value league.Court) error
}

// ScheduleStoreForSeed defines the store interface needed by SeedLeague.
type ScheduleStoreForSeed interface {
	CountWeeks(ctx context.Context, season string) (int, error)
	ApplySave(ctx context.Context, season string, req editor.SaveRequest) error
}

// SeedLeagueDeps holds dependencies for SeedLeague.
type SeedLeagueDeps struct {
	LeagueStore   LeagueStoreForSeed
	ScheduleStore ScheduleStoreForSeed
}

// seedFixture is the shape of the embedded seed file.
type seedFixture struct {
	Season        string   `yaml:"season"`
	StartMonday   string   `yaml:"start_monday"`
	Weeks         int      `yaml:"weeks"`
	GamesPerLevel int      `yaml:"games_per_level"`
	Courts        []string `yaml:"courts"`
	Times         []string `yaml:"times"`
	Levels        []struct {
		Name  string   `yaml:"name"`
		Teams []string `yaml:"teams"`
	} `yaml:"levels"`
}

// ExecuteSeedLeague creates the default levels, teams, courts and an
// initial season of empty game slots if the database is empty. Runs on
// every startup; an already-seeded league is left alone.
// POST: returns the seeded season name, even when nothing was created
func ExecuteSeedLeague(ctx context.Context, deps SeedLeagueDeps) (string, error) {
	var fix seedFixture
	if err := yaml.Unmarshal(seedLeagueYAML, &fix); err != nil {
		return "", fmt.Errorf("failed to parse seed fixture: %w", err)
	}

	n, err := deps.LeagueStore.CountLevels(ctx)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return fix.Season, nil // Already seeded
	}

	levelIDs := make([]string, 0, len(fix.Levels))
	for order, l := range fix.Levels {
		levelID := uuid.New().String()
		levelIDs = append(levelIDs, levelID)
		if err := deps.LeagueStore.SaveLevel(ctx, league.Level{ID: levelID, Name: l.Name, DisplayOrder: order}); err != nil {
			return "", err
		}
		for _, name := range l.Teams {
			team := league.Team{ID: uuid.New().String(), LevelID: levelID, Name: name}
			if err := deps.LeagueStore.SaveTeam(ctx, team); err != nil {
				return "", err
			}
		}
	}
	courtIDs := make([]string, 0, len(fix.Courts))
	for _, name := range fix.Courts {
		court := league.Court{ID: uuid.New().String(), Name: name}
		courtIDs = append(courtIDs, court.ID)
		if err := deps.LeagueStore.SaveCourt(ctx, court); err != nil {
			return "", err
		}
	}

	existing, err := deps.ScheduleStore.CountWeeks(ctx, fix.Season)
	if err != nil {
		return "", err
	}
	if existing > 0 {
		return fix.Season, nil
	}

	req := buildSeedSeason(fix, levelIDs, courtIDs)
	if err := deps.ScheduleStore.ApplySave(ctx, fix.Season, req); err != nil {
		return "", fmt.Errorf("failed to seed season: %w", err)
	}

	slog.Info("league_seeded", "season", fix.Season, "weeks", fix.Weeks, "levels", len(fix.Levels))
	return fix.Season, nil
}

// buildSeedSeason lays out empty game slots: per week, per level, the
// configured number of games rotating over courts and time slots.
func buildSeedSeason(fix seedFixture, levelIDs, courtIDs []string) editor.SaveRequest {
	var req editor.SaveRequest
	for i := 0; i < fix.Weeks; i++ {
		weekID := uuid.New().String()
		req.WeekDates = append(req.WeekDates, editor.WeekDate{
			ID:         weekID,
			WeekNumber: i + 1,
			MondayDate: schedule.AddDays(fix.StartMonday, i*7),
		})
		slot := 0
		for _, levelID := range levelIDs {
			for g := 0; g < fix.GamesPerLevel; g++ {
				day := schedule.Wednesday
				sg := editor.SaveGame{
					ID:     uuid.New().String(),
					WeekID: weekID,
					Week:   i + 1,
					Day:    &day,
					Level:  levelID,
				}
				if len(courtIDs) > 0 {
					sg.Court = courtIDs[slot%len(courtIDs)]
				}
				if len(fix.Times) > 0 {
					sg.Time = fix.Times[(slot/max(len(courtIDs), 1))%len(fix.Times)]
				}
				slot++
				req.Games = append(req.Games, sg)
			}
		}
	}
	return req
}
