package orchestrators

import (
	"log/slog"
	"math/rand"

	"courtside/internal/domain/editor"
)

// RandomFillInput carries input for the random-fill orchestrator.
type RandomFillInput struct {
	State   editor.State
	WeekID  string
	LevelID string
	Seed    int64 // 0 means non-deterministic
}

// ExecuteRandomFill assigns random matchups to every open slot in one
// week and level: games that are not deleted and have neither team set.
// Each team plays at most once; leftover slots stay open when the level
// runs out of teams. All edits flow through the editor operations so
// change tracking stays correct.
// POST: the input state is unchanged; unknown week or level is a no-op
func ExecuteRandomFill(input RandomFillInput) editor.State {
	st := input.State

	var slots []string
	for _, w := range st.Weeks {
		if w.ID != input.WeekID || w.IsOffWeek {
			continue
		}
		for _, g := range w.Games {
			if g.IsDeleted || g.LevelID != input.LevelID {
				continue
			}
			if g.Team1ID == "" && g.Team2ID == "" {
				slots = append(slots, g.ID)
			}
		}
	}
	teams := st.TeamsByLevel[input.LevelID]
	if len(slots) == 0 || len(teams) < 2 {
		return st
	}

	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	rng := rand.New(rand.NewSource(input.Seed))
	if input.Seed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	filled := 0
	for _, gameID := range slots {
		if len(ids) < 2 {
			break
		}
		st = st.UpdateGame(gameID, editor.FieldTeam1, ids[0])
		st = st.UpdateGame(gameID, editor.FieldTeam2, ids[1])
		ids = ids[2:]
		filled++
	}

	slog.Info("random_fill", "week", input.WeekID, "level", input.LevelID, "filled", filled)
	return st
}
