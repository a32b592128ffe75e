package editor_test

import (
	"testing"

	"courtside/internal/domain/editor"
	"courtside/internal/domain/schedule"
)

// TestBuildSaveRequest collects exactly the changed subset.
func TestBuildSaveRequest(t *testing.T) {
	s := newState("2024-01-05",
		week("w1", 1, "2024-01-01",
			schedule.Game{ID: "g-untouched", DayOfWeek: schedule.Monday, Time: "18:00"},
			schedule.Game{ID: "g-edited", DayOfWeek: schedule.Tuesday},
			schedule.Game{ID: "g-doomed", DayOfWeek: schedule.Wednesday},
		),
	)

	s = s.UpdateGame("g-edited", editor.FieldScore1, "25")
	s = s.ToggleDeleteGame("g-doomed", "w1")
	s = s.AddGame("w1", schedule.Game{ID: "g-new", DayOfWeek: schedule.Friday, Time: "20:00"})
	s = s.UpdateWeekDate("w1", "2024-01-08")

	req := s.BuildSaveRequest()

	if len(req.Games) != 2 {
		t.Fatalf("len(Games) = %d, want 2 (edited + new)", len(req.Games))
	}
	byID := map[string]editor.SaveGame{}
	for _, g := range req.Games {
		byID[g.ID] = g
	}
	if _, ok := byID["g-untouched"]; ok {
		t.Error("untouched game included in save")
	}
	edited, ok := byID["g-edited"]
	if !ok || edited.Score1 == nil || *edited.Score1 != 25 {
		t.Errorf("edited game = %+v, want score1 25", edited)
	}
	if edited.WeekID != "w1" || edited.Week != 1 {
		t.Errorf("edited game week = (%s, %d), want (w1, 1)", edited.WeekID, edited.Week)
	}
	newGame, ok := byID["g-new"]
	if !ok || newGame.Day == nil || *newGame.Day != schedule.Friday {
		t.Errorf("new game = %+v, want day friday", newGame)
	}

	if len(req.DeleteGameIDs) != 1 || req.DeleteGameIDs[0] != "g-doomed" {
		t.Errorf("DeleteGameIDs = %v, want [g-doomed]", req.DeleteGameIDs)
	}
	if len(req.WeekDates) != 1 || req.WeekDates[0].ID != "w1" || req.WeekDates[0].MondayDate != "2024-01-08" {
		t.Errorf("WeekDates = %+v, want w1 @ 2024-01-08", req.WeekDates)
	}
	if len(req.DeleteWeekIDs) != 0 {
		t.Errorf("DeleteWeekIDs = %v, want empty", req.DeleteWeekIDs)
	}
}

// TestBuildSaveRequest_DeletedWeek carries the week deletion and drops
// tracking for its games.
func TestBuildSaveRequest_DeletedWeek(t *testing.T) {
	s := newState("2024-01-05",
		week("w1", 1, "2024-01-01", schedule.Game{ID: "g1", DayOfWeek: schedule.Monday}),
		week("w2", 2, "2024-01-08"),
	)

	s = s.UpdateGame("g1", editor.FieldTime, "18:00")
	s = s.DeleteWeek("w1")

	req := s.BuildSaveRequest()

	if len(req.DeleteWeekIDs) != 1 || req.DeleteWeekIDs[0] != "w1" {
		t.Errorf("DeleteWeekIDs = %v, want [w1]", req.DeleteWeekIDs)
	}
	if len(req.Games) != 0 {
		t.Errorf("Games = %+v, want none after the owning week vanished", req.Games)
	}
	// w2 shifted back so its row must be refreshed.
	if len(req.WeekDates) != 1 || req.WeekDates[0].ID != "w2" || req.WeekDates[0].MondayDate != "2024-01-01" {
		t.Errorf("WeekDates = %+v, want w2 @ 2024-01-01", req.WeekDates)
	}
}

// TestBuildSaveRequest_Empty reports nothing to do on a fresh state.
func TestBuildSaveRequest_Empty(t *testing.T) {
	s := newState("2024-01-05", week("w1", 1, "2024-01-01"))
	if req := s.BuildSaveRequest(); !req.Empty() {
		t.Errorf("fresh state produced a non-empty request: %+v", req)
	}
}

// TestBuildSaveRequest_EditSurvivesDeleteRestore: editing a persisted
// game, deleting it, then restoring it must still send the edit.
func TestBuildSaveRequest_EditSurvivesDeleteRestore(t *testing.T) {
	s := newState("2024-01-05",
		week("w1", 1, "2024-01-01", schedule.Game{ID: "g1", DayOfWeek: schedule.Tuesday, Time: "18:00"}),
	)
	s = s.UpdateGame("g1", editor.FieldTime, "19:30")
	s = s.ToggleDeleteGame("g1", "w1")
	s = s.ToggleDeleteGame("g1", "w1")

	req := s.BuildSaveRequest()
	if len(req.Games) != 1 || req.Games[0].ID != "g1" {
		t.Fatalf("Games = %+v, want the restored edit for g1", req.Games)
	}
	if got := req.Games[0].Time; got != "19:30" {
		t.Errorf("saved time = %s, want 19:30", got)
	}
	if len(req.DeleteGameIDs) != 0 {
		t.Errorf("DeleteGameIDs = %v, want empty after restore", req.DeleteGameIDs)
	}
}

// TestBuildSaveRequest_NewGameDeletedNeverLeaves verifies a game created
// and discarded in the same session reaches neither list.
func TestBuildSaveRequest_NewGameDeletedNeverLeaves(t *testing.T) {
	s := newState("2024-01-05", week("w1", 1, "2024-01-01"))
	s = s.AddGame("w1", schedule.Game{ID: "ephemeral", DayOfWeek: schedule.UnsetDay})
	s = s.ToggleDeleteGame("ephemeral", "w1")

	req := s.BuildSaveRequest()
	if len(req.Games) != 0 || len(req.DeleteGameIDs) != 0 {
		t.Errorf("request = %+v, want no trace of the ephemeral game", req)
	}
}
