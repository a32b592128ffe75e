package web

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"courtside/internal/adapters/storage"
	accountStore "courtside/internal/adapters/storage/account"
	leagueStore "courtside/internal/adapters/storage/league"
	scheduleStore "courtside/internal/adapters/storage/schedule"
	"courtside/internal/application/projections"
	accountDomain "courtside/internal/domain/account"
	"courtside/internal/domain/editor"
	leagueDomain "courtside/internal/domain/league"
	"courtside/internal/domain/schedule"
)

func intp(n int) *int { return &n }

// newTestServer wires the full stack against an in-memory database and
// seeds a small league: w1 (scored, in the past) and w2 (unscored, next
// week). With today fixed mid-w1, the lock policy locks w1 and leaves w2
// open.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}

	ctx := context.Background()
	accounts := accountStore.NewSQLiteStore(db)
	leagues := leagueStore.NewSQLiteStore(db)
	schedules := scheduleStore.NewSQLiteStore(db)

	for _, seed := range []struct{ email, role string }{
		{"admin@league.test", accountDomain.RoleAdmin},
		{"scores@league.test", accountDomain.RoleScorekeeper},
	} {
		a := accountDomain.Account{ID: seed.email, Email: seed.email, Role: seed.role, CreatedAt: time.Now()}
		if err := a.SetPassword("a test password!"); err != nil {
			t.Fatalf("SetPassword: %v", err)
		}
		if err := accounts.Save(ctx, a); err != nil {
			t.Fatalf("save account: %v", err)
		}
	}

	if err := leagues.SaveLevel(ctx, leagueDomain.Level{ID: "l1", Name: "A Grade"}); err != nil {
		t.Fatalf("save level: %v", err)
	}
	for _, tm := range []leagueDomain.Team{
		{ID: "t1", LevelID: "l1", Name: "Blockbusters"},
		{ID: "t2", LevelID: "l1", Name: "Net Gains"},
	} {
		if err := leagues.SaveTeam(ctx, tm); err != nil {
			t.Fatalf("save team: %v", err)
		}
	}
	if err := leagues.SaveCourt(ctx, leagueDomain.Court{ID: "c1", Name: "Court 1"}); err != nil {
		t.Fatalf("save court: %v", err)
	}

	day := schedule.Tuesday
	seed := editor.SaveRequest{
		WeekDates: []editor.WeekDate{
			{ID: "w1", WeekNumber: 1, MondayDate: "2026-03-02"},
			{ID: "w2", WeekNumber: 2, MondayDate: "2026-03-09"},
		},
		Games: []editor.SaveGame{
			{ID: "g1", WeekID: "w1", Week: 1, Day: &day, Time: "18:00", Court: "c1",
				Level: "l1", Team1: "t1", Team2: "t2", Score1: intp(25), Score2: intp(19)},
			{ID: "g2", WeekID: "w2", Week: 2, Day: &day, Time: "18:00", Court: "c1",
				Level: "l1", Team1: "t1", Team2: "t2"},
		},
	}
	if err := schedules.ApplySave(ctx, "Winter 2026", seed); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}

	timeNow = func() time.Time { return time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = time.Now })

	return NewMux(t.TempDir(), &Stores{
		AccountStore:  accounts,
		LeagueStore:   leagues,
		ScheduleStore: schedules,
	}, Options{Season: "Winter 2026", RateLimitPerSecond: 1000})
}

// doJSON performs a JSON request with the session cookie attached.
func doJSON(t *testing.T, h http.Handler, method, path, cookie string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// login authenticates and returns the session cookie.
func login(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/login", "", map[string]string{
		"email": email, "password": "a test password!",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "courtside_session" {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) projections.ScheduleView {
	t.Helper()
	var view projections.ScheduleView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v (%s)", err, rec.Body.String())
	}
	return view
}

// TestLoginRequired rejects anonymous access to the editor.
func TestLoginRequired(t *testing.T) {
	h := newTestServer(t)
	if rec := doJSON(t, h, http.MethodGet, "/api/schedule", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous load = %d, want 401", rec.Code)
	}
}

// TestLoginBadPassword gets a generic 401.
func TestLoginBadPassword(t *testing.T) {
	h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/api/login", "", map[string]string{
		"email": "admin@league.test", "password": "wrong wrong wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login = %d, want 401", rec.Code)
	}
}

// TestLoadSchedule hydrates a session and returns the projected view.
func TestLoadSchedule(t *testing.T) {
	h := newTestServer(t)
	cookie := login(t, h, "admin@league.test")

	rec := doJSON(t, h, http.MethodGet, "/api/schedule", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("load = %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	if view.Season != "Winter 2026" || len(view.Weeks) != 2 {
		t.Fatalf("view = %s with %d weeks, want Winter 2026 with 2", view.Season, len(view.Weeks))
	}
	if !view.Weeks[0].Locked || view.Weeks[1].Locked {
		t.Errorf("locks = %v/%v, want w1 locked and w2 open", view.Weeks[0].Locked, view.Weeks[1].Locked)
	}
	if view.Weeks[0].Games[0].Team1Name != "Blockbusters" {
		t.Errorf("team name = %q", view.Weeks[0].Games[0].Team1Name)
	}
	if view.HasUnsavedChanges {
		t.Error("fresh load has unsaved changes")
	}
}

// TestEditAndSave runs an edit through the session and persists it.
func TestEditAndSave(t *testing.T) {
	h := newTestServer(t)
	cookie := login(t, h, "admin@league.test")
	doJSON(t, h, http.MethodGet, "/api/schedule", cookie, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "update_game", GameID: "g2", Field: "time", Value: "20:15",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("op = %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	if !view.HasUnsavedChanges || view.Weeks[1].Games[0].Time != "20:15" {
		t.Fatalf("edit not reflected: %+v", view.Weeks[1].Games[0])
	}

	rec = doJSON(t, h, http.MethodPost, "/api/schedule/save", cookie, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("save = %d: %s", rec.Code, rec.Body.String())
	}

	// A reload hydrates from the database, proving persistence.
	rec = doJSON(t, h, http.MethodGet, "/api/schedule?reload=1", cookie, nil)
	view = decodeView(t, rec)
	if view.Weeks[1].Games[0].Time != "20:15" {
		t.Errorf("persisted time = %q, want 20:15", view.Weeks[1].Games[0].Time)
	}
	if view.HasUnsavedChanges {
		t.Error("reloaded session has unsaved changes")
	}
}

// TestSaveBlockedByValidation returns the aggregate report and keeps the
// database untouched.
func TestSaveBlockedByValidation(t *testing.T) {
	h := newTestServer(t)
	cookie := login(t, h, "admin@league.test")
	doJSON(t, h, http.MethodGet, "/api/schedule", cookie, nil)

	// A freshly added game is missing everything.
	rec := doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "add_game", WeekID: "w2",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("add_game = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/schedule/save", cookie, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("save = %d, want 422", rec.Code)
	}
	var resp saveResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Saved || len(resp.Issues) == 0 {
		t.Errorf("response = %+v, want blocked with issues", resp)
	}
}

// TestWeekStructureOps inserts and deletes weeks through the API.
func TestWeekStructureOps(t *testing.T) {
	h := newTestServer(t)
	cookie := login(t, h, "admin@league.test")
	doJSON(t, h, http.MethodGet, "/api/schedule", cookie, nil)

	rec := doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "add_week", AfterID: "w1",
	})
	view := decodeView(t, rec)
	if len(view.Weeks) != 3 {
		t.Fatalf("weeks = %d after insert, want 3", len(view.Weeks))
	}
	if view.Weeks[1].MondayDate != "2026-03-09" || view.Weeks[2].MondayDate != "2026-03-16" {
		t.Errorf("dates = %s, %s; want inserted week to adopt 2026-03-09 and shift w2",
			view.Weeks[1].MondayDate, view.Weeks[2].MondayDate)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "delete_week", WeekID: view.Weeks[1].ID,
	})
	view = decodeView(t, rec)
	if len(view.Weeks) != 2 || view.Weeks[1].MondayDate != "2026-03-09" {
		t.Errorf("delete did not restore the layout: %+v", view.Weeks)
	}
}

// TestDateCheck snaps to Monday and rejects garbage.
func TestDateCheck(t *testing.T) {
	h := newTestServer(t)
	cookie := login(t, h, "admin@league.test")

	rec := doJSON(t, h, http.MethodPost, "/api/schedule/date-check", cookie, map[string]string{"date": "2026-03-11"})
	if rec.Code != http.StatusOK {
		t.Fatalf("date-check = %d", rec.Code)
	}
	var resp struct {
		Date     string `json:"date"`
		Adjusted bool   `json:"adjusted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Date != "2026-03-09" || !resp.Adjusted {
		t.Errorf("resp = %+v, want 2026-03-09 adjusted", resp)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/schedule/date-check", cookie, map[string]string{"date": "soonish"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("garbage date = %d, want 422", rec.Code)
	}
}

// TestScorekeeperPermissions: scores on open weeks only, nothing else.
func TestScorekeeperPermissions(t *testing.T) {
	h := newTestServer(t)
	cookie := login(t, h, "scores@league.test")
	doJSON(t, h, http.MethodGet, "/api/schedule", cookie, nil)

	// Score on the open week: allowed.
	rec := doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "update_game", GameID: "g2", Field: "score1", Value: "21",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("open-week score = %d: %s", rec.Code, rec.Body.String())
	}

	// Score on the locked week: blocked.
	rec = doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "update_game", GameID: "g1", Field: "score1", Value: "30",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("locked-week score = %d, want 409", rec.Code)
	}

	// Non-score field: forbidden.
	rec = doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "update_game", GameID: "g2", Field: "time", Value: "21:00",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("field edit = %d, want 403", rec.Code)
	}

	// Structural op: forbidden.
	rec = doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "add_week", AfterID: "w1",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("add_week = %d, want 403", rec.Code)
	}

	// Saving is an admin call.
	rec = doJSON(t, h, http.MethodPost, "/api/schedule/save", cookie, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("save = %d, want 403", rec.Code)
	}
}

// TestRandomFillEndpoint fills the open slots of a level.
func TestRandomFillEndpoint(t *testing.T) {
	h := newTestServer(t)
	cookie := login(t, h, "admin@league.test")
	doJSON(t, h, http.MethodGet, "/api/schedule", cookie, nil)

	// Clear w2's matchup so the fill has a slot to take.
	doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "update_game", GameID: "g2", Field: "team1", Value: "",
	})
	doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "update_game", GameID: "g2", Field: "team2", Value: "",
	})

	rec := doJSON(t, h, http.MethodPost, "/api/schedule/random-fill", cookie, map[string]any{
		"week_id": "w2", "level_id": "l1", "seed": 7,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("random-fill = %d: %s", rec.Code, rec.Body.String())
	}
	view := decodeView(t, rec)
	g := view.Weeks[1].Games[0]
	if g.Team1ID == "" || g.Team2ID == "" || g.Team1ID == g.Team2ID {
		t.Errorf("fill result = %+v, want two distinct teams", g)
	}
}

// TestOpRejectedDuringSave: while a save is in flight the session state
// is spoken for, so edits get a 409 instead of being lost to the
// post-save reset.
func TestOpRejectedDuringSave(t *testing.T) {
	h := newTestServer(t)
	cookie := login(t, h, "admin@league.test")
	doJSON(t, h, http.MethodGet, "/api/schedule", cookie, nil)

	token := strings.TrimPrefix(cookie, "courtside_session=")
	es := editors.get(token)
	es.mu.Lock()
	es.saving = true
	es.mu.Unlock()

	rec := doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "update_game", GameID: "g2", Field: "time", Value: "20:15",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("op during save = %d, want 409", rec.Code)
	}
	if rec = doJSON(t, h, http.MethodGet, "/api/schedule?reload=1", cookie, nil); rec.Code != http.StatusConflict {
		t.Errorf("reload during save = %d, want 409", rec.Code)
	}

	es.mu.Lock()
	es.saving = false
	es.mu.Unlock()

	if rec = doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "update_game", GameID: "g2", Field: "time", Value: "20:15",
	}); rec.Code != http.StatusOK {
		t.Errorf("op after save = %d: %s", rec.Code, rec.Body.String())
	}
}

// TestLogoutDropsEditorSession: changes do not survive a logout.
func TestLogoutDropsEditorSession(t *testing.T) {
	h := newTestServer(t)
	cookie := login(t, h, "admin@league.test")
	doJSON(t, h, http.MethodGet, "/api/schedule", cookie, nil)
	doJSON(t, h, http.MethodPost, "/api/schedule/op", cookie, opRequest{
		Op: "update_game", GameID: "g2", Field: "time", Value: "23:00",
	})

	if rec := doJSON(t, h, http.MethodPost, "/api/logout", cookie, nil); rec.Code != http.StatusOK {
		t.Fatalf("logout = %d", rec.Code)
	}

	cookie = login(t, h, "admin@league.test")
	rec := doJSON(t, h, http.MethodGet, "/api/schedule", cookie, nil)
	view := decodeView(t, rec)
	if view.Weeks[1].Games[0].Time == "23:00" {
		t.Error("unsaved edit survived logout")
	}
}
