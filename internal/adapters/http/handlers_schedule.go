package web

import (
	"errors"
	"net/http"
	"sync"

	"courtside/internal/adapters/http/middleware"
	"courtside/internal/application/orchestrators"
	"courtside/internal/application/projections"
	"courtside/internal/domain/editor"
	"courtside/internal/domain/schedule"
)

// editorSession is one login session's in-memory editing state. Edits
// accumulate here and reach the database only on an explicit save.
type editorSession struct {
	mu     sync.Mutex
	state  editor.State
	ready  bool
	saving bool
}

// editorRegistry maps login session tokens to editor sessions.
type editorRegistry struct {
	mu      sync.Mutex
	byToken map[string]*editorSession
}

func newEditorRegistry() *editorRegistry {
	return &editorRegistry{byToken: make(map[string]*editorSession)}
}

func (r *editorRegistry) get(token string) *editorSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	es, ok := r.byToken[token]
	if !ok {
		es = &editorSession{}
		r.byToken[token] = es
	}
	return es
}

func (r *editorRegistry) drop(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byToken, token)
}

// hydrateLocked loads the season from storage into the editor session.
// PRE: es.mu is held
func hydrateLocked(r *http.Request, es *editorSession) error {
	snap, err := orchestrators.ExecuteLoadSchedule(r.Context(),
		orchestrators.LoadScheduleInput{Season: options.Season},
		orchestrators.LoadScheduleDeps{
			ScheduleStore: stores.ScheduleStore,
			LeagueStore:   stores.LeagueStore,
		})
	if err != nil {
		return err
	}
	today := timeNow().Format(schedule.DateLayout)
	es.state = editor.Hydrate(snap, today, editor.HydrateOptions{DisableLocking: options.DisableLocking})
	es.ready = true
	return nil
}

// handleSchedule handles GET /api/schedule: the session's current view,
// hydrating from storage on first access. ?reload=1 discards the session
// and rehydrates.
func handleSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	es := editors.get(sess.Token)
	es.mu.Lock()
	defer es.mu.Unlock()

	if !es.ready || r.URL.Query().Get("reload") == "1" {
		if es.saving {
			writeError(w, http.StatusConflict, "a save is in progress; retry shortly")
			return
		}
		if err := hydrateLocked(r, es); err != nil {
			internalError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, projections.BuildScheduleView(es.state))
}

// handleScheduleView handles GET /api/schedule/view: the current view
// without ever touching storage.
func handleScheduleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	es := editors.get(sess.Token)
	es.mu.Lock()
	defer es.mu.Unlock()
	if !es.ready {
		writeError(w, http.StatusConflict, "no editing session; load the schedule first")
		return
	}
	writeJSON(w, http.StatusOK, projections.BuildScheduleView(es.state))
}

// opRequest is the body of POST /api/schedule/op.
type opRequest struct {
	Op                 string `json:"op"`
	GameID             string `json:"game_id,omitempty"`
	WeekID             string `json:"week_id,omitempty"`
	AfterID            string `json:"after_id,omitempty"`
	TemplateID         string `json:"template_id,omitempty"`
	Field              string `json:"field,omitempty"`
	Value              string `json:"value,omitempty"`
	Title              string `json:"title,omitempty"`
	Description        string `json:"description,omitempty"`
	WeekNumber         int    `json:"week_number,omitempty"`
	SuppressValidation bool   `json:"suppress_validation,omitempty"`
}

// handleScheduleOp handles POST /api/schedule/op: one editing operation
// against the session state. Structural operations are admin-only;
// scorekeepers may only edit game fields, and scores only on unlocked
// weeks. While a save is in flight the session state is spoken for, so
// mutating requests are rejected rather than lost to the post-save reset.
func handleScheduleOp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req opRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	es := editors.get(sess.Token)
	es.mu.Lock()
	defer es.mu.Unlock()
	if !es.ready {
		writeError(w, http.StatusConflict, "no editing session; load the schedule first")
		return
	}
	if es.saving {
		writeError(w, http.StatusConflict, "a save is in progress; retry shortly")
		return
	}

	isAdmin := middleware.IsAdmin(r.Context())
	if !isAdmin && req.Op != "update_game" {
		writeError(w, http.StatusForbidden, "admin only")
		return
	}

	switch req.Op {
	case "update_game":
		field := editor.GameField(req.Field)
		if !isAdmin {
			if field != editor.FieldScore1 && field != editor.FieldScore2 {
				writeError(w, http.StatusForbidden, "scorekeepers may only enter scores")
				return
			}
			if weekID, found := owningWeek(es.state, req.GameID); found && es.state.LockedWeeks.Has(weekID) {
				writeError(w, http.StatusConflict, "week is locked for score entry")
				return
			}
		}
		es.state = es.state.UpdateGame(req.GameID, field, req.Value)
	case "add_game":
		es.state = es.state.AddGame(req.WeekID, schedule.Game{ID: generateID(), DayOfWeek: schedule.UnsetDay})
	case "toggle_delete_game":
		es.state = es.state.ToggleDeleteGame(req.GameID, req.WeekID)
	case "update_week":
		es.state = es.state.UpdateWeekField(req.WeekID, editor.WeekField(req.Field), req.Value, req.SuppressValidation)
	case "add_week":
		es.state = es.state.AddNewWeek(req.AfterID, generateID)
	case "add_off_week":
		es.state = es.state.AddOffWeek(req.AfterID, req.Title, req.Description, generateID)
	case "copy_week":
		es.state = es.state.CopyWeek(req.AfterID, req.TemplateID, generateID)
	case "delete_week":
		es.state = es.state.DeleteWeek(req.WeekID)
	case "toggle_lock":
		es.state = es.state.ToggleWeekLock(req.WeekNumber)
	default:
		writeError(w, http.StatusBadRequest, "unknown op")
		return
	}

	writeJSON(w, http.StatusOK, projections.BuildScheduleView(es.state))
}

// owningWeek finds the week containing a game.
func owningWeek(st editor.State, gameID string) (string, bool) {
	for _, w := range st.Weeks {
		for _, g := range w.Games {
			if g.ID == gameID {
				return w.ID, true
			}
		}
	}
	return "", false
}

// handleDateCheck handles POST /api/schedule/date-check: snaps a date to
// its week's Monday without touching any state.
func handleDateCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := requireSession(w, r); !ok {
		return
	}

	var body struct {
		Date string `json:"date"`
	}
	if err := strictDecode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	monday, adjusted, err := schedule.NearestMonday(body.Date)
	if err != nil {
		if errors.Is(err, schedule.ErrUnparseableDate) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":     monday,
		"adjusted": adjusted,
	})
}

// handleRandomFill handles POST /api/schedule/random-fill (admin only).
func handleRandomFill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	var body struct {
		WeekID  string `json:"week_id"`
		LevelID string `json:"level_id"`
		Seed    int64  `json:"seed,omitempty"`
	}
	if err := strictDecode(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	es := editors.get(sess.Token)
	es.mu.Lock()
	defer es.mu.Unlock()
	if !es.ready {
		writeError(w, http.StatusConflict, "no editing session; load the schedule first")
		return
	}
	if es.saving {
		writeError(w, http.StatusConflict, "a save is in progress; retry shortly")
		return
	}

	es.state = orchestrators.ExecuteRandomFill(orchestrators.RandomFillInput{
		State:   es.state,
		WeekID:  body.WeekID,
		LevelID: body.LevelID,
		Seed:    body.Seed,
	})
	writeJSON(w, http.StatusOK, projections.BuildScheduleView(es.state))
}

// saveResponse is the body of POST /api/schedule/save.
type saveResponse struct {
	Saved   bool     `json:"saved"`
	Message string   `json:"message,omitempty"`
	Issues  []string `json:"issues,omitempty"`
}

// handleScheduleSave handles POST /api/schedule/save (admin only). A
// second save while one is in flight is rejected rather than queued.
func handleScheduleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := requireAdmin(w, r)
	if !ok {
		return
	}

	es := editors.get(sess.Token)
	es.mu.Lock()
	if !es.ready {
		es.mu.Unlock()
		writeError(w, http.StatusConflict, "no editing session; load the schedule first")
		return
	}
	if es.saving {
		es.mu.Unlock()
		writeError(w, http.StatusConflict, "a save is already in progress")
		return
	}
	es.saving = true
	st := es.state
	es.mu.Unlock()

	result, err := orchestrators.ExecuteSaveSchedule(r.Context(),
		orchestrators.SaveScheduleInput{State: st},
		orchestrators.SaveScheduleDeps{
			ScheduleStore: stores.ScheduleStore,
			Sender:        options.Sender,
			NotifyEmail:   options.NotifyEmail,
		})

	es.mu.Lock()
	es.saving = false
	if err == nil && result.Saved {
		es.state = result.State
	}
	es.mu.Unlock()

	if err != nil {
		internalError(w, err)
		return
	}
	if !result.Saved {
		resp := saveResponse{Saved: false, Message: result.Report.Message()}
		for _, issue := range result.Report.Issues {
			resp.Issues = append(resp.Issues, issue.Describe())
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{Saved: true})
}
