// Package projections builds read models for the HTTP layer. They never
// mutate editor state.
package projections

import (
	"bytes"
	"html"
	"log/slog"

	"github.com/yuin/goldmark"

	"courtside/internal/domain/editor"
	"courtside/internal/domain/schedule"
)

// GameView is one game as the UI renders it, with ids resolved to names.
type GameView struct {
	ID          string `json:"id"`
	Day         *int   `json:"day"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	CourtID     string `json:"court_id"`
	CourtName   string `json:"court_name"`
	LevelID     string `json:"level_id"`
	LevelName   string `json:"level_name"`
	Team1ID     string `json:"team1_id"`
	Team1Name   string `json:"team1_name"`
	Team2ID     string `json:"team2_id"`
	Team2Name   string `json:"team2_name"`
	Score1      *int   `json:"score1"`
	Score2      *int   `json:"score2"`
	RefereeTeam string `json:"referee_team"`
	RefereeName string `json:"referee_name"`
	IsDeleted   bool   `json:"is_deleted"`
	IsNew       bool   `json:"is_new"`
	IsChanged   bool   `json:"is_changed"`
}

// WeekView is one week as the UI renders it. Off weeks carry rendered
// markdown and no display number.
type WeekView struct {
	ID              string     `json:"id"`
	WeekNumber      int        `json:"week_number"`
	DisplayNumber   int        `json:"display_number,omitempty"`
	MondayDate      string     `json:"monday_date"`
	IsOffWeek       bool       `json:"is_off_week"`
	Title           string     `json:"title,omitempty"`
	DescriptionHTML string     `json:"description_html,omitempty"`
	Locked          bool       `json:"locked"`
	IsNew           bool       `json:"is_new"`
	IsChanged       bool       `json:"is_changed"`
	Games           []GameView `json:"games"`
}

// LevelView is a level with its teams, for the UI's pickers.
type LevelView struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Teams []TeamOption `json:"teams"`
}

// TeamOption is one entry in a team picker.
type TeamOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CourtOption is one entry in a court picker.
type CourtOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ScheduleView is the full read model for an editing session.
type ScheduleView struct {
	Season            string        `json:"season"`
	Today             string        `json:"today"`
	HasUnsavedChanges bool          `json:"has_unsaved_changes"`
	Weeks             []WeekView    `json:"weeks"`
	Levels            []LevelView   `json:"levels"`
	Courts            []CourtOption `json:"courts"`
}

// BuildScheduleView projects an editor state into the UI read model.
// POST: the state is unchanged; deleted games are included with their flag
// so the UI can offer restore
func BuildScheduleView(st editor.State) ScheduleView {
	teamNames := map[string]string{}
	levelNames := map[string]string{}
	courtNames := map[string]string{}
	for _, l := range st.Levels {
		levelNames[l.ID] = l.Name
	}
	for _, teams := range st.TeamsByLevel {
		for _, t := range teams {
			teamNames[t.ID] = t.Name
		}
	}
	for _, c := range st.Courts {
		courtNames[c.ID] = c.Name
	}

	view := ScheduleView{
		Season:            st.Season,
		Today:             st.Today,
		HasUnsavedChanges: st.HasUnsavedChanges(),
	}

	display := schedule.DisplayNumbers(st.Weeks)
	for _, w := range st.Weeks {
		wv := WeekView{
			ID:            w.ID,
			WeekNumber:    w.WeekNumber,
			DisplayNumber: display[w.ID],
			MondayDate:    w.MondayDate,
			IsOffWeek:     w.IsOffWeek,
			Title:         w.Title,
			Locked:        st.LockedWeeks.Has(w.ID),
			IsNew:         st.NewWeeks.Has(w.ID),
			IsChanged:     st.ChangedWeeks.Has(w.ID),
			Games:         []GameView{},
		}
		if w.IsOffWeek && w.Description != "" {
			wv.DescriptionHTML = renderMarkdown(w.Description)
		}
		for _, g := range w.Games {
			gv := GameView{
				ID:          g.ID,
				Date:        g.Date,
				Time:        g.Time,
				CourtID:     g.CourtID,
				CourtName:   courtNames[g.CourtID],
				LevelID:     g.LevelID,
				LevelName:   levelNames[g.LevelID],
				Team1ID:     g.Team1ID,
				Team1Name:   teamNames[g.Team1ID],
				Team2ID:     g.Team2ID,
				Team2Name:   teamNames[g.Team2ID],
				Score1:      g.Team1Score,
				Score2:      g.Team2Score,
				RefereeTeam: g.RefereeTeamID,
				RefereeName: g.RefereeName,
				IsDeleted:   g.IsDeleted,
				IsNew:       st.NewGames.Has(g.ID),
				IsChanged:   st.ChangedGames.Has(g.ID),
			}
			if g.DayOfWeek != schedule.UnsetDay {
				day := g.DayOfWeek
				gv.Day = &day
			}
			wv.Games = append(wv.Games, gv)
		}
		view.Weeks = append(view.Weeks, wv)
	}

	for _, l := range st.Levels {
		lv := LevelView{ID: l.ID, Name: l.Name, Teams: []TeamOption{}}
		for _, t := range st.TeamsByLevel[l.ID] {
			lv.Teams = append(lv.Teams, TeamOption{ID: t.ID, Name: t.Name})
		}
		view.Levels = append(view.Levels, lv)
	}
	for _, c := range st.Courts {
		view.Courts = append(view.Courts, CourtOption{ID: c.ID, Name: c.Name})
	}
	return view
}

// renderMarkdown converts an off-week description to HTML. On a render
// failure the text is escaped and wrapped instead of dropped.
func renderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		slog.Warn("markdown_render_failed", "error", err)
		return "<p>" + html.EscapeString(src) + "</p>"
	}
	return buf.String()
}
