package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"courtside/internal/adapters/storage"
	"courtside/internal/domain/editor"
	domain "courtside/internal/domain/schedule"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new schedule store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// LoadSeason returns the season's weeks ordered by stored week number, each
// with its games attached. Games keep whatever day/score values the last
// save wrote; nulls map to unset.
// PRE: season is non-empty
// POST: weeks are ordered by week_number ascending
func (s *SQLiteStore) LoadSeason(ctx context.Context, season string) ([]domain.Week, error) {
	query := `SELECT id, week_number, monday_date, is_off_week, title, description
		FROM week WHERE season = ? ORDER BY week_number`
	rows, err := s.db.QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load weeks: %w", err)
	}
	defer rows.Close()

	var weeks []domain.Week
	index := map[string]int{}
	for rows.Next() {
		var w domain.Week
		var off int
		if err := rows.Scan(&w.ID, &w.WeekNumber, &w.MondayDate, &off, &w.Title, &w.Description); err != nil {
			return nil, err
		}
		w.IsOffWeek = off != 0
		index[w.ID] = len(weeks)
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	gameQuery := `SELECT g.id, g.week_id, g.day, g.time, g.court_id, g.level_id,
			g.team1_id, g.team2_id, g.team1_score, g.team2_score,
			g.referee_team_id, g.referee_name
		FROM game g JOIN week w ON w.id = g.week_id
		WHERE w.season = ? ORDER BY g.day, g.time, g.id`
	gameRows, err := s.db.QueryContext(ctx, gameQuery, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	defer gameRows.Close()

	for gameRows.Next() {
		var g domain.Game
		var weekID string
		var day, score1, score2 sql.NullInt64
		err := gameRows.Scan(&g.ID, &weekID, &day, &g.Time, &g.CourtID, &g.LevelID,
			&g.Team1ID, &g.Team2ID, &score1, &score2, &g.RefereeTeamID, &g.RefereeName)
		if err != nil {
			return nil, err
		}
		g.DayOfWeek = domain.UnsetDay
		if day.Valid {
			g.DayOfWeek = int(day.Int64)
		}
		if score1.Valid {
			v := int(score1.Int64)
			g.Team1Score = &v
		}
		if score2.Valid {
			v := int(score2.Int64)
			g.Team2Score = &v
		}
		if i, ok := index[weekID]; ok {
			weeks[i].Games = append(weeks[i].Games, g)
		}
	}
	return weeks, gameRows.Err()
}

// ApplySave applies a save request in a single transaction: week rows are
// upserted before games so new games always find their week, deletions run
// last and week deletion cascades to the week's games.
// PRE: req was built against the same season this store loads
// POST: either every change in req is persisted or none are
func (s *SQLiteStore) ApplySave(ctx context.Context, season string, req editor.SaveRequest) error {
	if req.Empty() {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	weekQuery := `INSERT INTO week (id, season, week_number, monday_date, is_off_week, title, description)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			week_number = excluded.week_number,
			monday_date = excluded.monday_date,
			is_off_week = excluded.is_off_week,
			title = excluded.title,
			description = excluded.description`
	for _, w := range req.WeekDates {
		off := 0
		if w.IsOffWeek {
			off = 1
		}
		if _, err := tx.ExecContext(ctx, weekQuery, w.ID, season, w.WeekNumber, w.MondayDate, off, w.Title, w.Description); err != nil {
			return fmt.Errorf("failed to save week %s: %w", w.ID, err)
		}
	}

	gameQuery := `INSERT INTO game (id, week_id, day, time, court_id, level_id,
			team1_id, team2_id, team1_score, team2_score, referee_team_id, referee_name)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			week_id = excluded.week_id,
			day = excluded.day,
			time = excluded.time,
			court_id = excluded.court_id,
			level_id = excluded.level_id,
			team1_id = excluded.team1_id,
			team2_id = excluded.team2_id,
			team1_score = excluded.team1_score,
			team2_score = excluded.team2_score,
			referee_team_id = excluded.referee_team_id,
			referee_name = excluded.referee_name`
	for _, g := range req.Games {
		_, err := tx.ExecContext(ctx, gameQuery, g.ID, g.WeekID, g.Day, g.Time, g.Court, g.Level,
			g.Team1, g.Team2, g.Score1, g.Score2, g.RefereeTeam, g.RefereeName)
		if err != nil {
			return fmt.Errorf("failed to save game %s: %w", g.ID, err)
		}
	}

	for _, id := range req.DeleteGameIDs {
		if _, err := tx.ExecContext(ctx, "DELETE FROM game WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete game %s: %w", id, err)
		}
	}
	for _, id := range req.DeleteWeekIDs {
		if _, err := tx.ExecContext(ctx, "DELETE FROM game WHERE week_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete games of week %s: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM week WHERE id = ?", id); err != nil {
			return fmt.Errorf("failed to delete week %s: %w", id, err)
		}
	}

	return tx.Commit()
}

// CountWeeks returns the number of weeks stored for a season.
func (s *SQLiteStore) CountWeeks(ctx context.Context, season string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM week WHERE season = ?", season).Scan(&n)
	return n, err
}
