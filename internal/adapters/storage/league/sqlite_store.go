package league

import (
	"context"
	"fmt"

	"courtside/internal/adapters/storage"
	domain "courtside/internal/domain/league"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new league store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ListLevels returns all levels ordered for display.
func (s *SQLiteStore) ListLevels(ctx context.Context) ([]domain.Level, error) {
	query := "SELECT id, name, display_order FROM level ORDER BY display_order, name"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	var out []domain.Level
	for rows.Next() {
		var entity domain.Level
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.DisplayOrder); err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

// ListTeams returns all teams ordered by name.
func (s *SQLiteStore) ListTeams(ctx context.Context) ([]domain.Team, error) {
	query := "SELECT id, level_id, name FROM team ORDER BY name"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var out []domain.Team
	for rows.Next() {
		var entity domain.Team
		if err := rows.Scan(&entity.ID, &entity.LevelID, &entity.Name); err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

// ListCourts returns all courts ordered by name.
func (s *SQLiteStore) ListCourts(ctx context.Context) ([]domain.Court, error) {
	query := "SELECT id, name FROM court ORDER BY name"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	defer rows.Close()

	var out []domain.Court
	for rows.Next() {
		var entity domain.Court
		if err := rows.Scan(&entity.ID, &entity.Name); err != nil {
			return nil, err
		}
		out = append(out, entity)
	}
	return out, rows.Err()
}

// SaveLevel persists a Level (insert or update).
func (s *SQLiteStore) SaveLevel(ctx context.Context, entity domain.Level) error {
	query := `INSERT INTO level (id, name, display_order) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, display_order = excluded.display_order`
	_, err := s.db.ExecContext(ctx, query, entity.ID, entity.Name, entity.DisplayOrder)
	if err != nil {
		return fmt.Errorf("failed to save level: %w", err)
	}
	return nil
}

// SaveTeam persists a Team (insert or update).
func (s *SQLiteStore) SaveTeam(ctx context.Context, entity domain.Team) error {
	query := `INSERT INTO team (id, level_id, name) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET level_id = excluded.level_id, name = excluded.name`
	_, err := s.db.ExecContext(ctx, query, entity.ID, entity.LevelID, entity.Name)
	if err != nil {
		return fmt.Errorf("failed to save team: %w", err)
	}
	return nil
}

// SaveCourt persists a Court (insert or update).
func (s *SQLiteStore) SaveCourt(ctx context.Context, entity domain.Court) error {
	query := `INSERT INTO court (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`
	_, err := s.db.ExecContext(ctx, query, entity.ID, entity.Name)
	if err != nil {
		return fmt.Errorf("failed to save court: %w", err)
	}
	return nil
}

// CountLevels returns the number of levels (used to detect an empty league).
func (s *SQLiteStore) CountLevels(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM level").Scan(&n)
	return n, err
}
