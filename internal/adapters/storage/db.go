package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT
	);

	CREATE TABLE IF NOT EXISTS level (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		display_order INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS team (
		id TEXT PRIMARY KEY,
		level_id TEXT NOT NULL,
		name TEXT NOT NULL,
		FOREIGN KEY (level_id) REFERENCES level(id)
	);

	CREATE TABLE IF NOT EXISTS court (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS week (
		id TEXT PRIMARY KEY,
		season TEXT NOT NULL,
		week_number INTEGER NOT NULL,
		monday_date TEXT NOT NULL,
		is_off_week INTEGER NOT NULL DEFAULT 0,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS game (
		id TEXT PRIMARY KEY,
		week_id TEXT NOT NULL,
		day INTEGER,
		time TEXT NOT NULL DEFAULT '',
		court_id TEXT NOT NULL DEFAULT '',
		level_id TEXT NOT NULL DEFAULT '',
		team1_id TEXT NOT NULL DEFAULT '',
		team2_id TEXT NOT NULL DEFAULT '',
		team1_score INTEGER,
		team2_score INTEGER,
		referee_team_id TEXT NOT NULL DEFAULT '',
		referee_name TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (week_id) REFERENCES week(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_week_season ON week(season, week_number);
	CREATE INDEX IF NOT EXISTS idx_game_week ON game(week_id);
	CREATE INDEX IF NOT EXISTS idx_team_level ON team(level_id);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
