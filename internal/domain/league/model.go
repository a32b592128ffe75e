package league

import (
	"errors"
	"strings"
)

// Domain errors
var (
	ErrEmptyLevelName = errors.New("level name cannot be empty")
	ErrEmptyTeamName  = errors.New("team name cannot be empty")
	ErrEmptyLevelID   = errors.New("team must belong to a level")
	ErrEmptyCourtName = errors.New("court name cannot be empty")
)

// Level is one division of the league (e.g. "A Grade"). Reference data:
// the schedule editor reads levels but never mutates them.
type Level struct {
	ID           string
	Name         string
	DisplayOrder int
}

// Validate checks if the Level has valid data.
// PRE: Level struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Level) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyLevelName
	}
	return nil
}

// Team plays within exactly one level.
type Team struct {
	ID      string
	LevelID string
	Name    string
}

// Validate checks if the Team has valid data.
// PRE: Team struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Team) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTeamName
	}
	if strings.TrimSpace(t.LevelID) == "" {
		return ErrEmptyLevelID
	}
	return nil
}

// Court is a playable surface games are assigned to.
type Court struct {
	ID   string
	Name string
}

// Validate checks if the Court has valid data.
func (c *Court) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyCourtName
	}
	return nil
}
