package league

import (
	"context"

	domain "courtside/internal/domain/league"
)

// Store persists the league reference data: levels, teams and courts.
type Store interface {
	ListLevels(ctx context.Context) ([]domain.Level, error)
	ListTeams(ctx context.Context) ([]domain.Team, error)
	ListCourts(ctx context.Context) ([]domain.Court, error)
	SaveLevel(ctx context.Context, value domain.Level) error
	SaveTeam(ctx context.Context, value domain.Team) error
	SaveCourt(ctx context.Context, value domain.Court) error
	CountLevels(ctx context.Context) (int, error)
}
