package schedule

import (
	"context"

	"courtside/internal/domain/editor"
	domain "courtside/internal/domain/schedule"
)

// Store persists a season's weeks and games.
type Store interface {
	LoadSeason(ctx context.Context, season string) ([]domain.Week, error)
	ApplySave(ctx context.Context, season string, req editor.SaveRequest) error
	CountWeeks(ctx context.Context, season string) (int, error)
}
