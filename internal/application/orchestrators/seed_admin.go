package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"courtside/internal/domain/account"
)

// AccountStoreForSeed defines the store interface needed by SeedAdmin.
type AccountStoreForSeed interface {
	Count(ctx context.Context) (int, error)
	Save(ctx context.Context, a account.Account) error
}

// SeedAdminInput carries the bootstrap credentials.
type SeedAdminInput struct {
	Email    string
	Password string
}

// SeedAdminDeps holds dependencies for SeedAdmin.
type SeedAdminDeps struct {
	AccountStore AccountStoreForSeed
}

// ExecuteSeedAdmin creates the first admin account when no accounts
// exist. Skipped entirely when credentials are not configured.
// POST: at most one account is created, ever
func ExecuteSeedAdmin(ctx context.Context, input SeedAdminInput, deps SeedAdminDeps) error {
	if input.Email == "" || input.Password == "" {
		return nil
	}

	n, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil // Already seeded
	}

	acct := account.Account{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Role:      account.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := acct.SetPassword(input.Password); err != nil {
		return err
	}
	if err := acct.Validate(); err != nil {
		return err
	}
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return err
	}

	slog.Info("admin_seeded", "email", input.Email)
	return nil
}
