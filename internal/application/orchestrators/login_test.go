package orchestrators

import (
	"context"
	"errors"
	"testing"

	"courtside/internal/domain/account"
)

// mockAccountStore implements AccountStoreForLogin and AccountStoreForSeed.
type mockAccountStore struct {
	accounts map[string]account.Account // keyed by email
}

func newMockAccountStore() *mockAccountStore {
	return &mockAccountStore{accounts: make(map[string]account.Account)}
}

func (m *mockAccountStore) GetByEmail(_ context.Context, email string) (account.Account, error) {
	a, ok := m.accounts[email]
	if !ok {
		return account.Account{}, errors.New("not found")
	}
	return a, nil
}

func (m *mockAccountStore) Save(_ context.Context, a account.Account) error {
	m.accounts[a.Email] = a
	return nil
}

func (m *mockAccountStore) Count(_ context.Context) (int, error) {
	return len(m.accounts), nil
}

func seedAccount(t *testing.T, store *mockAccountStore, email, password string) {
	t.Helper()
	a := account.Account{ID: "acct-1", Email: email, Role: account.RoleAdmin}
	if err := a.SetPassword(password); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	store.accounts[email] = a
}

// TestExecuteLogin_Success tests a valid login.
func TestExecuteLogin_Success(t *testing.T) {
	store := newMockAccountStore()
	seedAccount(t, store, "admin@league.nz", "correct horse battery")

	res, err := ExecuteLogin(context.Background(),
		LoginInput{Email: "admin@league.nz", Password: "correct horse battery"},
		LoginDeps{AccountStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AccountID != "acct-1" || res.Role != account.RoleAdmin {
		t.Errorf("result = %+v, want acct-1 admin", res)
	}
}

// TestExecuteLogin_WrongPassword records the failure and stays generic.
func TestExecuteLogin_WrongPassword(t *testing.T) {
	store := newMockAccountStore()
	seedAccount(t, store, "admin@league.nz", "correct horse battery")

	_, err := ExecuteLogin(context.Background(),
		LoginInput{Email: "admin@league.nz", Password: "nope nope nope"},
		LoginDeps{AccountStore: store})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
	if got := store.accounts["admin@league.nz"].FailedLogins; got != 1 {
		t.Errorf("FailedLogins = %d, want 1", got)
	}
}

// TestExecuteLogin_Locked blocks a locked account before checking the password.
func TestExecuteLogin_Locked(t *testing.T) {
	store := newMockAccountStore()
	seedAccount(t, store, "admin@league.nz", "correct horse battery")
	a := store.accounts["admin@league.nz"]
	for i := 0; i < account.MaxFailedLogins; i++ {
		a.RecordFailedLogin()
	}
	store.accounts["admin@league.nz"] = a

	_, err := ExecuteLogin(context.Background(),
		LoginInput{Email: "admin@league.nz", Password: "correct horse battery"},
		LoginDeps{AccountStore: store})
	if !errors.Is(err, ErrAccountLocked) {
		t.Fatalf("error = %v, want ErrAccountLocked", err)
	}
}

// TestExecuteLogin_UnknownEmail returns the same error as a bad password.
func TestExecuteLogin_UnknownEmail(t *testing.T) {
	_, err := ExecuteLogin(context.Background(),
		LoginInput{Email: "ghost@league.nz", Password: "whatever it is"},
		LoginDeps{AccountStore: newMockAccountStore()})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

// TestExecuteSeedAdmin_CreatesOnce only seeds an empty store.
func TestExecuteSeedAdmin_CreatesOnce(t *testing.T) {
	store := newMockAccountStore()
	deps := SeedAdminDeps{AccountStore: store}
	input := SeedAdminInput{Email: "admin@league.nz", Password: "a long bootstrap secret"}

	if err := ExecuteSeedAdmin(context.Background(), input, deps); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if len(store.accounts) != 1 {
		t.Fatalf("accounts = %d, want 1", len(store.accounts))
	}
	created := store.accounts["admin@league.nz"]
	if created.Role != account.RoleAdmin || created.PasswordHash == "" {
		t.Errorf("seeded account = %+v, want admin with a hash", created)
	}

	// Second run must not touch anything.
	other := SeedAdminInput{Email: "other@league.nz", Password: "another long secret"}
	if err := ExecuteSeedAdmin(context.Background(), other, deps); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if len(store.accounts) != 1 {
		t.Errorf("accounts = %d after reseed, want 1", len(store.accounts))
	}
}

// TestExecuteSeedAdmin_NoCredentials is a silent no-op.
func TestExecuteSeedAdmin_NoCredentials(t *testing.T) {
	store := newMockAccountStore()
	if err := ExecuteSeedAdmin(context.Background(), SeedAdminInput{}, SeedAdminDeps{AccountStore: store}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.accounts) != 0 {
		t.Errorf("accounts = %d, want 0", len(store.accounts))
	}
}
