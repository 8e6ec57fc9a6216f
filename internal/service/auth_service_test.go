package service

import (
	"errors"
	"testing"

	"github.com/aalkhodiry/ikhtibar/internal/model"
	"github.com/aalkhodiry/ikhtibar/internal/repository"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	auth := NewAuthService(repository.NewMemoryStorageRepository())

	user, token, err := auth.Register("amal@example.com", "s3cret", model.RoleUser)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == "" {
		t.Error("registered user has no id")
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked out of the service")
	}
	if token == "" {
		t.Fatal("register returned no token")
	}

	resolved, ok := auth.CurrentUser(token)
	if !ok {
		t.Fatal("token from register does not resolve")
	}
	if resolved.Email != "amal@example.com" {
		t.Errorf("resolved email = %q", resolved.Email)
	}

	_, loginToken, err := auth.Login("amal@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loginToken == token {
		t.Error("login reused the registration token")
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	auth := NewAuthService(repository.NewMemoryStorageRepository())

	if _, _, err := auth.Register("amal@example.com", "s3cret", model.RoleUser); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, _, err := auth.Register("amal@example.com", "other", model.RoleAdmin); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthLoginRejectsBadCredentials(t *testing.T) {
	auth := NewAuthService(repository.NewMemoryStorageRepository())

	if _, _, err := auth.Register("amal@example.com", "s3cret", model.RoleUser); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := auth.Login("amal@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := auth.Login("nobody@example.com", "s3cret"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthLogoutInvalidatesToken(t *testing.T) {
	auth := NewAuthService(repository.NewMemoryStorageRepository())

	_, token, err := auth.Register("amal@example.com", "s3cret", model.RoleUser)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	auth.Logout(token)
	if _, ok := auth.CurrentUser(token); ok {
		t.Error("token still resolves after logout")
	}
}

func TestAuthUpdateUserRole(t *testing.T) {
	auth := NewAuthService(repository.NewMemoryStorageRepository())

	user, _, err := auth.Register("amal@example.com", "s3cret", model.RoleUser)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	updated, err := auth.UpdateUserRole(user.ID, model.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}
	if updated.Role != model.RoleAdmin {
		t.Errorf("role = %s, want %s", updated.Role, model.RoleAdmin)
	}

	if _, err := auth.UpdateUserRole("no-such-id", model.RoleAdmin); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthDeleteUserInvalidatesLiveTokens(t *testing.T) {
	auth := NewAuthService(repository.NewMemoryStorageRepository())

	user, token, err := auth.Register("amal@example.com", "s3cret", model.RoleUser)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := auth.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, ok := auth.CurrentUser(token); ok {
		t.Error("token of a deleted account still resolves")
	}
	if err := auth.DeleteUser(user.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound on double delete, got %v", err)
	}
}

func TestAuthUsersSortedByEmail(t *testing.T) {
	auth := NewAuthService(repository.NewMemoryStorageRepository())

	for _, email := range []string{"c@example.com", "a@example.com", "b@example.com"} {
		if _, _, err := auth.Register(email, "s3cret", model.RoleUser); err != nil {
			t.Fatalf("Register %s: %v", email, err)
		}
	}

	users, err := auth.Users()
	if err != nil {
		t.Fatalf("Users: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	for i := 1; i < len(users); i++ {
		if users[i-1].Email > users[i].Email {
			t.Fatalf("users not sorted: %q before %q", users[i-1].Email, users[i].Email)
		}
	}
}

func TestAuthSeedDemoAccounts(t *testing.T) {
	auth := NewAuthService(repository.NewMemoryStorageRepository())

	if err := auth.SeedDemoAccounts(); err != nil {
		t.Fatalf("SeedDemoAccounts: %v", err)
	}
	count, err := auth.UserCount()
	if err != nil {
		t.Fatalf("UserCount: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 demo accounts, got %d", count)
	}

	admin, _, err := auth.Login("admin@demo.com", "password123")
	if err != nil {
		t.Fatalf("demo admin login: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Errorf("demo admin role = %s", admin.Role)
	}

	// Seeding again must not clobber existing accounts.
	if err := auth.SeedDemoAccounts(); err != nil {
		t.Fatalf("second SeedDemoAccounts: %v", err)
	}
	if count, _ = auth.UserCount(); count != 2 {
		t.Errorf("reseeding changed the account count to %d", count)
	}
}

func TestAuthSeedSkippedWhenAccountsExist(t *testing.T) {
	auth := NewAuthService(repository.NewMemoryStorageRepository())

	if _, _, err := auth.Register("amal@example.com", "s3cret", model.RoleUser); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := auth.SeedDemoAccounts(); err != nil {
		t.Fatalf("SeedDemoAccounts: %v", err)
	}
	if count, _ := auth.UserCount(); count != 1 {
		t.Errorf("seeding over an existing account set produced %d accounts", count)
	}
}
