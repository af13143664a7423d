package authvault

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dverbeek/authvault/store"
)

func TestRegisterThenLogin(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	s, err := engine.Register(ctx, "ada@example.com", "Password1", "Ada")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if s.Email != "ada@example.com" || s.Name != "Ada" || s.Role != string(RoleStudent) {
		t.Fatalf("unexpected session %+v", s)
	}
	if s.ID == "" {
		t.Fatal("expected generated principal id")
	}

	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	s2, err := engine.Login(ctx, "ada@example.com", "Password1")
	if err != nil {
		t.Fatalf("Login after Register failed: %v", err)
	}
	if s2.Email != s.Email || s2.ID != s.ID {
		t.Fatalf("login session %+v does not match registered %+v", s2, s)
	}
}

func TestRegisterValidation(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"missing at sign", "adaexample.com", "Password1", ErrInvalidEmail},
		{"missing domain dot", "ada@examplecom", "Password1", ErrInvalidEmail},
		{"whitespace in email", "ada smith@example.com", "Password1", ErrInvalidEmail},
		{"too short", "ada@example.com", "Pass1", ErrWeakPassword},
		{"no uppercase", "ada@example.com", "password1", ErrWeakPassword},
		{"no digit", "ada@example.com", "Passwords", ErrWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.Register(ctx, tc.email, tc.password, "Ada")
			if !errors.Is(err, tc.want) {
				t.Fatalf("Register(%q, %q) = %v, want %v", tc.email, tc.password, err, tc.want)
			}
		})
	}

	if engine.CurrentSession() != nil {
		t.Fatal("failed registrations must not create a session")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	if _, err := engine.Register(ctx, "ada@example.com", "Password1", "Ada"); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := engine.Register(ctx, "ada@example.com", "Different2", "Imposter")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("duplicate Register = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	dir := NewInMemoryDirectory()
	engine := newTestEngine(t, func(b *Builder) { b.WithDirectory(dir) })

	if _, err := engine.Register(context.Background(), "ada@example.com", "Password1", "Ada"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	p, err := dir.FindByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if p.PasswordHash == "Password1" || !strings.HasPrefix(p.PasswordHash, "$argon2id$") {
		t.Fatalf("expected argon2id hash, got %q", p.PasswordHash)
	}
}

func TestLoginSeededDirectory(t *testing.T) {
	engine := newTestEngine(t, withSeededDirectory(t))
	ctx := context.Background()

	s, err := engine.Login(ctx, "student@example.com", "password123")
	if err != nil {
		t.Fatalf("seeded login failed: %v", err)
	}
	if s.Role != string(RoleStudent) {
		t.Fatalf("unexpected role %q", s.Role)
	}

	s, err = engine.Login(ctx, "teacher@example.com", "teacher123")
	if err != nil {
		t.Fatalf("seeded teacher login failed: %v", err)
	}
	if s.Role != string(RoleTeacher) {
		t.Fatalf("unexpected role %q", s.Role)
	}
}

func TestLoginFailures(t *testing.T) {
	engine := newTestEngine(t, withSeededDirectory(t))
	ctx := context.Background()

	_, err := engine.Login(ctx, "nobody@example.com", "password123")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("unknown login = %v, want ErrUserNotFound", err)
	}

	_, err = engine.Login(ctx, "student@example.com", "wrongpass1")
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("wrong password login = %v, want ErrWrongPassword", err)
	}
	if engine.CurrentSession() != nil {
		t.Fatal("failed login must leave session unset")
	}
}

func TestLogoutIdempotent(t *testing.T) {
	engine := newTestEngine(t, withSeededDirectory(t))
	ctx := context.Background()

	if _, err := engine.Login(ctx, "student@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("first Logout failed: %v", err)
	}
	if engine.CurrentSession() != nil {
		t.Fatal("session still live after logout")
	}
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("second Logout failed: %v", err)
	}
	if engine.CurrentSession() != nil {
		t.Fatal("session reappeared after second logout")
	}
}

func TestLogoutSurvivesStorageFailure(t *testing.T) {
	failing := &failingStore{inner: store.NewMemory(), failRemove: true}
	engine := newTestEngine(t, withSeededDirectory(t), withStore(failing))
	ctx := context.Background()

	if _, err := engine.Login(ctx, "student@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := engine.Logout(ctx); err != nil {
		t.Fatalf("Logout must not fail on storage error, got %v", err)
	}
	if engine.CurrentSession() != nil {
		t.Fatal("session must be cleared even when the remove fails")
	}
}

func TestLoginStorageFailureLeavesMemoryUntouched(t *testing.T) {
	failing := &failingStore{inner: store.NewMemory(), failPut: true}
	engine := newTestEngine(t, withSeededDirectory(t), withStore(failing))

	_, err := engine.Login(context.Background(), "student@example.com", "password123")
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("login with failing store = %v, want ErrStorageUnavailable", err)
	}
	if engine.CurrentSession() != nil {
		t.Fatal("session must not be set when the persist failed")
	}
}
