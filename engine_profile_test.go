package authvault

import (
	"context"
	"errors"
	"testing"

	"github.com/dverbeek/authvault/store"
)

func TestUpdateProfileRequiresSession(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.UpdateProfile(context.Background(), ProfileUpdate{Name: "X"})
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("UpdateProfile without session = %v, want ErrNoActiveSession", err)
	}
}

func TestUpdateProfileChangesNameEverywhere(t *testing.T) {
	backing := store.NewMemory()
	dir := NewInMemoryDirectory()
	engine := newTestEngine(t, withStore(backing), func(b *Builder) { b.WithDirectory(dir) })
	ctx := context.Background()

	if _, err := engine.Register(ctx, "ada@example.com", "Password1", "Ada"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	s, err := engine.UpdateProfile(ctx, ProfileUpdate{Name: "X"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if s.Name != "X" {
		t.Fatalf("returned session name = %q, want X", s.Name)
	}
	if got := engine.CurrentSession(); got.Name != "X" {
		t.Fatalf("live session name = %q, want X", got.Name)
	}

	p, err := dir.FindByEmail("ada@example.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if p.Name != "X" {
		t.Fatalf("directory name = %q, want X", p.Name)
	}

	// The change must survive a reload.
	restarted := newTestEngine(t, withStore(backing), func(b *Builder) { b.WithDirectory(dir) })
	if err := restarted.LoadPersistedState(ctx); err != nil {
		t.Fatalf("LoadPersistedState failed: %v", err)
	}
	if got := restarted.CurrentSession(); got == nil || got.Name != "X" {
		t.Fatalf("reloaded session = %+v, want name X", got)
	}
}

func TestUpdateProfileEmptyNameIsNoop(t *testing.T) {
	engine := newTestEngine(t, withSeededDirectory(t))
	ctx := context.Background()

	if _, err := engine.Login(ctx, "student@example.com", "password123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	s, err := engine.UpdateProfile(ctx, ProfileUpdate{})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if s.Name != "Student User" {
		t.Fatalf("name changed by empty update: %q", s.Name)
	}
}

func TestResetPassword(t *testing.T) {
	engine := newTestEngine(t, withSeededDirectory(t))
	ctx := context.Background()

	msg, err := engine.ResetPassword(ctx, "student@example.com")
	if err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}
	if msg != ResetInstructions {
		t.Fatalf("unexpected message %q", msg)
	}

	// No state mutation: the original password still works.
	if _, err := engine.Login(ctx, "student@example.com", "password123"); err != nil {
		t.Fatalf("login after reset request failed: %v", err)
	}

	_, err = engine.ResetPassword(ctx, "nobody@example.com")
	if !errors.Is(err, ErrNoAccountFound) {
		t.Fatalf("ResetPassword unknown = %v, want ErrNoAccountFound", err)
	}
}
