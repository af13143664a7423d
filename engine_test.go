package authvault

import (
	"context"
	"errors"
	"testing"

	"github.com/dverbeek/authvault/store"
)

type engineOption func(*Builder)

func withSeededDirectory(t *testing.T) engineOption {
	t.Helper()
	return func(b *Builder) {
		hasher, err := NewHasher(fastPasswordConfig())
		if err != nil {
			t.Fatalf("NewHasher failed: %v", err)
		}
		dir, err := SeedDemoDirectory(hasher)
		if err != nil {
			t.Fatalf("SeedDemoDirectory failed: %v", err)
		}
		b.WithDirectory(dir)
	}
}

func withProbe(p CapabilityProbe) engineOption {
	return func(b *Builder) {
		b.WithProbe(p)
	}
}

func withStore(s store.Store) engineOption {
	return func(b *Builder) {
		b.WithStore(s)
	}
}

func withConfig(cfg Config) engineOption {
	return func(b *Builder) {
		b.WithConfig(cfg)
	}
}

// fastPasswordConfig keeps argon2 cheap so the suite stays quick.
func fastPasswordConfig() PasswordConfig {
	return PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Password = fastPasswordConfig()
	return cfg
}

func okProbe() *StaticProbe {
	return &StaticProbe{
		Hardware:    true,
		Enrolled:    true,
		ChallengeOK: true,
		Modalities:  []BiometricModality{ModalityFingerprint},
	}
}

// newTestEngine builds an engine over a fresh memory store and empty
// directory unless options override them.
func newTestEngine(t *testing.T, opts ...engineOption) *Engine {
	t.Helper()

	b := New().
		WithConfig(testConfig()).
		WithStore(store.NewMemory()).
		WithDirectory(NewInMemoryDirectory()).
		WithProbe(okProbe())
	for _, opt := range opts {
		opt(b)
	}

	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

// failingStore wraps a Store and fails selected operations to exercise the
// storage error paths.
type failingStore struct {
	inner      store.Store
	failPut    bool
	failGet    bool
	failRemove bool
}

var errDiskGone = errors.New("disk gone")

func (f *failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failGet {
		return nil, errDiskGone
	}
	return f.inner.Get(ctx, key)
}

func (f *failingStore) Put(ctx context.Context, key string, value []byte) error {
	if f.failPut {
		return errDiskGone
	}
	return f.inner.Put(ctx, key, value)
}

func (f *failingStore) Remove(ctx context.Context, key string) error {
	if f.failRemove {
		return errDiskGone
	}
	return f.inner.Remove(ctx, key)
}

func TestBuilderRequiresCollaborators(t *testing.T) {
	if _, err := New().Build(); err == nil {
		t.Fatal("expected error building without collaborators")
	}
	if _, err := New().WithStore(store.NewMemory()).Build(); err == nil {
		t.Fatal("expected error building without directory")
	}
	if _, err := New().WithStore(store.NewMemory()).WithDirectory(NewInMemoryDirectory()).Build(); err == nil {
		t.Fatal("expected error building without probe")
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := New().
		WithConfig(testConfig()).
		WithStore(store.NewMemory()).
		WithDirectory(NewInMemoryDirectory()).
		WithProbe(okProbe())
	engine, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer engine.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestBuilderRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.TwoFactor.Mode = "carrier-pigeon"

	_, err := New().
		WithConfig(cfg).
		WithStore(store.NewMemory()).
		WithDirectory(NewInMemoryDirectory()).
		WithProbe(okProbe()).
		Build()
	if err == nil {
		t.Fatal("expected error for unknown two-factor mode")
	}
}
