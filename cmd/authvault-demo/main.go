// Command authvault-demo walks the full enrollment flow against a configured
// credential store: seed directory login, PIN, biometric (scripted probe),
// two-factor, profile update, session token, logout. It doubles as a smoke
// test for store backends.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	authvault "github.com/dverbeek/authvault"
	"github.com/dverbeek/authvault/store"
)

type demoConfig struct {
	Store struct {
		Backend     string `toml:"backend"` // memory | redis | sqlite
		RedisAddr   string `toml:"redis_addr"`
		RedisPrefix string `toml:"redis_prefix"`
		SQLitePath  string `toml:"sqlite_path"`
	} `toml:"store"`
	TwoFactor struct {
		Mode   string `toml:"mode"`
		Issuer string `toml:"issuer"`
	} `toml:"twofactor"`
}

func loadDemoConfig(path string) (demoConfig, error) {
	cfg := demoConfig{}
	cfg.Store.Backend = "memory"
	cfg.Store.RedisAddr = "localhost:6379"
	cfg.Store.RedisPrefix = "av"
	cfg.Store.SQLitePath = "authvault.db"

	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	// Env beats file for deployment-specific values.
	if addr := os.Getenv("AUTHVAULT_REDIS_ADDR"); addr != "" {
		cfg.Store.RedisAddr = addr
	}
	if path := os.Getenv("AUTHVAULT_SQLITE_PATH"); path != "" {
		cfg.Store.SQLitePath = path
	}
	return cfg, nil
}

func buildStore(cfg demoConfig) (store.Store, func(), error) {
	switch cfg.Store.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Store.RedisAddr})
		return store.NewRedis(client, cfg.Store.RedisPrefix), func() { _ = client.Close() }, nil
	case "sqlite":
		s, err := store.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "memory":
		return store.NewMemory(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func main() {
	configPath := flag.String("config", "authvault.toml", "demo configuration file")
	flag.Parse()

	_ = godotenv.Load()

	demoCfg, err := loadDemoConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	backing, closeStore, err := buildStore(demoCfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeStore()

	builder := authvault.New()
	cfg := builderConfig(builder, demoCfg)

	probe := &authvault.StaticProbe{
		Hardware:    true,
		Enrolled:    true,
		ChallengeOK: true,
		Modalities:  []authvault.BiometricModality{authvault.ModalityFingerprint},
	}

	engine, err := builder.
		WithConfig(cfg).
		WithStore(backing).
		WithProbe(probe).
		WithAuditSink(authvault.NewJSONWriterSink(os.Stderr)).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		log.Fatal(err)
	}
	defer engine.Close()

	ctx := context.Background()
	step := func(name string, err error) {
		if err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		fmt.Printf("ok  %s\n", name)
	}

	step("load persisted state", engine.LoadPersistedState(ctx))
	step("probe capabilities", engine.ProbeCapabilities(ctx))

	_, err = engine.Login(ctx, "student@example.com", "password123")
	step("login student@example.com", err)

	step("setup pin", engine.SetupPin(ctx, "1234"))
	step("verify pin", engine.VerifyPin(ctx, "1234"))
	step("setup biometric", engine.SetupBiometric(ctx))
	step("authenticate biometric", engine.AuthenticateBiometric(ctx))

	enrollment, err := engine.SetupTwoFactor(ctx)
	step("setup two-factor", err)
	if enrollment.Mode == authvault.TwoFactorModeStatic {
		step("verify two-factor", engine.VerifyTwoFactor(ctx, "123456"))
	} else {
		fmt.Printf("    totp secret %s\n    uri %s\n", enrollment.Secret, enrollment.URI)
	}

	_, err = engine.UpdateProfile(ctx, authvault.ProfileUpdate{Name: "Demo Student"})
	step("update profile", err)

	if secret := os.Getenv("AUTHVAULT_TOKEN_SECRET"); secret != "" {
		token, err := engine.SessionToken(ctx, 0)
		step("mint session token", err)
		fmt.Printf("    token %s\n", token)
	}

	fmt.Printf("flags %+v\n", engine.AuthMethods())
	step("logout", engine.Logout(ctx))

	for id, count := range engine.MetricsSnapshot().Counters {
		fmt.Printf("metric %d = %d\n", id, count)
	}
}

// builderConfig derives the engine configuration from the demo file, wiring
// the directory seeded with the two canned accounts.
func builderConfig(b *authvault.Builder, demoCfg demoConfig) authvault.Config {
	cfg := authvault.DefaultConfig()
	if demoCfg.TwoFactor.Mode != "" {
		cfg.TwoFactor.Mode = demoCfg.TwoFactor.Mode
	}
	if demoCfg.TwoFactor.Issuer != "" {
		cfg.TwoFactor.Issuer = demoCfg.TwoFactor.Issuer
	}
	cfg.Store.RedisPrefix = demoCfg.Store.RedisPrefix
	if secret := os.Getenv("AUTHVAULT_TOKEN_SECRET"); secret != "" {
		cfg.Token.Secret = []byte(secret)
	}

	hasher, err := authvault.NewHasher(cfg.Password)
	if err != nil {
		log.Fatal(err)
	}
	directory, err := authvault.SeedDemoDirectory(hasher)
	if err != nil {
		log.Fatal(err)
	}
	b.WithDirectory(directory)
	return cfg
}
