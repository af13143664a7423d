package authvault

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dverbeek/authvault/password"
	"github.com/dverbeek/authvault/store"
	"github.com/dverbeek/authvault/token"
)

// NewHasher builds the argon2id hasher from engine password configuration.
// Exposed so callers can hash seed credentials with the same parameters the
// engine verifies against.
func NewHasher(cfg PasswordConfig) (*password.Argon2, error) {
	return password.NewArgon2(password.Config{
		Memory:      cfg.Memory,
		Time:        cfg.Time,
		Parallelism: cfg.Parallelism,
		SaltLength:  cfg.SaltLength,
		KeyLength:   cfg.KeyLength,
	})
}

// Builder assembles an Engine. Collaborators are injected, never constructed
// behind the engine's back, so tests can substitute empty directories,
// failing stores, or scripted probes.
type Builder struct {
	config    Config
	store     store.Store
	directory Directory
	probe     CapabilityProbe
	auditSink AuditSink
	built     bool
}

// New returns a builder seeded with [DefaultConfig].
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore injects the credential store.
func (b *Builder) WithStore(s store.Store) *Builder {
	b.store = s
	return b
}

// WithRedis wraps client in a Redis-backed credential store using the
// configured key prefix.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.store = store.NewRedis(client, b.config.Store.RedisPrefix)
	return b
}

// WithDirectory injects the principal directory.
func (b *Builder) WithDirectory(d Directory) *Builder {
	b.directory = d
	return b
}

// WithProbe injects the device capability probe.
func (b *Builder) WithProbe(p CapabilityProbe) *Builder {
	b.probe = p
	return b
}

// WithAuditSink enables auditing and routes events to sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled toggles operation counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and wiring and returns a ready Engine.
// A builder can be used once.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if b.store == nil {
		return nil, errors.New("credential store required")
	}
	if b.directory == nil {
		return nil, errors.New("directory required")
	}
	if b.probe == nil {
		return nil, errors.New("capability probe required")
	}
	if err := validateConfig(b.config); err != nil {
		return nil, err
	}

	hasher, err := NewHasher(b.config.Password)
	if err != nil {
		return nil, err
	}

	var tokens *token.Manager
	if len(b.config.Token.Secret) > 0 {
		tokens, err = token.NewManager(token.Config{
			Secret: b.config.Token.Secret,
			Issuer: b.config.Token.Issuer,
			Leeway: b.config.Token.Leeway,
		})
		if err != nil {
			return nil, err
		}
	}

	e := &Engine{
		config:       b.config,
		store:        b.store,
		directory:    b.directory,
		probe:        b.probe,
		passwordHash: hasher,
		tokens:       tokens,
		audit:        newAuditDispatcher(b.config.Audit, b.auditSink),
		modality:     ModalityFingerprint,
	}
	if b.config.Metrics.Enabled {
		e.metrics = newMetrics()
	}

	b.built = true
	return e, nil
}
