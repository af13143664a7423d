package authvault

import (
	"errors"
	"time"
)

// Config groups all engine tunables. Configure once, build, and treat as
// immutable afterwards.
type Config struct {
	Password  PasswordConfig
	Pin       PinConfig
	Biometric BiometricConfig
	TwoFactor TwoFactorConfig
	Account   AccountConfig
	Store     StoreConfig
	Token     TokenConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

// PasswordConfig holds argon2id cost parameters for credential hashing.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// PinConfig controls PIN enrollment.
type PinConfig struct {
	MinLength int
}

// BiometricConfig carries the prompt texts shown by the platform challenge
// dialog.
type BiometricConfig struct {
	// SetupPrompt is shown by the live challenge required to enable the
	// biometric factor.
	SetupPrompt string
	// LoginPrompt is shown when re-authenticating with biometrics.
	LoginPrompt string
}

// Two-factor verification modes.
const (
	// TwoFactorModeStatic accepts a single fixed code. Demo installations
	// only.
	TwoFactorModeStatic = "static"
	// TwoFactorModeTOTP enrolls a shared secret and verifies RFC 6238 codes
	// with time-skew tolerance.
	TwoFactorModeTOTP = "totp"
)

// TwoFactorConfig selects and parameterizes the one-time-code factor.
type TwoFactorConfig struct {
	Mode       string
	Issuer     string // otpauth issuer label in TOTP mode
	StaticCode string // accepted code in static mode
	CodeLength int
}

// AccountConfig controls registration.
type AccountConfig struct {
	DefaultRole Role
}

// StoreConfig parameterizes store construction done by the builder.
type StoreConfig struct {
	RedisPrefix string
}

// TokenConfig configures session token minting. Leave Secret empty to
// disable the token surface.
type TokenConfig struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	Leeway time.Duration
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig enables the in-process operation counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the stock configuration: static two-factor mode,
// four-digit PINs, and the standard argon2id cost parameters.
func DefaultConfig() Config {
	return Config{
		Password: PasswordConfig{
			Memory:      65536,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Pin: PinConfig{
			MinLength: 4,
		},
		Biometric: BiometricConfig{
			SetupPrompt: "Confirm biometric to enable",
			LoginPrompt: "Authenticate to continue",
		},
		TwoFactor: TwoFactorConfig{
			Mode:       TwoFactorModeStatic,
			Issuer:     "authvault",
			StaticCode: "123456",
			CodeLength: 6,
		},
		Account: AccountConfig{
			DefaultRole: RoleStudent,
		},
		Store: StoreConfig{
			RedisPrefix: "av",
		},
		Token: TokenConfig{
			Issuer: "authvault",
			TTL:    5 * time.Minute,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

func validateConfig(cfg Config) error {
	if cfg.Pin.MinLength < 4 {
		return errors.New("pin minimum length must be at least 4")
	}
	switch cfg.TwoFactor.Mode {
	case TwoFactorModeStatic:
		if cfg.TwoFactor.StaticCode == "" {
			return errors.New("static two-factor mode requires a code")
		}
	case TwoFactorModeTOTP:
		if cfg.TwoFactor.Issuer == "" {
			return errors.New("totp two-factor mode requires an issuer")
		}
	default:
		return errors.New("unknown two-factor mode")
	}
	if cfg.TwoFactor.CodeLength != 6 {
		return errors.New("two-factor code length must be 6")
	}
	if len(cfg.Token.Secret) > 0 && cfg.Token.TTL <= 0 {
		return errors.New("token ttl must be positive")
	}
	if cfg.Account.DefaultRole == "" {
		return errors.New("default role required")
	}
	return nil
}
