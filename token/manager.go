// Package token mints and verifies short-lived signed snapshots of the
// current session. The UI collaborator attaches them to backend calls; the
// engine itself never consumes them.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dverbeek/authvault/session"
)

// ErrTokenInvalid reports a token that failed signature or claim validation.
var ErrTokenInvalid = errors.New("invalid session token")

// Config configures the token manager. Secret is the HS256 signing key;
// Issuer is stamped into and required from every token.
type Config struct {
	Secret []byte
	Issuer string
	Leeway time.Duration
}

// Manager signs and parses session tokens. Safe for concurrent use.
type Manager struct {
	config Config
}

// SessionClaims is the JWT claim set carried by a session token.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// NewManager validates cfg and returns a manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) < 32 {
		return nil, errors.New("token secret must be at least 32 bytes")
	}
	if cfg.Issuer == "" {
		return nil, errors.New("token issuer required")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	return &Manager{config: cfg}, nil
}

// Mint signs a token for s valid for ttl from now.
func (m *Manager) Mint(s *session.Session, ttl time.Duration) (string, error) {
	if s == nil {
		return "", errors.New("nil session")
	}
	if ttl <= 0 {
		return "", errors.New("non-positive ttl")
	}

	now := time.Now()
	claims := SessionClaims{
		Email: s.Email,
		Name:  s.Name,
		Role:  s.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.ID,
			Issuer:    m.config.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.config.Secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse validates raw and returns its claims.
func (m *Manager) Parse(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenInvalid
			}
			return m.config.Secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.config.Issuer),
		jwt.WithLeeway(m.config.Leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	return claims, nil
}
