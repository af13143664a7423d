package authvault

import (
	"context"

	"github.com/dverbeek/authvault/session"
)

// Role classifies a registered principal.
type Role string

const (
	// RoleStudent is the default role assigned at registration.
	RoleStudent Role = "student"
	// RoleTeacher marks the seeded teacher account.
	RoleTeacher Role = "teacher"
)

// Principal is a registered account: credentials plus profile fields. Email is
// the unique, case-sensitive directory key and is immutable after creation.
// PasswordHash holds an argon2id PHC string, never a plaintext password.
type Principal struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
}

// Session returns the secret-stripped view of the principal that the engine
// holds after a successful authentication.
func (p *Principal) Session() *session.Session {
	if p == nil {
		return nil
	}
	return &session.Session{
		ID:    p.ID,
		Email: p.Email,
		Name:  p.Name,
		Role:  string(p.Role),
	}
}

// ProfileUpdate carries the mutable profile fields. Only the display name may
// change after creation; an empty Name leaves it untouched.
type ProfileUpdate struct {
	Name string
}

// Directory is the registry of principals keyed by email. Implementations are
// accessed by a single engine and need no internal locking beyond what
// [InMemoryDirectory] already provides.
type Directory interface {
	// FindByEmail returns ErrUserNotFound for an unknown email.
	FindByEmail(email string) (*Principal, error)
	// Insert returns ErrDuplicateEmail when the email is already registered.
	Insert(p *Principal) error
	// Update applies the mutable fields and returns the updated principal, or
	// ErrUserNotFound for an unknown email.
	Update(email string, update ProfileUpdate) (*Principal, error)
}

// BiometricModality is a biometric factor kind reported by the capability
// probe.
type BiometricModality uint8

const (
	// ModalityFingerprint is the default modality when the probe reports an
	// empty or unrecognized set.
	ModalityFingerprint BiometricModality = iota
	// ModalityFace is face recognition.
	ModalityFace
	// ModalityIris is iris recognition.
	ModalityIris
)

// String implements fmt.Stringer.
func (m BiometricModality) String() string {
	switch m {
	case ModalityFace:
		return "face"
	case ModalityIris:
		return "iris"
	default:
		return "fingerprint"
	}
}

// ChallengeResult is the outcome of a live biometric challenge.
type ChallengeResult struct {
	OK     bool
	Reason string
}

// CapabilityProbe queries the host device for biometric support. The engine
// consumes its boolean and enum results and never inspects the platform
// underneath. All methods may fail with a generic platform error, which the
// engine maps to its own error values.
type CapabilityProbe interface {
	HasHardware(ctx context.Context) (bool, error)
	IsEnrolled(ctx context.Context) (bool, error)
	SupportedModalities(ctx context.Context) ([]BiometricModality, error)
	Challenge(ctx context.Context, prompt string) (ChallengeResult, error)
}

// TwoFactorEnrollment is returned by SetupTwoFactor. In "totp" mode Secret
// and URI carry the generated shared secret and its otpauth provisioning URI;
// in "static" mode both are empty.
type TwoFactorEnrollment struct {
	Mode   string
	Secret string
	URI    string
}
