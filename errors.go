package authvault

import "errors"

var (
	// ErrEngineNotReady is returned when an Engine method is called on a nil
	// or incompletely built engine.
	ErrEngineNotReady = errors.New("engine not ready")

	// ErrInvalidEmail rejects registration input that does not look like an
	// email address.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrWeakPassword rejects passwords shorter than 8 characters or missing
	// an uppercase letter or a digit.
	ErrWeakPassword = errors.New("password must be at least 8 characters with 1 uppercase letter and 1 number")
	// ErrDuplicateEmail rejects registration for an already registered email.
	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrUserNotFound is returned by login and directory lookups for an
	// unknown email.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword is returned when the password does not match the
	// stored credential.
	ErrWrongPassword = errors.New("invalid password")

	// ErrPinTooShort rejects PIN enrollment input below the configured
	// minimum length.
	ErrPinTooShort = errors.New("pin must be at least 4 digits")
	// ErrIncorrectPin is returned on PIN mismatch. A missing stored PIN
	// surfaces as a mismatch, never as a distinct condition.
	ErrIncorrectPin = errors.New("incorrect pin")

	// ErrBiometricNoHardware means the device reports no biometric hardware.
	ErrBiometricNoHardware = errors.New("device does not support biometric authentication")
	// ErrBiometricNotEnrolled means the device has hardware but no enrolled
	// biometrics.
	ErrBiometricNotEnrolled = errors.New("no biometrics enrolled on this device")
	// ErrBiometricChallengeFailed means the live biometric challenge was
	// declined or failed.
	ErrBiometricChallengeFailed = errors.New("biometric authentication failed")

	// ErrTwoFactorInvalidCode is returned when the supplied one-time code
	// does not verify.
	ErrTwoFactorInvalidCode = errors.New("invalid authentication code")
	// ErrTwoFactorNotConfigured is returned in TOTP mode when verification is
	// attempted before enrollment stored a secret.
	ErrTwoFactorNotConfigured = errors.New("two-factor secret not configured")

	// ErrNoAccountFound is returned by password reset for an unknown email.
	ErrNoAccountFound = errors.New("no account found with this email")

	// ErrNoActiveSession is returned by operations that require a live
	// session.
	ErrNoActiveSession = errors.New("no user logged in")

	// ErrStorageUnavailable wraps credential store I/O failures. The failed
	// operation is terminal; in-memory state is left as it was before the
	// write.
	ErrStorageUnavailable = errors.New("credential store unavailable")

	// ErrTokenNotConfigured is returned by SessionToken when no signing
	// secret was configured.
	ErrTokenNotConfigured = errors.New("session token signing not configured")
)
