package authvault

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/pquerna/otp/totp"

	"github.com/dverbeek/authvault/store"
)

// SetupTwoFactor enrolls the one-time-code factor.
//
// In static mode it only sets and persists the flag. In TOTP mode it
// generates a shared secret bound to the live session, persists it, and
// returns the secret with its otpauth provisioning URI for the caller to
// display as a QR code.
func (e *Engine) SetupTwoFactor(ctx context.Context) (*TwoFactorEnrollment, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	enrollment := &TwoFactorEnrollment{Mode: e.config.TwoFactor.Mode}

	if e.config.TwoFactor.Mode == TwoFactorModeTOTP {
		s := e.sessionSnapshot()
		if s == nil {
			e.emitAudit(ctx, auditEventTwoFactorSetup, false, "", "", ErrNoActiveSession, nil)
			return nil, ErrNoActiveSession
		}

		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      e.config.TwoFactor.Issuer,
			AccountName: s.Email,
		})
		if err != nil {
			e.emitAudit(ctx, auditEventTwoFactorSetup, false, s.Email, s.ID, err, nil)
			return nil, err
		}
		if err := e.store.Put(ctx, storeKeyTwoFactorSecret, []byte(key.Secret())); err != nil {
			return nil, e.storageFailure(ctx, "persist two-factor secret", err)
		}
		enrollment.Secret = key.Secret()
		enrollment.URI = key.URL()
	}

	flags := e.AuthMethods()
	flags.TwoFactor = true
	if err := e.persistFlags(ctx, flags); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.flags.TwoFactor = true
	e.mu.Unlock()

	e.metricInc(MetricTwoFactorSetup)
	e.emitAudit(ctx, auditEventTwoFactorSetup, true, "", "", nil, func() map[string]string {
		return map[string]string{"mode": enrollment.Mode}
	})
	return enrollment, nil
}

// VerifyTwoFactor checks a caller-supplied one-time code. In static mode the
// code is compared against the configured fixed value; in TOTP mode it is
// validated against the enrolled secret with the standard time-skew window.
func (e *Engine) VerifyTwoFactor(ctx context.Context, code string) error {
	if e == nil {
		return ErrEngineNotReady
	}

	if len(code) != e.config.TwoFactor.CodeLength || !isNumericString(code) {
		return e.twoFactorFailure(ctx, ErrTwoFactorInvalidCode)
	}

	switch e.config.TwoFactor.Mode {
	case TwoFactorModeTOTP:
		secret, err := e.store.Get(ctx, storeKeyTwoFactorSecret)
		if errors.Is(err, store.ErrNotFound) {
			return e.twoFactorFailure(ctx, ErrTwoFactorNotConfigured)
		}
		if err != nil {
			return e.storageFailure(ctx, "load two-factor secret", err)
		}
		if !totp.Validate(code, string(secret)) {
			return e.twoFactorFailure(ctx, ErrTwoFactorInvalidCode)
		}
	default:
		if subtle.ConstantTimeCompare([]byte(code), []byte(e.config.TwoFactor.StaticCode)) != 1 {
			return e.twoFactorFailure(ctx, ErrTwoFactorInvalidCode)
		}
	}

	e.metricInc(MetricTwoFactorSuccess)
	e.emitAudit(ctx, auditEventTwoFactorSuccess, true, "", "", nil, nil)
	return nil
}

func (e *Engine) twoFactorFailure(ctx context.Context, err error) error {
	e.metricInc(MetricTwoFactorFailure)
	e.emitAudit(ctx, auditEventTwoFactorFailure, false, "", "", err, nil)
	return err
}
