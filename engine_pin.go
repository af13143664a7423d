package authvault

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/dverbeek/authvault/store"
)

// SetupPin stores pin as the PIN secret and marks the factor enrolled. The
// secret is written before the flag, so a crash between the two writes leaves
// the factor showing as not yet enabled on the next load, never the reverse.
func (e *Engine) SetupPin(ctx context.Context, pin string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if len(pin) < e.config.Pin.MinLength {
		e.emitAudit(ctx, auditEventPinSetup, false, "", "", ErrPinTooShort, nil)
		return ErrPinTooShort
	}

	if err := e.store.Put(ctx, storeKeyPin, []byte(pin)); err != nil {
		return e.storageFailure(ctx, "persist pin", err)
	}

	flags := e.AuthMethods()
	flags.PIN = true
	if err := e.persistFlags(ctx, flags); err != nil {
		return err
	}

	e.mu.Lock()
	e.flags.PIN = true
	e.mu.Unlock()

	e.metricInc(MetricPinSetup)
	e.emitAudit(ctx, auditEventPinSetup, true, "", "", nil, nil)
	return nil
}

// VerifyPin re-authenticates the last persisted session by PIN. It performs
// no principal lookup: the stored secret is assumed to belong to whoever the
// device last persisted a session for. A missing stored PIN surfaces as a
// mismatch.
func (e *Engine) VerifyPin(ctx context.Context, pin string) error {
	if e == nil {
		return ErrEngineNotReady
	}

	saved, err := e.store.Get(ctx, storeKeyPin)
	if errors.Is(err, store.ErrNotFound) {
		e.metricInc(MetricPinVerifyFailure)
		e.emitAudit(ctx, auditEventPinVerifyFailure, false, "", "", ErrIncorrectPin, nil)
		return ErrIncorrectPin
	}
	if err != nil {
		return e.storageFailure(ctx, "load pin", err)
	}

	if subtle.ConstantTimeCompare(saved, []byte(pin)) != 1 {
		e.metricInc(MetricPinVerifyFailure)
		e.emitAudit(ctx, auditEventPinVerifyFailure, false, "", "", ErrIncorrectPin, nil)
		return ErrIncorrectPin
	}

	e.metricInc(MetricPinVerifySuccess)
	e.emitAudit(ctx, auditEventPinVerifySuccess, true, "", "", nil, nil)
	return nil
}
