package authvault

import (
	"context"
	"errors"

	"github.com/dverbeek/authvault/session"
	"github.com/dverbeek/authvault/store"
)

// Login verifies the password against the directory credential and starts a
// session for the matched principal.
func (e *Engine) Login(ctx context.Context, email, pw string) (*session.Session, error) {
	if e == nil || e.passwordHash == nil || e.directory == nil {
		return nil, ErrEngineNotReady
	}

	p, err := e.directory.FindByEmail(email)
	if err != nil {
		return nil, e.loginFailure(ctx, email, ErrUserNotFound)
	}

	ok, err := e.passwordHash.Verify(pw, p.PasswordHash)
	if err != nil || !ok {
		// A corrupt stored hash is indistinguishable from a wrong password
		// to the caller.
		return nil, e.loginFailure(ctx, email, ErrWrongPassword)
	}

	s := p.Session()
	if err := e.persistSession(ctx, s); err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, email, "", err, nil)
		return nil, err
	}

	e.mu.Lock()
	e.sess = s.Clone()
	e.mu.Unlock()

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, email, s.ID, nil, nil)
	return s, nil
}

func (e *Engine) loginFailure(ctx context.Context, email string, err error) error {
	e.metricInc(MetricLoginFailure)
	e.emitAudit(ctx, auditEventLoginFailure, false, email, "", err, nil)
	return err
}

// Logout clears the session and removes the persisted session record. It is
// idempotent and never fails: a storage failure is logged and audited, but
// the in-memory session is cleared regardless so the caller always ends up
// logged out.
func (e *Engine) Logout(ctx context.Context) error {
	if e == nil {
		return nil
	}

	var email, sessionID string
	if s := e.sessionSnapshot(); s != nil {
		email, sessionID = s.Email, s.ID
	}

	if err := e.store.Remove(ctx, storeKeySession); err != nil && !errors.Is(err, store.ErrNotFound) {
		_ = e.storageFailure(ctx, "remove session", err)
	}

	e.mu.Lock()
	e.sess = nil
	e.mu.Unlock()

	e.metricInc(MetricLogout)
	e.emitAudit(ctx, auditEventLogout, true, email, sessionID, nil, nil)
	return nil
}
