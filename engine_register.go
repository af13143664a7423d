package authvault

import (
	"context"

	"github.com/google/uuid"

	"github.com/dverbeek/authvault/session"
)

// Register validates the input, creates a principal with the default role,
// and starts a session for it. The returned session never carries the
// password; the directory holds only the argon2id hash.
func (e *Engine) Register(ctx context.Context, email, pw, name string) (*session.Session, error) {
	if e == nil || e.passwordHash == nil || e.directory == nil {
		return nil, ErrEngineNotReady
	}

	if !validEmail(email) {
		return nil, e.registerFailure(ctx, email, ErrInvalidEmail, "invalid_email")
	}
	if !checkPasswordPolicy(pw) {
		return nil, e.registerFailure(ctx, email, ErrWeakPassword, "weak_password")
	}

	hash, err := e.passwordHash.Hash(pw)
	if err != nil {
		return nil, e.registerFailure(ctx, email, err, "hash_failed")
	}

	p := &Principal{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         e.config.Account.DefaultRole,
		PasswordHash: hash,
	}
	if err := e.directory.Insert(p); err != nil {
		return nil, e.registerFailure(ctx, email, err, "duplicate_email")
	}

	s := p.Session()
	if err := e.persistSession(ctx, s); err != nil {
		// The principal stays registered; only the session write failed, so
		// the in-memory session is left untouched.
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, email, "", err, nil)
		return nil, err
	}

	e.mu.Lock()
	e.sess = s.Clone()
	e.mu.Unlock()

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, email, s.ID, nil, func() map[string]string {
		return map[string]string{"role": string(p.Role)}
	})
	return s, nil
}

func (e *Engine) registerFailure(ctx context.Context, email string, err error, reason string) error {
	e.metricInc(MetricRegisterFailure)
	e.emitAudit(ctx, auditEventRegisterFailure, false, email, "", err, func() map[string]string {
		return map[string]string{"reason": reason}
	})
	return err
}
