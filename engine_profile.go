package authvault

import (
	"context"

	"github.com/dverbeek/authvault/session"
)

// UpdateProfile merges the mutable profile fields into the registered
// principal and the live session, and persists the updated session. It
// requires a live session.
func (e *Engine) UpdateProfile(ctx context.Context, update ProfileUpdate) (*session.Session, error) {
	if e == nil || e.directory == nil {
		return nil, ErrEngineNotReady
	}

	current := e.sessionSnapshot()
	if current == nil {
		e.emitAudit(ctx, auditEventProfileUpdate, false, "", "", ErrNoActiveSession, nil)
		return nil, ErrNoActiveSession
	}

	updated, err := e.directory.Update(current.Email, update)
	if err != nil {
		e.emitAudit(ctx, auditEventProfileUpdate, false, current.Email, current.ID, err, nil)
		return nil, err
	}

	s := updated.Session()
	if err := e.persistSession(ctx, s); err != nil {
		// Directory already holds the new name; the session record catches
		// up on the next successful write.
		e.emitAudit(ctx, auditEventProfileUpdate, false, current.Email, current.ID, err, nil)
		return nil, err
	}

	e.mu.Lock()
	e.sess = s.Clone()
	e.mu.Unlock()

	e.metricInc(MetricProfileUpdate)
	e.emitAudit(ctx, auditEventProfileUpdate, true, s.Email, s.ID, nil, nil)
	return s, nil
}
