package authvault

import "context"

// ResetInstructions is the message returned by a successful reset request.
// No credential is actually changed and no mail is sent; delivery is an
// external collaborator's concern.
const ResetInstructions = "Password reset instructions sent to your email"

// ResetPassword checks that an account exists for email and returns the
// instructional message. It mutates no state.
func (e *Engine) ResetPassword(ctx context.Context, email string) (string, error) {
	if e == nil || e.directory == nil {
		return "", ErrEngineNotReady
	}

	if _, err := e.directory.FindByEmail(email); err != nil {
		e.emitAudit(ctx, auditEventPasswordReset, false, email, "", ErrNoAccountFound, nil)
		return "", ErrNoAccountFound
	}

	e.metricInc(MetricPasswordReset)
	e.emitAudit(ctx, auditEventPasswordReset, true, email, "", nil, nil)
	return ResetInstructions, nil
}
