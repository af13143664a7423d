package authvault

import (
	"context"
	"time"
)

const (
	auditEventRegisterSuccess   = "register_success"
	auditEventRegisterFailure   = "register_failure"
	auditEventLoginSuccess      = "login_success"
	auditEventLoginFailure      = "login_failure"
	auditEventLogout            = "logout"
	auditEventPinSetup          = "pin_setup"
	auditEventPinVerifySuccess  = "pin_verify_success"
	auditEventPinVerifyFailure  = "pin_verify_failure"
	auditEventBiometricSetup    = "biometric_setup"
	auditEventBiometricSuccess  = "biometric_success"
	auditEventBiometricFailure  = "biometric_failure"
	auditEventTwoFactorSetup    = "two_factor_setup"
	auditEventTwoFactorSuccess  = "two_factor_success"
	auditEventTwoFactorFailure  = "two_factor_failure"
	auditEventPasswordReset     = "password_reset_request"
	auditEventProfileUpdate     = "profile_update"
	auditEventStorageFailure    = "storage_failure"
)

// emitAudit queues one event. metadata is built lazily so disabled auditing
// costs nothing beyond the nil check.
func (e *Engine) emitAudit(ctx context.Context, eventType string, success bool, email, sessionID string, opErr error, metadata func() map[string]string) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Email:     email,
		SessionID: sessionID,
		Success:   success,
	}
	if opErr != nil {
		event.Error = opErr.Error()
	}
	if metadata != nil {
		event.Metadata = metadata()
	}

	e.audit.Emit(ctx, event)
}
