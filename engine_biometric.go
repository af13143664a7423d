package authvault

import (
	"context"
	"fmt"
)

// SetupBiometric enables the biometric factor. The device must report
// hardware present and biometrics enrolled, and the user must pass a live
// challenge; only then is the flag set and persisted.
func (e *Engine) SetupBiometric(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}

	hasHardware, err := e.probe.HasHardware(ctx)
	if err != nil {
		return e.biometricSetupFailure(ctx, fmt.Errorf("%w: %w", ErrBiometricNoHardware, err))
	}
	if !hasHardware {
		return e.biometricSetupFailure(ctx, ErrBiometricNoHardware)
	}

	enrolled, err := e.probe.IsEnrolled(ctx)
	if err != nil {
		return e.biometricSetupFailure(ctx, fmt.Errorf("%w: %w", ErrBiometricNotEnrolled, err))
	}
	if !enrolled {
		return e.biometricSetupFailure(ctx, ErrBiometricNotEnrolled)
	}

	if err := e.challenge(ctx, e.config.Biometric.SetupPrompt); err != nil {
		return e.biometricSetupFailure(ctx, err)
	}

	flags := e.AuthMethods()
	flags.Biometric = true
	if err := e.persistFlags(ctx, flags); err != nil {
		return err
	}

	e.mu.Lock()
	e.flags.Biometric = true
	e.mu.Unlock()

	e.metricInc(MetricBiometricSetup)
	e.emitAudit(ctx, auditEventBiometricSetup, true, "", "", nil, nil)
	return nil
}

func (e *Engine) biometricSetupFailure(ctx context.Context, err error) error {
	e.emitAudit(ctx, auditEventBiometricSetup, false, "", "", err, nil)
	return err
}

// AuthenticateBiometric re-authenticates the last persisted session with a
// live biometric challenge. Like PIN verification it performs no principal
// lookup; the device challenge is the whole check.
func (e *Engine) AuthenticateBiometric(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}

	if err := e.challenge(ctx, e.config.Biometric.LoginPrompt); err != nil {
		e.metricInc(MetricBiometricFailure)
		e.emitAudit(ctx, auditEventBiometricFailure, false, "", "", err, nil)
		return err
	}

	e.metricInc(MetricBiometricSuccess)
	e.emitAudit(ctx, auditEventBiometricSuccess, true, "", "", nil, nil)
	return nil
}

// challenge runs the live probe challenge and maps every failure shape onto
// ErrBiometricChallengeFailed.
func (e *Engine) challenge(ctx context.Context, prompt string) error {
	result, err := e.probe.Challenge(ctx, prompt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBiometricChallengeFailed, err)
	}
	if !result.OK {
		if result.Reason != "" {
			return fmt.Errorf("%w: %s", ErrBiometricChallengeFailed, result.Reason)
		}
		return ErrBiometricChallengeFailed
	}
	return nil
}
