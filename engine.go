package authvault

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dverbeek/authvault/password"
	"github.com/dverbeek/authvault/session"
	"github.com/dverbeek/authvault/store"
	"github.com/dverbeek/authvault/token"
)

// Credential store record keys. The three legacy keys match the persisted
// layout of the system this replaces; twoFactorSecret is new with TOTP mode.
const (
	storeKeySession         = "session"
	storeKeyFlags           = "authMethods"
	storeKeyPin             = "userPin"
	storeKeyTwoFactorSecret = "twoFactorSecret"
)

// Engine is the authentication orchestrator. It owns the in-memory session
// and the enrolled-factor flags, and it is the sole writer of the credential
// store. Operations run to completion before the caller proceeds; there is
// no cancellation once a write has started.
//
// Memory is mutated only after the corresponding store write succeeds, so a
// failed write leaves the in-memory state exactly as it was.
type Engine struct {
	config       Config
	store        store.Store
	directory    Directory
	probe        CapabilityProbe
	passwordHash *password.Argon2
	tokens       *token.Manager
	audit        *auditDispatcher
	metrics      *Metrics

	mu       sync.Mutex
	sess     *session.Session
	flags    session.MethodFlags
	ready    bool
	modality BiometricModality
}

// LoadPersistedState restores the last persisted session and factor flags,
// or leaves the defaults in place when no records exist. It marks the engine
// ready in every case, including after a storage failure, so the consumer
// surface can proceed with defaults; the failure is still reported.
func (e *Engine) LoadPersistedState(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}

	var firstErr error
	var loadedSession *session.Session
	loadedFlags := session.MethodFlags{}

	data, err := e.store.Get(ctx, storeKeySession)
	switch {
	case err == nil:
		s, derr := session.DecodeSession(data)
		if derr != nil {
			log.Printf("authvault: discarding undecodable session record: %v", derr)
		} else {
			loadedSession = s
		}
	case errors.Is(err, store.ErrNotFound):
	default:
		firstErr = e.storageFailure(ctx, "load session", err)
	}

	data, err = e.store.Get(ctx, storeKeyFlags)
	switch {
	case err == nil:
		f, derr := session.DecodeFlags(data)
		if derr != nil {
			log.Printf("authvault: discarding undecodable flags record: %v", derr)
		} else {
			loadedFlags = f
		}
	case errors.Is(err, store.ErrNotFound):
	default:
		if firstErr == nil {
			firstErr = e.storageFailure(ctx, "load flags", err)
		}
	}

	e.mu.Lock()
	e.sess = loadedSession
	e.flags = loadedFlags
	e.ready = true
	e.mu.Unlock()

	return firstErr
}

// ProbeCapabilities queries the device probe and resets the in-memory
// biometric flag from hardware presence, exactly as the cold-start contract
// demands. It deliberately overwrites a persisted biometric flag: hardware
// that disappeared since the last run must not leave the factor enabled.
// The result is held in memory only; enrollment operations persist flags.
func (e *Engine) ProbeCapabilities(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}

	hasHardware, err := e.probe.HasHardware(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBiometricChallengeFailed, err)
	}

	modality := ModalityFingerprint
	mods, err := e.probe.SupportedModalities(ctx)
	if err == nil && len(mods) > 0 {
		switch mods[0] {
		case ModalityFingerprint, ModalityFace, ModalityIris:
			modality = mods[0]
		}
	}

	e.mu.Lock()
	e.flags.Biometric = hasHardware
	e.modality = modality
	e.mu.Unlock()

	return nil
}

// Ready reports whether the initial credential store read has finished.
func (e *Engine) Ready() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// CurrentSession returns a snapshot of the live session, or nil when logged
// out. Consumers never receive a live reference.
func (e *Engine) CurrentSession() *session.Session {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.Clone()
}

// AuthMethods returns a snapshot of the enrolled-factor flags.
func (e *Engine) AuthMethods() session.MethodFlags {
	if e == nil {
		return session.MethodFlags{}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.flags
}

// Modality reports the biometric modality the probe advertised, for display
// purposes only. Defaults to fingerprint.
func (e *Engine) Modality() BiometricModality {
	if e == nil {
		return ModalityFingerprint
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.modality
}

// SessionToken mints a signed snapshot of the current session valid for ttl
// (the configured default when ttl is zero). Requires a token secret in the
// configuration and a live session.
func (e *Engine) SessionToken(ctx context.Context, ttl time.Duration) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}
	if e.tokens == nil {
		return "", ErrTokenNotConfigured
	}
	s := e.CurrentSession()
	if s == nil {
		return "", ErrNoActiveSession
	}
	if ttl <= 0 {
		ttl = e.config.Token.TTL
	}
	return e.tokens.Mint(s, ttl)
}

// MetricsSnapshot copies the operation counters. Empty when metrics are
// disabled.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

// AuditDropped reports how many audit events were dropped by a saturated
// dispatcher buffer.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// Close flushes and stops the audit dispatcher.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) sessionSnapshot() *session.Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess.Clone()
}

// storageFailure logs, counts, and audits a credential store I/O failure,
// returning the wrapped error the operation surfaces.
func (e *Engine) storageFailure(ctx context.Context, op string, err error) error {
	log.Printf("authvault: credential store %s failed: %v", op, err)
	e.metricInc(MetricStorageFailure)
	wrapped := fmt.Errorf("%w: %s: %w", ErrStorageUnavailable, op, err)
	e.emitAudit(ctx, auditEventStorageFailure, false, "", "", wrapped, func() map[string]string {
		return map[string]string{"op": op}
	})
	return wrapped
}

// persistSession writes the session record.
func (e *Engine) persistSession(ctx context.Context, s *session.Session) error {
	data, err := session.EncodeSession(s)
	if err != nil {
		return err
	}
	if err := e.store.Put(ctx, storeKeySession, data); err != nil {
		return e.storageFailure(ctx, "persist session", err)
	}
	return nil
}

// persistFlags writes the factor flags record.
func (e *Engine) persistFlags(ctx context.Context, f session.MethodFlags) error {
	data, err := session.EncodeFlags(f)
	if err != nil {
		return err
	}
	if err := e.store.Put(ctx, storeKeyFlags, data); err != nil {
		return e.storageFailure(ctx, "persist flags", err)
	}
	return nil
}
