package authvault

import "sync/atomic"

// MetricID identifies one operation counter.
type MetricID uint16

const (
	// MetricRegisterSuccess counts successful registrations.
	MetricRegisterSuccess MetricID = iota
	// MetricRegisterFailure counts rejected registrations.
	MetricRegisterFailure
	// MetricLoginSuccess counts successful password logins.
	MetricLoginSuccess
	// MetricLoginFailure counts failed password logins.
	MetricLoginFailure
	// MetricLogout counts logout calls.
	MetricLogout
	// MetricPinSetup counts successful PIN enrollments.
	MetricPinSetup
	// MetricPinVerifySuccess counts successful PIN verifications.
	MetricPinVerifySuccess
	// MetricPinVerifyFailure counts failed PIN verifications.
	MetricPinVerifyFailure
	// MetricBiometricSetup counts successful biometric enrollments.
	MetricBiometricSetup
	// MetricBiometricSuccess counts passed biometric challenges.
	MetricBiometricSuccess
	// MetricBiometricFailure counts declined or failed biometric challenges.
	MetricBiometricFailure
	// MetricTwoFactorSetup counts successful two-factor enrollments.
	MetricTwoFactorSetup
	// MetricTwoFactorSuccess counts verified one-time codes.
	MetricTwoFactorSuccess
	// MetricTwoFactorFailure counts rejected one-time codes.
	MetricTwoFactorFailure
	// MetricPasswordReset counts password reset requests.
	MetricPasswordReset
	// MetricProfileUpdate counts applied profile updates.
	MetricProfileUpdate
	// MetricStorageFailure counts credential store I/O failures.
	MetricStorageFailure

	metricCount
)

// Metrics holds lock-free operation counters.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

func newMetrics() *Metrics {
	return &Metrics{}
}

// Inc increments one counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// Snapshot copies every counter. Non-zero entries only.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricCount; id++ {
		if v := m.counters[id].Load(); v > 0 {
			snap.Counters[id] = v
		}
	}
	return snap
}
