package authvault

import "context"

// StaticProbe is a CapabilityProbe with canned answers. Platform bindings
// replace it in a real deployment; tests and the demo binary script it.
type StaticProbe struct {
	Hardware   bool
	Enrolled   bool
	Modalities []BiometricModality

	ChallengeOK     bool
	ChallengeReason string

	// Err, when set, is returned by every query to simulate a platform
	// failure.
	Err error
}

// HasHardware implements CapabilityProbe.
func (p *StaticProbe) HasHardware(context.Context) (bool, error) {
	return p.Hardware, p.Err
}

// IsEnrolled implements CapabilityProbe.
func (p *StaticProbe) IsEnrolled(context.Context) (bool, error) {
	return p.Enrolled, p.Err
}

// SupportedModalities implements CapabilityProbe.
func (p *StaticProbe) SupportedModalities(context.Context) ([]BiometricModality, error) {
	return p.Modalities, p.Err
}

// Challenge implements CapabilityProbe.
func (p *StaticProbe) Challenge(context.Context, string) (ChallengeResult, error) {
	if p.Err != nil {
		return ChallengeResult{}, p.Err
	}
	return ChallengeResult{OK: p.ChallengeOK, Reason: p.ChallengeReason}, nil
}
