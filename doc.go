// Package authvault implements a client-side credential and session manager:
// a single principal registers once, then enrolls additional authentication
// factors (numeric PIN, device biometric, time-based one-time code) and
// combines them at login time.
//
// The [Engine] owns the in-memory session and the enrolled-factor flags and is
// the sole writer of the durable credential store. Construct it through
// [Builder.Build], then boot it in two phases: [Engine.LoadPersistedState]
// restores the last persisted session and factor flags, and
// [Engine.ProbeCapabilities] queries the device biometric probe. Screen
// rendering, theming, and the platform biometric hardware itself are external
// collaborators; the engine only consumes their results.
package authvault
