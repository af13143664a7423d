// Package session defines the authenticated session model, the per-install
// factor flags, and their versioned wire encoding for the credential store.
package session
