package session

// Session is the secret-stripped view of a principal held for the current
// run. Exactly one session is live at a time; it exists from a successful
// login, registration, or factor verification until logout, and is persisted
// as the single durable session record (overwritten, never appended).
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Clone returns an independent copy, or nil for a nil session. The engine
// hands clones to consumers so they never hold a live reference.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// MethodFlags records which authentication factors are enrolled.
//
// The flags are installation-global, not tied to the logged-in principal.
// That mirrors the system this replaces; a multi-account deployment would
// need per-principal flags instead.
type MethodFlags struct {
	PIN       bool `json:"pin"`
	Biometric bool `json:"biometric"`
	TwoFactor bool `json:"twoFactor"`
}
