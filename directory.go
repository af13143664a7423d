package authvault

import (
	"sync"

	"github.com/dverbeek/authvault/password"
)

// InMemoryDirectory is a map-backed Directory. The engine is its only
// caller, but the mutex keeps it safe for test harnesses that poke at it
// concurrently.
type InMemoryDirectory struct {
	mu sync.RWMutex
	m  map[string]*Principal
}

// NewInMemoryDirectory returns an empty directory.
func NewInMemoryDirectory() *InMemoryDirectory {
	return &InMemoryDirectory{m: make(map[string]*Principal)}
}

// FindByEmail implements Directory.
func (d *InMemoryDirectory) FindByEmail(email string) (*Principal, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.m[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	c := *p
	return &c, nil
}

// Insert implements Directory.
func (d *InMemoryDirectory) Insert(p *Principal) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.m[p.Email]; exists {
		return ErrDuplicateEmail
	}
	c := *p
	d.m[p.Email] = &c
	return nil
}

// Update implements Directory. Only the display name is mutable; email stays
// the directory key for the principal's lifetime.
func (d *InMemoryDirectory) Update(email string, update ProfileUpdate) (*Principal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.m[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	if update.Name != "" {
		p.Name = update.Name
	}
	c := *p
	return &c, nil
}

// Len reports the number of registered principals.
func (d *InMemoryDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.m)
}

// SeedDemoDirectory returns a directory holding the two canned demo
// principals. Their passwords ("password123" and "teacher123") are hashed
// with hasher before insertion so the directory never holds plaintext.
func SeedDemoDirectory(hasher *password.Argon2) (*InMemoryDirectory, error) {
	d := NewInMemoryDirectory()
	seeds := []struct {
		p        Principal
		password string
	}{
		{Principal{ID: "1", Email: "student@example.com", Name: "Student User", Role: RoleStudent}, "password123"},
		{Principal{ID: "2", Email: "teacher@example.com", Name: "Teacher User", Role: RoleTeacher}, "teacher123"},
	}
	for _, seed := range seeds {
		hash, err := hasher.Hash(seed.password)
		if err != nil {
			return nil, err
		}
		seed.p.PasswordHash = hash
		if err := d.Insert(&seed.p); err != nil {
			return nil, err
		}
	}
	return d, nil
}
