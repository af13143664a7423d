package password

import (
	"strings"
	"testing"
)

func fastConfig() Config {
	return Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
}

func newFastHasher(t *testing.T) *Argon2 {
	t.Helper()
	h, err := NewArgon2(fastConfig())
	if err != nil {
		t.Fatalf("NewArgon2 failed: %v", err)
	}
	return h
}

func TestHashAndVerify(t *testing.T) {
	h := newFastHasher(t)

	encoded, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=") {
		t.Fatalf("unexpected PHC prefix: %q", encoded)
	}
	if strings.Contains(encoded, "password123") {
		t.Fatal("encoded hash leaks the plaintext")
	}

	ok, err := h.Verify("password123", encoded)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Fatal("correct password did not verify")
	}

	ok, err = h.Verify("password124", encoded)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if ok {
		t.Fatal("wrong password verified")
	}
}

func TestHashSaltsEveryCall(t *testing.T) {
	h := newFastHasher(t)

	first, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestVerifyUsesEmbeddedParameters(t *testing.T) {
	strong, err := NewArgon2(Config{
		Memory:      16 * 1024,
		Time:        2,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	})
	if err != nil {
		t.Fatalf("NewArgon2 failed: %v", err)
	}
	encoded, err := strong.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	// A hasher with different costs still verifies using the costs encoded
	// in the PHC string.
	ok, err := newFastHasher(t).Verify("password123", encoded)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !ok {
		t.Fatal("hash with different costs did not verify")
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	h := newFastHasher(t)
	encoded, err := h.Hash("password123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	cases := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not phc", "plain-text"},
		{"wrong algorithm", strings.Replace(encoded, "argon2id", "argon2i", 1)},
		{"bad version", strings.Replace(encoded, "v=19", "v=13", 1)},
		{"missing segments", "$argon2id$v=19$m=8192,t=1,p=1"},
		{"bad salt encoding", "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaGhhc2hoYXNoaGFzaA=="},
		{"zero parallelism", "$argon2id$v=19$m=8192,t=1,p=0$c2FsdHNhbHRzYWx0c2FsdA==$aGFzaGhhc2hoYXNoaGFzaA=="},
		{"unknown parameter", "$argon2id$v=19$m=8192,t=1,p=1,x=9$c2FsdHNhbHRzYWx0c2FsdA==$aGFzaGhhc2hoYXNoaGFzaA=="},
	}
	for _, tc := range cases {
		if _, err := h.Verify("password123", tc.encoded); err == nil {
			t.Errorf("%s: Verify accepted %q", tc.name, tc.encoded)
		}
	}
}

func TestNewArgon2RejectsWeakConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"low memory", func(c *Config) { c.Memory = 1024 }},
		{"zero time", func(c *Config) { c.Time = 0 }},
		{"zero parallelism", func(c *Config) { c.Parallelism = 0 }},
		{"short salt", func(c *Config) { c.SaltLength = 8 }},
		{"short key", func(c *Config) { c.KeyLength = 8 }},
	}
	for _, tc := range cases {
		cfg := fastConfig()
		tc.mutate(&cfg)
		if _, err := NewArgon2(cfg); err == nil {
			t.Errorf("%s: NewArgon2 accepted %+v", tc.name, cfg)
		}
	}
}
