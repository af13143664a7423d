// Package store provides durable key/value persistence for the credential
// manager: the serialized session, the enrolled-factor flags, and the PIN
// secret. Each backend guarantees atomicity per key; the engine writes keys
// independently and tolerates partial writes across keys.
package store

import (
	"context"
	"errors"
)

// ErrNotFound reports an absent key. Backends return it unwrapped or wrapped
// so callers can test with errors.Is.
var ErrNotFound = errors.New("store: key not found")

// Store is the credential store contract. Get returns ErrNotFound for absent
// keys; any other error is an I/O failure the caller treats as terminal for
// the operation.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
