package service

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when no value exists for a session key,
// whether it never existed or its TTL elapsed. Callers treat both the same.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore is per-visitor ephemeral key/value state with idle-timeout
// semantics. Keys are opaque session identifiers; values are small encoded
// blobs owned by exactly one visitor.
type SessionStore interface {
	// Get returns the value stored under key, or ErrSessionNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, resetting the TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the value under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Update runs fn as an atomic read-modify-write on one key, so that
	// compare-then-clear on a one-time code is a single critical section.
	// fn receives the current value (nil when absent); returning a nil value
	// deletes the key, any other value is stored with the given TTL. An error
	// from fn aborts the update and is returned unchanged.
	Update(ctx context.Context, key string, ttl time.Duration, fn func(current []byte) ([]byte, error)) error
}
