package otp

import (
	"context"
	"time"
)

// Challenge is the stored state of one outstanding code.
type Challenge struct {
	OwnerID  *int64         `json:"owner_id,omitempty"`
	Meta     map[string]any `json:"meta"`
	CodeHash string         `json:"code_hash"`
	Attempts int            `json:"attempts"`
}

// Store is the key-value persistence consumed by the Manager. Keys under
// the "otp:" prefix belong to this package and nothing else.
type Store interface {
	// Set writes the challenge, replacing any existing value, expiring
	// after ttl.
	Set(ctx context.Context, key string, ch Challenge, ttl time.Duration) error
	// Get returns the current challenge or (nil, nil) when the key was
	// never set, expired, or deleted.
	Get(ctx context.Context, key string) (*Challenge, error)
	// Delete removes the challenge. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// KeepTTLSetter is an optional Store capability: atomically replace the
// value at key without touching its expiry. Returns false when the key no
// longer exists.
type KeepTTLSetter interface {
	SetKeepTTL(ctx context.Context, key string, ch Challenge) (bool, error)
}

// TTLReader is an optional Store capability: report the remaining
// time-to-live of a key. The bool is false when the backend cannot tell.
type TTLReader interface {
	RemainingTTL(ctx context.Context, key string) (time.Duration, bool, error)
}
