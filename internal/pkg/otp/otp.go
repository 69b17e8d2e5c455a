package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkpress/inkpress/internal/pkg/hash"
)

const keyPrefix = "otp:"

// Config holds the process-wide knobs shared by every scope. Construct it
// once at startup and pass it to NewManager.
type Config struct {
	CodeLength  int
	TTL         time.Duration
	MaxAttempts int
}

// DefaultConfig returns the standard 6-digit, 5-minute, 5-attempt setup.
func DefaultConfig() Config {
	return Config{
		CodeLength:  6,
		TTL:         5 * time.Minute,
		MaxAttempts: 5,
	}
}

// Validate rejects non-positive values so a bad deployment fails at
// startup instead of at the first issued code.
func (c Config) Validate() error {
	if c.CodeLength <= 0 {
		return fmt.Errorf("otp: code length must be positive, got %d", c.CodeLength)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("otp: ttl must be positive, got %s", c.TTL)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("otp: max attempts must be positive, got %d", c.MaxAttempts)
	}

	return nil
}

// VerifyResult is the verdict of a verification call. ExpiredOrExceeded
// deliberately collapses "never existed", "already consumed", "expired"
// and "attempts exhausted" into one outcome so a caller without the token
// learns nothing about whether it ever existed.
type VerifyResult struct {
	OK                bool
	ExpiredOrExceeded bool
	OwnerID           *int64
	Meta              map[string]any
}

// touchStrategy is how attempt bumps are written back without extending
// the challenge's life. Picked once at construction from the store's
// capabilities, best to worst.
type touchStrategy int

const (
	touchKeepTTL touchStrategy = iota // atomic replace, expiry untouched
	touchReadTTL                      // read remaining ttl, rewrite with it
	touchReset                        // rewrite with the full ttl
)

// Manager issues scoped one-time codes and verifies them against the
// store. It holds no mutable state, so a single instance is safe for any
// number of concurrent callers.
type Manager struct {
	store  Store
	hasher hash.Hash
	cfg    Config
	touch  touchStrategy
}

// NewManager validates cfg and probes the store for the strongest
// available ttl-preserving write.
func NewManager(store Store, hasher hash.Hash, cfg Config) (*Manager, error) {
	if store == nil {
		return nil, errors.New("otp: store is required")
	}
	if hasher == nil {
		return nil, errors.New("otp: hasher is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	touch := touchReset
	if _, ok := store.(TTLReader); ok {
		touch = touchReadTTL
	}
	if _, ok := store.(KeepTTLSetter); ok {
		touch = touchKeepTTL
	}

	return &Manager{
		store:  store,
		hasher: hasher,
		cfg:    cfg,
		touch:  touch,
	}, nil
}

// IssueOption tweaks a single issuance.
type IssueOption func(*issueOptions)

type issueOptions struct {
	ttl time.Duration
}

// WithTTL overrides the configured ttl for one challenge.
func WithTTL(ttl time.Duration) IssueOption {
	return func(o *issueOptions) {
		o.ttl = ttl
	}
}

// Issue mints a new challenge under scope and returns the token that
// addresses it plus the plaintext code, which is never stored and must be
// delivered to the user out-of-band. Issuing never disturbs any other
// outstanding challenge, including others for the same owner.
func (m *Manager) Issue(
	ctx context.Context,
	scope string,
	ownerID *int64,
	meta map[string]any,
	opts ...IssueOption,
) (token, code string, err error) {
	o := issueOptions{ttl: m.cfg.TTL}
	for _, opt := range opts {
		opt(&o)
	}

	code, err = m.generateCode()
	if err != nil {
		return "", "", err
	}

	codeHash, err := m.hasher.Hash(code)
	if err != nil {
		return "", "", fmt.Errorf("otp: hash code: %w", err)
	}

	token = strings.ReplaceAll(uuid.NewString(), "-", "")

	if meta == nil {
		meta = map[string]any{}
	}

	ch := Challenge{
		OwnerID:  ownerID,
		Meta:     meta,
		CodeHash: string(codeHash),
		Attempts: 0,
	}
	if err := m.store.Set(ctx, storageKey(scope, token), ch, o.ttl); err != nil {
		return "", "", err
	}

	return token, code, nil
}

// Verify checks a submitted code against the challenge at (scope, token).
// On a match with consume=true the challenge is deleted, enforcing single
// use. On a mismatch the attempt counter is bumped while preserving the
// remaining ttl, and OwnerID/Meta are still returned so the caller can
// log context; OK=false must gate every side effect. Store failures
// propagate as errors and are never reported as expiry.
func (m *Manager) Verify(
	ctx context.Context,
	scope, token, code string,
	consume bool,
) (*VerifyResult, error) {
	key := storageKey(scope, token)

	ch, err := m.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ch == nil {
		return &VerifyResult{ExpiredOrExceeded: true, Meta: map[string]any{}}, nil
	}

	if ch.Attempts >= m.cfg.MaxAttempts {
		if err := m.store.Delete(ctx, key); err != nil {
			return nil, err
		}

		return &VerifyResult{ExpiredOrExceeded: true, Meta: map[string]any{}}, nil
	}

	if !m.hasher.Verify(ch.CodeHash, code) {
		ch.Attempts++
		if err := m.touchPreservingTTL(ctx, key, *ch); err != nil {
			return nil, err
		}

		return &VerifyResult{OwnerID: ch.OwnerID, Meta: ch.Meta}, nil
	}

	if consume {
		if err := m.store.Delete(ctx, key); err != nil {
			return nil, err
		}
	}

	return &VerifyResult{OK: true, OwnerID: ch.OwnerID, Meta: ch.Meta}, nil
}

// touchPreservingTTL writes back a mutated challenge without extending
// its expiry. The write is a plain read-modify-write: two concurrent
// failed attempts may both record attempts=N+1, which only undercounts
// and never revives an exhausted or expired challenge.
func (m *Manager) touchPreservingTTL(ctx context.Context, key string, ch Challenge) error {
	switch m.touch {
	case touchKeepTTL:
		// Existing expiry carries over; a false result means the key
		// expired between read and write, which needs no repair.
		_, err := m.store.(KeepTTLSetter).SetKeepTTL(ctx, key, ch)

		return err
	case touchReadTTL:
		ttl, known, err := m.store.(TTLReader).RemainingTTL(ctx, key)
		if err != nil {
			return err
		}
		if known && ttl <= 0 {
			return nil
		}
		if !known {
			ttl = m.cfg.TTL
		}

		return m.store.Set(ctx, key, ch, ttl)
	default:
		// Weakest fallback, resets the clock to the full ttl. Accepted
		// precision loss when the backend offers nothing better.
		return m.store.Set(ctx, key, ch, m.cfg.TTL)
	}
}

func (m *Manager) generateCode() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(m.cfg.CodeLength)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}

	s := n.String()
	if pad := m.cfg.CodeLength - len(s); pad > 0 {
		s = strings.Repeat("0", pad) + s
	}

	return s, nil
}

func storageKey(scope, token string) string {
	return keyPrefix + scope + ":" + token
}
