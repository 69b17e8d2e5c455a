package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/pkg/hash"
)

type memClock struct {
	now time.Time
}

func newMemClock() *memClock {
	return &memClock{now: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)}
}

func (c *memClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type memItem struct {
	ch       Challenge
	deadline time.Time
}

// memStore is an in-memory Store whose expiry follows a manual clock. It
// implements both optional capabilities; the wrapper types below strip
// them off to exercise the fallback strategies.
type memStore struct {
	clock *memClock
	items map[string]memItem
}

func newMemStore(clock *memClock) *memStore {
	return &memStore{clock: clock, items: map[string]memItem{}}
}

func (s *memStore) Set(_ context.Context, key string, ch Challenge, ttl time.Duration) error {
	s.items[key] = memItem{ch: ch, deadline: s.clock.now.Add(ttl)}

	return nil
}

func (s *memStore) Get(_ context.Context, key string) (*Challenge, error) {
	item, ok := s.items[key]
	if !ok || !s.clock.now.Before(item.deadline) {
		delete(s.items, key)

		return nil, nil
	}

	ch := item.ch

	return &ch, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	delete(s.items, key)

	return nil
}

func (s *memStore) SetKeepTTL(_ context.Context, key string, ch Challenge) (bool, error) {
	item, ok := s.items[key]
	if !ok || !s.clock.now.Before(item.deadline) {
		return false, nil
	}

	item.ch = ch
	s.items[key] = item

	return true, nil
}

func (s *memStore) RemainingTTL(_ context.Context, key string) (time.Duration, bool, error) {
	item, ok := s.items[key]
	if !ok || !s.clock.now.Before(item.deadline) {
		return 0, true, nil
	}

	return item.deadline.Sub(s.clock.now), true, nil
}

func (s *memStore) deadlineOf(t *testing.T, key string) time.Time {
	t.Helper()

	item, ok := s.items[key]
	require.True(t, ok, "challenge %q not in store", key)

	return item.deadline
}

// readTTLStore hides SetKeepTTL so the manager falls back to the
// read-remaining-ttl-then-rewrite strategy.
type readTTLStore struct {
	inner *memStore
}

func (s *readTTLStore) Set(ctx context.Context, key string, ch Challenge, ttl time.Duration) error {
	return s.inner.Set(ctx, key, ch, ttl)
}

func (s *readTTLStore) Get(ctx context.Context, key string) (*Challenge, error) {
	return s.inner.Get(ctx, key)
}

func (s *readTTLStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *readTTLStore) RemainingTTL(ctx context.Context, key string) (time.Duration, bool, error) {
	return s.inner.RemainingTTL(ctx, key)
}

// basicStore hides both capabilities so the manager falls back to
// rewriting with the full ttl.
type basicStore struct {
	inner *memStore
}

func (s *basicStore) Set(ctx context.Context, key string, ch Challenge, ttl time.Duration) error {
	return s.inner.Set(ctx, key, ch, ttl)
}

func (s *basicStore) Get(ctx context.Context, key string) (*Challenge, error) {
	return s.inner.Get(ctx, key)
}

func (s *basicStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

type failStore struct {
	err error
}

func (s *failStore) Set(context.Context, string, Challenge, time.Duration) error {
	return s.err
}

func (s *failStore) Get(context.Context, string) (*Challenge, error) {
	return nil, s.err
}

func (s *failStore) Delete(context.Context, string) error {
	return s.err
}

func testHasher() hash.Hash {
	return hash.NewArgon2id("test-pepper")
}

func newTestManager(t *testing.T, cfg Config) (*Manager, *memStore, *memClock) {
	t.Helper()

	clock := newMemClock()
	store := newMemStore(clock)
	m, err := NewManager(store, testHasher(), cfg)
	require.NoError(t, err)

	return m, store, clock
}

func TestNewManagerConfigValidation(t *testing.T) {
	store := newMemStore(newMemClock())

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero code length", Config{CodeLength: 0, TTL: time.Minute, MaxAttempts: 5}},
		{"negative code length", Config{CodeLength: -6, TTL: time.Minute, MaxAttempts: 5}},
		{"zero ttl", Config{CodeLength: 6, TTL: 0, MaxAttempts: 5}},
		{"zero max attempts", Config{CodeLength: 6, TTL: time.Minute, MaxAttempts: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewManager(store, testHasher(), tt.cfg)
			assert.Error(t, err)
		})
	}

	t.Run("nil store", func(t *testing.T) {
		_, err := NewManager(nil, testHasher(), DefaultConfig())
		assert.Error(t, err)
	})

	t.Run("nil hasher", func(t *testing.T) {
		_, err := NewManager(store, nil, DefaultConfig())
		assert.Error(t, err)
	})
}

func TestNewManagerStrategySelection(t *testing.T) {
	clock := newMemClock()
	inner := newMemStore(clock)

	m, err := NewManager(inner, testHasher(), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, touchKeepTTL, m.touch)

	m, err = NewManager(&readTTLStore{inner: inner}, testHasher(), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, touchReadTTL, m.touch)

	m, err = NewManager(&basicStore{inner: inner}, testHasher(), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, touchReset, m.touch)
}

func TestIssueCodeFormat(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		cfg := DefaultConfig()
		cfg.CodeLength = length
		m, _, _ := newTestManager(t, cfg)

		for range 32 {
			_, code, err := m.Issue(t.Context(), "register", nil, nil)
			require.NoError(t, err)
			require.Len(t, code, length)
			for _, r := range code {
				require.True(t, r >= '0' && r <= '9', "code %q has non-digit %q", code, r)
			}
		}
	}
}

func TestIssueTokensAreUnique(t *testing.T) {
	m, _, _ := newTestManager(t, DefaultConfig())

	seen := map[string]bool{}
	for range 64 {
		token, _, err := m.Issue(t.Context(), "register", nil, nil)
		require.NoError(t, err)
		require.False(t, seen[token], "token %q issued twice", token)
		seen[token] = true
	}
}

func TestVerifyScopeIsolation(t *testing.T) {
	m, _, _ := newTestManager(t, DefaultConfig())

	token, code, err := m.Issue(t.Context(), "register", nil, map[string]any{"email": "a@b.com"})
	require.NoError(t, err)

	res, err := m.Verify(t.Context(), "pwd_reset", token, code, true)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.True(t, res.ExpiredOrExceeded)

	// The challenge under its own scope is untouched by the miss above.
	res, err = m.Verify(t.Context(), "register", token, code, true)
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestVerifyConsumesChallenge(t *testing.T) {
	m, _, _ := newTestManager(t, DefaultConfig())

	token, code, err := m.Issue(t.Context(), "register", nil, map[string]any{"email": "a@b.com"})
	require.NoError(t, err)

	res, err := m.Verify(t.Context(), "register", token, code, true)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.False(t, res.ExpiredOrExceeded)
	assert.Nil(t, res.OwnerID)
	assert.Equal(t, map[string]any{"email": "a@b.com"}, res.Meta)

	// Same token, same correct code: already consumed.
	res, err = m.Verify(t.Context(), "register", token, code, true)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.True(t, res.ExpiredOrExceeded)
}

func TestVerifyWithoutConsumeKeepsChallenge(t *testing.T) {
	m, _, _ := newTestManager(t, DefaultConfig())

	token, code, err := m.Issue(t.Context(), "mfa", nil, nil)
	require.NoError(t, err)

	for range 2 {
		res, err := m.Verify(t.Context(), "mfa", token, code, false)
		require.NoError(t, err)
		assert.True(t, res.OK)
	}
}

func TestVerifyMismatchReturnsOwnerAndMeta(t *testing.T) {
	m, store, _ := newTestManager(t, DefaultConfig())

	ownerID := int64(42)
	meta := map[string]any{"new_email": "new@b.com"}
	token, code, err := m.Issue(t.Context(), "email_change", &ownerID, meta)
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}

	res, err := m.Verify(t.Context(), "email_change", token, wrong, true)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.False(t, res.ExpiredOrExceeded)
	require.NotNil(t, res.OwnerID)
	assert.Equal(t, ownerID, *res.OwnerID)
	assert.Equal(t, meta, res.Meta)

	stored, err := store.Get(t.Context(), storageKey("email_change", token))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Attempts)
}

func TestVerifyAttemptExhaustion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxAttempts = 2
	m, store, _ := newTestManager(t, cfg)

	token, code, err := m.Issue(t.Context(), "mfa", nil, nil)
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}

	res, err := m.Verify(t.Context(), "mfa", token, wrong, true)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.False(t, res.ExpiredOrExceeded)

	res, err = m.Verify(t.Context(), "mfa", token, wrong, true)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.False(t, res.ExpiredOrExceeded)

	// Budget spent: even the correct code is refused and the challenge
	// is gone for good.
	res, err = m.Verify(t.Context(), "mfa", token, code, true)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.True(t, res.ExpiredOrExceeded)

	stored, err := store.Get(t.Context(), storageKey("mfa", token))
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestVerifyAfterExpiry(t *testing.T) {
	m, _, clock := newTestManager(t, DefaultConfig())

	token, code, err := m.Issue(t.Context(), "register", nil, nil)
	require.NoError(t, err)

	clock.Advance(DefaultConfig().TTL + time.Second)

	res, err := m.Verify(t.Context(), "register", token, code, true)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.True(t, res.ExpiredOrExceeded)
}

func TestFailedAttemptDoesNotExtendTTL(t *testing.T) {
	t.Run("keep ttl", func(t *testing.T) {
		m, store, clock := newTestManager(t, DefaultConfig())
		assertDeadlineAfterFailure(t, m, store, clock, false)
	})

	t.Run("read ttl then rewrite", func(t *testing.T) {
		clock := newMemClock()
		store := newMemStore(clock)
		m, err := NewManager(&readTTLStore{inner: store}, testHasher(), DefaultConfig())
		require.NoError(t, err)
		assertDeadlineAfterFailure(t, m, store, clock, false)
	})

	t.Run("full reset fallback", func(t *testing.T) {
		clock := newMemClock()
		store := newMemStore(clock)
		m, err := NewManager(&basicStore{inner: store}, testHasher(), DefaultConfig())
		require.NoError(t, err)
		// The weakest store cannot preserve ttl; the deadline moves to
		// now + full ttl, never further.
		assertDeadlineAfterFailure(t, m, store, clock, true)
	})
}

func assertDeadlineAfterFailure(t *testing.T, m *Manager, store *memStore, clock *memClock, resetExpected bool) {
	t.Helper()

	token, code, err := m.Issue(t.Context(), "mfa", nil, nil)
	require.NoError(t, err)
	key := storageKey("mfa", token)
	before := store.deadlineOf(t, key)

	clock.Advance(2 * time.Minute)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}
	res, err := m.Verify(t.Context(), "mfa", token, wrong, true)
	require.NoError(t, err)
	require.False(t, res.OK)

	after := store.deadlineOf(t, key)
	if resetExpected {
		assert.Equal(t, clock.now.Add(DefaultConfig().TTL), after)
	} else {
		assert.Equal(t, before, after, "failed attempt must not move the deadline")
	}
}

func TestOwnerAndMetaRoundTrip(t *testing.T) {
	m, _, _ := newTestManager(t, DefaultConfig())

	ownerID := int64(7)
	meta := map[string]any{
		"email":     "writer@inkpress.dev",
		"full_name": "Ada Writer",
		"nested":    map[string]any{"k": "v"},
	}

	token, code, err := m.Issue(t.Context(), "register", &ownerID, meta)
	require.NoError(t, err)

	res, err := m.Verify(t.Context(), "register", token, code, true)
	require.NoError(t, err)
	require.True(t, res.OK)
	require.NotNil(t, res.OwnerID)
	assert.Equal(t, ownerID, *res.OwnerID)
	assert.Equal(t, meta, res.Meta)
}

func TestIssueDoesNotDisturbOtherChallenges(t *testing.T) {
	m, _, _ := newTestManager(t, DefaultConfig())

	ownerID := int64(9)
	token1, code1, err := m.Issue(t.Context(), "mfa", &ownerID, nil)
	require.NoError(t, err)
	token2, _, err := m.Issue(t.Context(), "mfa", &ownerID, nil)
	require.NoError(t, err)
	require.NotEqual(t, token1, token2)

	res, err := m.Verify(t.Context(), "mfa", token1, code1, true)
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestVerifyStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("store down")
	m, err := NewManager(&failStore{err: storeErr}, testHasher(), DefaultConfig())
	require.NoError(t, err)

	res, err := m.Verify(t.Context(), "register", "sometoken", "123456", true)
	require.ErrorIs(t, err, storeErr)
	assert.Nil(t, res, "infrastructure failure must not read as expiry")

	_, _, err = m.Issue(t.Context(), "register", nil, nil)
	require.ErrorIs(t, err, storeErr)
}
