package otp

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// startRedis boots a throwaway redis container scoped to one test.
func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in -short mode")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)

	client := redis.NewClient(opt)
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}
	})

	return client
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store := NewRedisStore(startRedis(t))
	ctx := context.Background()

	ownerID := int64(42)
	ch := Challenge{
		OwnerID:  &ownerID,
		Meta:     map[string]any{"email": "writer@inkpress.dev"},
		CodeHash: "argon2id$hash",
		Attempts: 1,
	}

	require.NoError(t, store.Set(ctx, "otp:register:token-1", ch, time.Minute))

	got, err := store.Get(ctx, "otp:register:token-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ch, *got)

	missing, err := store.Get(ctx, "otp:register:absent")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Delete(ctx, "otp:register:token-1"))
	got, err = store.Get(ctx, "otp:register:token-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting an absent key is not an error
	assert.NoError(t, store.Delete(ctx, "otp:register:token-1"))
}

func TestRedisStoreSetKeepTTL(t *testing.T) {
	store := NewRedisStore(startRedis(t))
	ctx := context.Background()

	ch := Challenge{Meta: map[string]any{}, CodeHash: "h", Attempts: 0}
	require.NoError(t, store.Set(ctx, "otp:mfa:token-1", ch, time.Minute))

	ch.Attempts = 1
	replaced, err := store.SetKeepTTL(ctx, "otp:mfa:token-1", ch)
	require.NoError(t, err)
	assert.True(t, replaced)

	got, err := store.Get(ctx, "otp:mfa:token-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Attempts)

	// the expiry set by the original write must survive the replace
	ttl, known, err := store.RemainingTTL(ctx, "otp:mfa:token-1")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Greater(t, ttl, 50*time.Second)
	assert.LessOrEqual(t, ttl, time.Minute)

	replaced, err = store.SetKeepTTL(ctx, "otp:mfa:absent", ch)
	require.NoError(t, err)
	assert.False(t, replaced)
}

func TestRedisStoreRemainingTTL(t *testing.T) {
	client := startRedis(t)
	store := NewRedisStore(client)
	ctx := context.Background()

	// missing key: redis replies -2, reported as a known zero ttl
	ttl, known, err := store.RemainingTTL(ctx, "otp:register:absent")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Zero(t, ttl)

	// key without expiry: redis replies -1, reported as unknown
	require.NoError(t, client.Set(ctx, "otp:register:pinned", "{}", 0).Err())
	ttl, known, err = store.RemainingTTL(ctx, "otp:register:pinned")
	require.NoError(t, err)
	assert.False(t, known)
	assert.Zero(t, ttl)

	require.NoError(t, store.Set(ctx, "otp:register:ticking", Challenge{Meta: map[string]any{}}, time.Minute))
	ttl, known, err = store.RemainingTTL(ctx, "otp:register:ticking")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Greater(t, ttl, 50*time.Second)
}

func TestManagerOnRedisStore(t *testing.T) {
	store := NewRedisStore(startRedis(t))
	ctx := context.Background()

	m, err := NewManager(store, testHasher(), Config{CodeLength: 6, TTL: time.Minute, MaxAttempts: 2})
	require.NoError(t, err)
	assert.Equal(t, touchKeepTTL, m.touch)

	ownerID := int64(7)
	token, code, err := m.Issue(ctx, "register", &ownerID, map[string]any{"email": "writer@inkpress.dev"})
	require.NoError(t, err)
	require.Len(t, code, 6)

	wrong := "000000"
	if wrong == code {
		wrong = "111111"
	}

	res, err := m.Verify(ctx, "register", token, wrong, true)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.False(t, res.ExpiredOrExceeded)
	require.NotNil(t, res.OwnerID)
	assert.Equal(t, ownerID, *res.OwnerID)

	// the failed attempt must not extend the challenge's life
	ttl, known, err := store.RemainingTTL(ctx, storageKey("register", token))
	require.NoError(t, err)
	assert.True(t, known)
	assert.LessOrEqual(t, ttl, time.Minute)
	assert.Greater(t, ttl, 50*time.Second)

	res, err = m.Verify(ctx, "register", token, code, true)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, "writer@inkpress.dev", res.Meta["email"])

	// consumed on success: a replay reads as expired
	res, err = m.Verify(ctx, "register", token, code, true)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.True(t, res.ExpiredOrExceeded)
}
