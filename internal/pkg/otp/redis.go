package otp

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists challenges in redis. It supports both optional
// capabilities, so a Manager on top of it always preserves remaining ttl
// atomically.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Set(ctx context.Context, key string, ch Challenge, ttl time.Duration) error {
	raw, err := json.Marshal(ch)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, raw, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Challenge, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ch Challenge
	if err := json.Unmarshal(raw, &ch); err != nil {
		return nil, err
	}

	return &ch, nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// SetKeepTTL replaces the value only if the key still exists, keeping its
// expiry untouched (SET XX KEEPTTL).
func (s *RedisStore) SetKeepTTL(ctx context.Context, key string, ch Challenge) (bool, error) {
	raw, err := json.Marshal(ch)
	if err != nil {
		return false, err
	}

	err = s.client.SetArgs(ctx, key, raw, redis.SetArgs{KeepTTL: true, Mode: "XX"}).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// RemainingTTL reports the key's ttl. A key without expiry yields
// known=false; a missing key yields a zero ttl.
func (s *RedisStore) RemainingTTL(ctx context.Context, key string) (time.Duration, bool, error) {
	d, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, false, err
	}

	// go-redis maps the redis replies -2 (no key) and -1 (no expiry)
	// to negative durations in seconds.
	switch {
	case d == -2*time.Second:
		return 0, true, nil
	case d == -1*time.Second:
		return 0, false, nil
	}

	return d, true, nil
}
