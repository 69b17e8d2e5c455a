package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	registerIndexPrefix = "identity:register_index:"
	resetGrantPrefix    = "identity:reset_grant:"
)

// Cache holds the short-lived identity state that never reaches postgres:
// the email to verification-token index for pending registrations, and
// single-use password reset grants.
type Cache struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("identity.outbound.cache").Start(ctx, name)
}

// SetRegisterIndex remembers which verification token is outstanding for
// an email, so a repeated registration reuses the same window.
func (c *Cache) SetRegisterIndex(ctx context.Context, email string, idx entity.RegisterIndex, ttl time.Duration) error {
	ctx, span := c.startSpan(ctx, "SetRegisterIndex")
	defer span.End()

	raw, err := json.Marshal(idx)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, registerIndexPrefix+email, raw, ttl).Err()
}

// GetRegisterIndex returns the outstanding registration for email, or nil
// when none is pending.
func (c *Cache) GetRegisterIndex(ctx context.Context, email string) (*entity.RegisterIndex, error) {
	ctx, span := c.startSpan(ctx, "GetRegisterIndex")
	defer span.End()

	raw, err := c.client.Get(ctx, registerIndexPrefix+email).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var idx entity.RegisterIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, err
	}

	return &idx, nil
}

func (c *Cache) DeleteRegisterIndex(ctx context.Context, email string) error {
	ctx, span := c.startSpan(ctx, "DeleteRegisterIndex")
	defer span.End()

	return c.client.Del(ctx, registerIndexPrefix+email).Err()
}

// PutResetGrant stores a hashed reset grant pointing at a user.
func (c *Cache) PutResetGrant(ctx context.Context, grantHash string, userID int64, ttl time.Duration) error {
	ctx, span := c.startSpan(ctx, "PutResetGrant")
	defer span.End()

	return c.client.Set(ctx, resetGrantPrefix+grantHash, userID, ttl).Err()
}

// TakeResetGrant consumes a grant atomically (GETDEL) and returns the
// user it was minted for. A second take of the same grant finds nothing.
func (c *Cache) TakeResetGrant(ctx context.Context, grantHash string) (int64, bool, error) {
	ctx, span := c.startSpan(ctx, "TakeResetGrant")
	defer span.End()

	raw, err := c.client.GetDel(ctx, resetGrantPrefix+grantHash).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, err
	}

	return userID, true, nil
}
