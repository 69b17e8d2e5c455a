package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/instrument"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	postListPrefix  = "blog:post_list:"
	postListKeysKey = "blog:post_list:keys"
	viewCountPrefix = "blog:views:"
)

// Cache serves the hot read paths: cached list pages that are dropped
// wholesale on any post write, and per-post view counters that only ever
// live in redis.
type Cache struct {
	client *redis.Client
	ins    instrument.Instrumentation
}

func NewCache(client *redis.Client, ins instrument.Instrumentation) *Cache {
	return &Cache{client: client, ins: ins}
}

func (c *Cache) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("blog.outbound.cache").Start(ctx, name)
}

type cachedPostList struct {
	Posts []entity.Post `json:"posts"`
	Total int64         `json:"total"`
}

// GetPostList returns a cached list page, ok=false on miss.
func (c *Cache) GetPostList(ctx context.Context, key string) (posts []entity.Post, total int64, ok bool, err error) {
	ctx, span := c.startSpan(ctx, "GetPostList")
	defer span.End()

	raw, err := c.client.Get(ctx, postListPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, err
	}

	var page cachedPostList
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, 0, false, err
	}

	return page.Posts, page.Total, true, nil
}

// SetPostList stores a list page and tracks its key so invalidation can
// find every outstanding page.
func (c *Cache) SetPostList(ctx context.Context, key string, posts []entity.Post, total int64, ttl time.Duration) error {
	ctx, span := c.startSpan(ctx, "SetPostList")
	defer span.End()

	raw, err := json.Marshal(cachedPostList{Posts: posts, Total: total})
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, postListPrefix+key, raw, ttl)
	pipe.SAdd(ctx, postListKeysKey, key)
	pipe.Expire(ctx, postListKeysKey, ttl)
	_, err = pipe.Exec(ctx)

	return err
}

// InvalidatePostList drops every cached list page. Called on any post
// create, update or delete.
func (c *Cache) InvalidatePostList(ctx context.Context) error {
	ctx, span := c.startSpan(ctx, "InvalidatePostList")
	defer span.End()

	keys, err := c.client.SMembers(ctx, postListKeysKey).Result()
	if err != nil {
		return err
	}

	full := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		full = append(full, postListPrefix+k)
	}
	full = append(full, postListKeysKey)

	return c.client.Del(ctx, full...).Err()
}

// IncrementViewCount bumps and returns the view counter for a post.
func (c *Cache) IncrementViewCount(ctx context.Context, postID int64) (int64, error) {
	ctx, span := c.startSpan(ctx, "IncrementViewCount")
	defer span.End()

	return c.client.Incr(ctx, viewCountPrefix+strconv.FormatInt(postID, 10)).Result()
}

// GetViewCounts fetches the counters for a page of posts in one MGET.
// Posts never viewed simply have no key and count zero.
func (c *Cache) GetViewCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error) {
	ctx, span := c.startSpan(ctx, "GetViewCounts")
	defer span.End()

	if len(postIDs) == 0 {
		return map[int64]int64{}, nil
	}

	keys := make([]string, len(postIDs))
	for i, id := range postIDs {
		keys[i] = viewCountPrefix + strconv.FormatInt(id, 10)
	}

	raws, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64, len(postIDs))
	for i, raw := range raws {
		str, ok := raw.(string)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(str, 10, 64)
		if err != nil {
			continue
		}
		counts[postIDs[i]] = n
	}

	return counts, nil
}
