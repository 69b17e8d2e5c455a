package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type (
	PostListInput struct {
		Search string // value already trimmed
		Size   int32
		Page   int32
	}

	PostListOutput struct {
		Page  int32
		Size  int32
		Total int64
		Posts []entity.Post
	}
)

// PostList serves the public feed of published posts, newest first, with
// optional title/body search. Pages come from the redis cache when a post
// write has not invalidated them; view counters are merged in afterwards
// so cached pages never pin a stale count.
func (s *Usecase) PostList(ctx context.Context, in PostListInput) (*PostListOutput, error) {
	ctx, span := s.startSpan(ctx, "PostList")
	defer span.End()

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}
	page := max(in.Page, 1)

	cacheKey := fmt.Sprintf("%d:%d:%s", page, in.Size, strings.ToLower(in.Search))
	posts, total, hit, err := s.repoCache.GetPostList(ctx, cacheKey)
	if err != nil {
		slog.WarnContext(ctx, "failed to read post list cache", "error", err)
	}

	if !hit {
		filter := entity.PostListFilterData{
			Search:   in.Search,
			Statuses: []int16{int16(entity.PostStatusPublished)},
			Size:     in.Size,
			Page:     (page - 1) * in.Size,
		}
		filter.IsFilterByStatus = true
		if in.Search != "" {
			filter.IsFilterBySearch = true
		}

		posts, total, err = s.repoDB.GetPostList(ctx, filter)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo list posts", "error", err)
			return nil, goerror.NewServer(err)
		}

		ttl := s.cfg.GetSecond("modules.blog.list_cache_ttl_seconds")
		if err := s.repoCache.SetPostList(ctx, cacheKey, posts, total, ttl); err != nil {
			slog.WarnContext(ctx, "failed to write post list cache", "error", err)
		}
	}

	s.fillViewCounts(ctx, posts)

	return &PostListOutput{
		Page:  page,
		Size:  in.Size,
		Total: total,
		Posts: posts,
	}, nil
}
