package usecase

import (
	"context"
	"log/slog"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type (
	BookmarkListInput struct {
		Size int32
		Page int32
	}

	BookmarkListOutput struct {
		Page  int32
		Size  int32
		Total int64
		Posts []entity.Post
	}
)

func (s *Usecase) BookmarkList(ctx context.Context, in BookmarkListInput) (*BookmarkListOutput, error) {
	ctx, span := s.startSpan(ctx, "BookmarkList")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}
	page := max(in.Page, 1)

	posts, total, err := s.repoDB.GetBookmarkedPosts(ctx, clm.UserID, in.Size, (page-1)*in.Size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list bookmarked posts", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.fillViewCounts(ctx, posts)

	return &BookmarkListOutput{
		Page:  page,
		Size:  in.Size,
		Total: total,
		Posts: posts,
	}, nil
}
