package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type (
	BookmarkToggleInput struct {
		Slug string `validate:"required"`
	}

	BookmarkToggleOutput struct {
		Bookmarked bool
	}
)

func (s *Usecase) BookmarkToggle(ctx context.Context, in BookmarkToggleInput) (*BookmarkToggleOutput, error) {
	ctx, span := s.startSpan(ctx, "BookmarkToggle")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	post, err := s.getEngageablePost(ctx, in.Slug)
	if err != nil {
		return nil, err
	}

	on, err := s.repoDB.ToggleBookmark(ctx, clm.UserID, post.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo toggle bookmark", "post_id", post.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &BookmarkToggleOutput{Bookmarked: on}, nil
}

// getEngageablePost loads a post that may be bookmarked, favourited or
// commented on, which means it must be published.
func (s *Usecase) getEngageablePost(ctx context.Context, slug string) (*entity.Post, error) {
	post, err := s.repoDB.GetPostBySlug(ctx, slug)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post by slug", "slug", slug, "error", err)
		return nil, goerror.NewServer(err)
	}

	if post.Status.Ensure() != entity.PostStatusPublished {
		return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}

	return post, nil
}
