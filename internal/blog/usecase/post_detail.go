package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/jwt"
)

type (
	PostDetailInput struct {
		Slug string `validate:"required"`
	}

	PostDetailOutput struct {
		Post             entity.Post
		Reactions        []entity.PostReactionCount
		MyReactionTypeID *int64
	}
)

// PostDetail returns one post by slug and bumps its view counter. Drafts
// stay private to their author.
func (s *Usecase) PostDetail(ctx context.Context, in PostDetailInput) (*PostDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "PostDetail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	post, err := s.repoDB.GetPostBySlug(ctx, in.Slug)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post by slug", "slug", in.Slug, "error", err)
		return nil, goerror.NewServer(err)
	}

	clm := jwt.GetAuth(ctx)

	if post.Status.Ensure() != entity.PostStatusPublished {
		if clm == nil || clm.UserID != post.AuthorID {
			// hide the draft's existence from everyone else
			return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
		}
	}

	count, err := s.repoCache.IncrementViewCount(ctx, post.ID)
	if err != nil {
		slog.WarnContext(ctx, "failed to bump post view count", "post_id", post.ID, "error", err)
	} else {
		post.ViewCount = count
	}

	reactions, err := s.repoDB.GetPostReactionCounts(ctx, post.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post reaction counts", "post_id", post.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	var myReaction *int64
	if clm != nil {
		myReaction, err = s.repoDB.GetUserPostReaction(ctx, post.ID, clm.UserID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get user post reaction", "post_id", post.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	return &PostDetailOutput{
		Post:             *post,
		Reactions:        reactions,
		MyReactionTypeID: myReaction,
	}, nil
}
