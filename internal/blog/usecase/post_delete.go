package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type PostDeleteInput struct {
	Slug string `validate:"required"`
}

func (s *Usecase) PostDelete(ctx context.Context, in PostDeleteInput) error {
	ctx, span := s.startSpan(ctx, "PostDelete")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	post, err := s.getOwnedPost(ctx, in.Slug, clm.UserID)
	if err != nil {
		return err
	}

	err = s.repoDB.MarkPostDeleted(ctx, post.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete post", "post_id", post.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.invalidatePostListCache(ctx)

	return nil
}
