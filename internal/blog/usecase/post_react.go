package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type PostReactInput struct {
	Slug   string `validate:"required"`
	TypeID int64  `validate:"gte=0"` // 0 withdraws the reaction
}

// PostReact records the caller's emoji reaction on a post; a repeat with
// a different type replaces it, a zero type id withdraws it.
func (s *Usecase) PostReact(ctx context.Context, in PostReactInput) error {
	ctx, span := s.startSpan(ctx, "PostReact")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	post, err := s.repoDB.GetPostBySlug(ctx, in.Slug)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post by slug", "slug", in.Slug, "error", err)
		return goerror.NewServer(err)
	}

	if post.Status.Ensure() != entity.PostStatusPublished && post.AuthorID != clm.UserID {
		return goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}

	if in.TypeID == 0 {
		if err := s.repoDB.ClearPostReaction(ctx, post.ID, clm.UserID); err != nil {
			slog.ErrorContext(ctx, "failed to repo clear post reaction", "post_id", post.ID, "error", err)
			return goerror.NewServer(err)
		}

		return nil
	}

	err = s.repoDB.SetPostReaction(ctx, post.ID, clm.UserID, in.TypeID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Reaction type not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo set post reaction", "post_id", post.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
