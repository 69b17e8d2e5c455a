package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/samber/lo"
)

type PostUpdateInput struct {
	Slug        string  `validate:"required"`
	Title       *string `validate:"omitempty,min=3,max=200"`
	Body        *string `validate:"omitempty,min=1"`
	Status      *string `validate:"omitempty,oneof=draft published"`
	CategoryIDs []int64
	Tags        []string `validate:"omitempty,max=10,dive,min=1,max=50"`
}

// PostUpdate edits a post in place. The slug never changes, links to a
// published post keep working across retitles.
func (s *Usecase) PostUpdate(ctx context.Context, in PostUpdateInput) error {
	ctx, span := s.startSpan(ctx, "PostUpdate")
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

	patch := entity.PatchPost{
		ID:    post.ID,
		Title: in.Title,
		Body:  in.Body,
	}
	if in.Body != nil {
		rt := readTimeMinutes(*in.Body)
		patch.ReadTime = &rt
	}
	if in.CategoryIDs != nil {
		patch.CategoryIDs = lo.Uniq(in.CategoryIDs)
	}
	if in.Status != nil {
		status := entity.ParsePostStatus(*in.Status)
		patch.Status = &status
	}
	if in.Tags != nil {
		patch.Tags = s.buildTags(in.Tags)
	}

	err = s.repoDB.UpdatePost(ctx, patch)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update post", "post_id", post.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.invalidatePostListCache(ctx)

	return nil
}
