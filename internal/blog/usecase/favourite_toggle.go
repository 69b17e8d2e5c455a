package usecase

import (
	"context"
	"log/slog"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type (
	FavouriteToggleInput struct {
		Slug string `validate:"required"`
	}

	FavouriteToggleOutput struct {
		Favourited bool
	}
)

func (s *Usecase) FavouriteToggle(ctx context.Context, in FavouriteToggleInput) (*FavouriteToggleOutput, error) {
	ctx, span := s.startSpan(ctx, "FavouriteToggle")
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

	on, err := s.repoDB.ToggleFavourite(ctx, clm.UserID, post.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo toggle favourite", "post_id", post.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &FavouriteToggleOutput{Favourited: on}, nil
}
