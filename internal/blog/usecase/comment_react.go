package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type CommentReactInput struct {
	CommentID int64  `validate:"required,gt=0"`
	Reaction  string `validate:"required,oneof=like dislike none"`
}

// CommentReact records the caller's like or dislike on a comment; a
// repeat with a different kind replaces it, "none" withdraws it.
func (s *Usecase) CommentReact(ctx context.Context, in CommentReactInput) error {
	ctx, span := s.startSpan(ctx, "CommentReact")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	comment, err := s.repoDB.GetCommentByID(ctx, in.CommentID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get comment", "comment_id", in.CommentID, "error", err)
		return goerror.NewServer(err)
	}
	if comment.Deleted {
		return goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
	}

	if in.Reaction == "none" {
		if err := s.repoDB.ClearCommentReaction(ctx, comment.ID, clm.UserID); err != nil {
			slog.ErrorContext(ctx, "failed to repo clear comment reaction", "comment_id", comment.ID, "error", err)
			return goerror.NewServer(err)
		}

		return nil
	}

	kind := entity.ParseReactionKind(in.Reaction)
	if err := s.repoDB.SetCommentReaction(ctx, comment.ID, clm.UserID, kind); err != nil {
		slog.ErrorContext(ctx, "failed to repo set comment reaction", "comment_id", comment.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
