package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type CommentDeleteInput struct {
	CommentID int64 `validate:"required,gt=0"`
}

// CommentDelete soft-deletes a comment. The row stays so replies keep
// their anchor; listings blank the body.
func (s *Usecase) CommentDelete(ctx context.Context, in CommentDeleteInput) error {
	ctx, span := s.startSpan(ctx, "CommentDelete")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	comment, err := s.getOwnedComment(ctx, in.CommentID, clm.UserID)
	if err != nil {
		return err
	}

	err = s.repoDB.MarkCommentDeleted(ctx, comment.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete comment", "comment_id", comment.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
