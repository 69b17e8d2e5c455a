package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type CommentUpdateInput struct {
	CommentID int64  `validate:"required,gt=0"`
	Body      string `validate:"required,max=2000"`
}

// CommentUpdate replaces a comment's body, keeping the superseded body in
// the edit history.
func (s *Usecase) CommentUpdate(ctx context.Context, in CommentUpdateInput) error {
	ctx, span := s.startSpan(ctx, "CommentUpdate")
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

	err = s.repoDB.UpdateCommentBody(ctx, s.uid.Generate(), comment.ID, in.Body)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update comment", "comment_id", comment.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) getOwnedComment(ctx context.Context, commentID, authorID int64) (*entity.Comment, error) {
	comment, err := s.repoDB.GetCommentByID(ctx, commentID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get comment", "comment_id", commentID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if comment.Deleted {
		return nil, goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
	}
	if comment.AuthorID != authorID {
		return nil, goerror.NewBusiness("Only the author can modify this comment", goerror.CodeForbidden)
	}

	return comment, nil
}
