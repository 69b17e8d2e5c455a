package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type (
	CommentHistoryInput struct {
		CommentID int64 `validate:"required,gt=0"`
	}

	CommentHistoryOutput struct {
		Edits []entity.CommentEdit
	}
)

// CommentHistory lists the superseded bodies of an edited comment, oldest
// first.
func (s *Usecase) CommentHistory(ctx context.Context, in CommentHistoryInput) (*CommentHistoryOutput, error) {
	ctx, span := s.startSpan(ctx, "CommentHistory")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	comment, err := s.repoDB.GetCommentByID(ctx, in.CommentID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get comment", "comment_id", in.CommentID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if comment.Deleted {
		return nil, goerror.NewBusiness("Comment not found", goerror.CodeNotFound)
	}

	edits, err := s.repoDB.GetCommentEdits(ctx, comment.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list comment edits", "comment_id", comment.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CommentHistoryOutput{Edits: edits}, nil
}
