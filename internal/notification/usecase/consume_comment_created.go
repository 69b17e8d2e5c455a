package usecase

import (
	"context"
	"log/slog"

	"github.com/inkpress/inkpress/internal/notification/entity"
	"github.com/inkpress/inkpress/internal/pkg/valueobject"
)

type (
	ConsumeCommentCreatedInput struct {
		CommentID     int64  `validate:"required,gt=0"`
		PostID        int64  `validate:"required,gt=0"`
		PostSlug      string `validate:"required"`
		PostTitle     string `validate:"required"`
		PostAuthorID  int64  `validate:"required,gt=0"`
		CommenterID   int64  `validate:"required,gt=0"`
		CommenterName string `validate:"required"`
		Excerpt       string
	}
)

// ConsumeCommentCreated notifies the post author about a new comment.
// Self-comments are dropped, nobody needs a ping about their own reply.
func (s *Usecase) ConsumeCommentCreated(ctx context.Context, in ConsumeCommentCreatedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeCommentCreated")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	if in.CommenterID == in.PostAuthorID {
		return nil
	}

	tpl := s.getTemplate(ctx, entity.TriggerKeyCommentCreated, entity.ChannelInApp)
	if tpl == nil {
		return nil
	}

	n := entity.CreateNotification{
		ID:         s.uid.Generate(),
		UserID:     in.PostAuthorID,
		CategoryID: tpl.CategoryID,
		TriggerKey: tpl.TriggerKey,
		Data: valueobject.JSONMap{
			"comment_id":     in.CommentID,
			"post_id":        in.PostID,
			"post_slug":      in.PostSlug,
			"post_title":     in.PostTitle,
			"commenter_name": in.CommenterName,
			"excerpt":        in.Excerpt,
		},
		Metadata: valueobject.JSONMap{},
	}
	if err := s.repoDB.CreateNotification(ctx, n); err != nil {
		slog.ErrorContext(ctx, "failed to repo create notification", "user_id", in.PostAuthorID, "error", err)
		return err
	}

	s.publishNotification(s.buildStreamEvent(n))

	return nil
}
