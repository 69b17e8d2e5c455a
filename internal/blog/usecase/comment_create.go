package usecase

import (
	"context"
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

const commentExcerptLimit = 120

type (
	CommentCreateInput struct {
		Slug     string `validate:"required"`
		ParentID *int64 `validate:"omitempty,gt=0"`
		Body     string `validate:"required,max=2000"`
	}

	CommentCreateOutput struct {
		ID int64
	}
)

// CommentCreate attaches a comment (or a reply) to a published post and
// fans the event out to the notification module.
func (s *Usecase) CommentCreate(ctx context.Context, in CommentCreateInput) (*CommentCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "CommentCreate")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

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

	if post.Status.Ensure() != entity.PostStatusPublished {
		return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}

	if in.ParentID != nil {
		parent, err := s.repoDB.GetCommentByID(ctx, *in.ParentID)
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Parent comment not found", goerror.CodeNotFound)
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get parent comment", "comment_id", *in.ParentID, "error", err)
			return nil, goerror.NewServer(err)
		}
		if parent.PostID != post.ID || parent.Deleted {
			return nil, goerror.NewBusiness("Parent comment not found", goerror.CodeNotFound)
		}
	}

	comment := entity.NewComment{
		ID:       s.uid.Generate(),
		PostID:   post.ID,
		ParentID: in.ParentID,
		AuthorID: clm.UserID,
		Body:     in.Body,
	}
	if err := s.repoDB.CreateComment(ctx, comment); err != nil {
		slog.ErrorContext(ctx, "failed to repo create comment", "post_id", post.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	commenterName, err := s.repoDB.GetUserFullName(ctx, clm.UserID)
	if err != nil {
		slog.WarnContext(ctx, "failed to repo get commenter name", "user_id", clm.UserID, "error", err)
		commenterName = clm.UserEmail
	}

	if err := s.repoMessaging.PublishCommentCreated(ctx, CommentCreatedEvent{
		CommentID:     comment.ID,
		PostID:        post.ID,
		PostSlug:      post.Slug,
		PostTitle:     post.Title,
		PostAuthorID:  post.AuthorID,
		CommenterID:   clm.UserID,
		CommenterName: commenterName,
		Excerpt:       excerpt(in.Body, commentExcerptLimit),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish comment created", "comment_id", comment.ID, "error", err)
	}

	return &CommentCreateOutput{ID: comment.ID}, nil
}

// excerpt trims body to limit runes for the notification payload.
func excerpt(body string, limit int) string {
	if utf8.RuneCountInString(body) <= limit {
		return body
	}

	runes := []rune(body)

	return string(runes[:limit]) + "…"
}
