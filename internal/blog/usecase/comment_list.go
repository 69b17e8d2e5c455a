package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/jwt"
	"github.com/samber/lo"
)

type (
	CommentListInput struct {
		Slug string `validate:"required"`
	}

	// ThreadedComment is a comment with its replies nested underneath,
	// oldest first on every level.
	ThreadedComment struct {
		Comment entity.Comment
		Replies []ThreadedComment
	}

	CommentListOutput struct {
		Comments []ThreadedComment
	}
)

// CommentList returns the full comment thread of a post. Soft-deleted
// comments keep their slot with a blanked body so replies stay anchored.
func (s *Usecase) CommentList(ctx context.Context, in CommentListInput) (*CommentListOutput, error) {
	ctx, span := s.startSpan(ctx, "CommentList")
	defer span.End()

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
		clm := jwt.GetAuth(ctx)
		if clm == nil || clm.UserID != post.AuthorID {
			return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
		}
	}

	comments, err := s.repoDB.GetCommentsByPost(ctx, post.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list comments", "post_id", post.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	for i := range comments {
		if comments[i].Deleted {
			comments[i].Body = ""
			comments[i].AuthorName = ""
		}
	}

	return &CommentListOutput{Comments: buildThread(comments)}, nil
}

// buildThread nests the flat, time-ordered comment set. Replies whose
// parent is missing (paranoia, the db keeps deleted parents around) are
// promoted to the top level rather than dropped.
func buildThread(comments []entity.Comment) []ThreadedComment {
	byParent := lo.GroupBy(
		lo.Filter(comments, func(c entity.Comment, _ int) bool { return c.ParentID != nil }),
		func(c entity.Comment) int64 { return *c.ParentID },
	)

	known := lo.KeyBy(comments, func(c entity.Comment) int64 { return c.ID })

	var nest func(c entity.Comment) ThreadedComment
	nest = func(c entity.Comment) ThreadedComment {
		node := ThreadedComment{Comment: c, Replies: []ThreadedComment{}}
		for _, child := range byParent[c.ID] {
			node.Replies = append(node.Replies, nest(child))
		}
		return node
	}

	roots := make([]ThreadedComment, 0, len(comments))
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, nest(c))
			continue
		}
		if _, ok := known[*c.ParentID]; !ok {
			roots = append(roots, nest(c))
		}
	}

	return roots
}
