package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/samber/lo"
)

type (
	PostCreateInput struct {
		Title       string `validate:"required,min=3,max=200"`
		Body        string `validate:"required"`
		Status      string `validate:"required,oneof=draft published"`
		CategoryIDs []int64
		Tags        []string `validate:"max=10,dive,min=1,max=50"`
	}

	PostCreateOutput struct {
		ID   int64
		Slug string
	}
)

func (s *Usecase) PostCreate(ctx context.Context, in PostCreateInput) (*PostCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "PostCreate")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	post := entity.NewPost{
		ID:          s.uid.Generate(),
		AuthorID:    clm.UserID,
		Slug:        slugify(in.Title),
		Title:       in.Title,
		Body:        in.Body,
		Status:      entity.ParsePostStatus(in.Status),
		ReadTime:    readTimeMinutes(in.Body),
		CategoryIDs: lo.Uniq(in.CategoryIDs),
		Tags:        s.buildTags(in.Tags),
	}

	err = s.repoDB.CreatePost(ctx, post)
	if errors.Is(err, goerror.ErrConflict) {
		// slug taken, retry once with the post id as suffix
		post.Slug = post.Slug + "-" + strconv.FormatInt(post.ID, 36)
		err = s.repoDB.CreatePost(ctx, post)
	}
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("One or more categories do not exist", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create post", "author_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.invalidatePostListCache(ctx)

	return &PostCreateOutput{ID: post.ID, Slug: post.Slug}, nil
}

// buildTags normalizes free-form tag names into slugged entities with
// fresh ids; the id is only spent when the tag is new.
func (s *Usecase) buildTags(names []string) []entity.Tag {
	tags := make([]entity.Tag, 0, len(names))
	seen := map[string]struct{}{}

	for _, name := range names {
		slug := slugify(name)
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}

		tags = append(tags, entity.Tag{
			ID:   s.uid.Generate(),
			Slug: slug,
			Name: name,
		})
	}

	return tags
}
