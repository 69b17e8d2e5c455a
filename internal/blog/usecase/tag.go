package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/shared/constant"
)

type (
	TagListOutput struct {
		Tags []entity.Tag
	}

	TagCreateInput struct {
		Name string `validate:"required,min=1,max=50"`
	}

	TagCreateOutput struct {
		ID   int64
		Slug string
	}

	TagUpdateInput struct {
		ID   int64  `validate:"required,gt=0"`
		Name string `validate:"required,min=1,max=50"`
	}

	TagDeleteInput struct {
		ID int64 `validate:"required,gt=0"`
	}
)

func (s *Usecase) TagList(ctx context.Context) (*TagListOutput, error) {
	ctx, span := s.startSpan(ctx, "TagList")
	defer span.End()

	tags, err := s.repoDB.GetTagList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list tags", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &TagListOutput{Tags: tags}, nil
}

func (s *Usecase) TagCreate(ctx context.Context, in TagCreateInput) (*TagCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "TagCreate")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermBlogMgmtTaxonomy, constant.PermActCreate); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	tag := entity.Tag{
		ID:   s.uid.Generate(),
		Slug: slugify(in.Name),
		Name: in.Name,
	}

	err := s.repoDB.CreateTag(ctx, tag)
	if errors.Is(err, goerror.ErrConflict) {
		return nil, goerror.NewBusiness("Tag already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create tag", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &TagCreateOutput{ID: tag.ID, Slug: tag.Slug}, nil
}

func (s *Usecase) TagUpdate(ctx context.Context, in TagUpdateInput) error {
	ctx, span := s.startSpan(ctx, "TagUpdate")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermBlogMgmtTaxonomy, constant.PermActUpdate); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.UpdateTag(ctx, entity.Tag{
		ID:   in.ID,
		Slug: slugify(in.Name),
		Name: in.Name,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Tag not found", goerror.CodeNotFound)
	}
	if errors.Is(err, goerror.ErrConflict) {
		return goerror.NewBusiness("Tag already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update tag", "tag_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) TagDelete(ctx context.Context, in TagDeleteInput) error {
	ctx, span := s.startSpan(ctx, "TagDelete")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermBlogMgmtTaxonomy, constant.PermActDelete); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.DeleteTag(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Tag not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete tag", "tag_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
