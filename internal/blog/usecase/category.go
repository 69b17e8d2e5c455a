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
	CategoryListOutput struct {
		Categories []entity.Category
	}

	CategoryCreateInput struct {
		Name string `validate:"required,min=2,max=50"`
	}

	CategoryCreateOutput struct {
		ID   int64
		Slug string
	}

	CategoryUpdateInput struct {
		ID   int64  `validate:"required,gt=0"`
		Name string `validate:"required,min=2,max=50"`
	}

	CategoryDeleteInput struct {
		ID int64 `validate:"required,gt=0"`
	}
)

// CategoryList is public, the write operations below are admin-only.
func (s *Usecase) CategoryList(ctx context.Context) (*CategoryListOutput, error) {
	ctx, span := s.startSpan(ctx, "CategoryList")
	defer span.End()

	categories, err := s.repoDB.GetCategoryList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list categories", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CategoryListOutput{Categories: categories}, nil
}

func (s *Usecase) CategoryCreate(ctx context.Context, in CategoryCreateInput) (*CategoryCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "CategoryCreate")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermBlogMgmtTaxonomy, constant.PermActCreate); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	cat := entity.Category{
		ID:   s.uid.Generate(),
		Slug: slugify(in.Name),
		Name: in.Name,
	}

	err := s.repoDB.CreateCategory(ctx, cat)
	if errors.Is(err, goerror.ErrConflict) {
		return nil, goerror.NewBusiness("Category already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create category", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CategoryCreateOutput{ID: cat.ID, Slug: cat.Slug}, nil
}

func (s *Usecase) CategoryUpdate(ctx context.Context, in CategoryUpdateInput) error {
	ctx, span := s.startSpan(ctx, "CategoryUpdate")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermBlogMgmtTaxonomy, constant.PermActUpdate); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.UpdateCategory(ctx, entity.Category{
		ID:   in.ID,
		Slug: slugify(in.Name),
		Name: in.Name,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Category not found", goerror.CodeNotFound)
	}
	if errors.Is(err, goerror.ErrConflict) {
		return goerror.NewBusiness("Category already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update category", "category_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) CategoryDelete(ctx context.Context, in CategoryDeleteInput) error {
	ctx, span := s.startSpan(ctx, "CategoryDelete")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermBlogMgmtTaxonomy, constant.PermActDelete); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.DeleteCategory(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Category not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete category", "category_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
