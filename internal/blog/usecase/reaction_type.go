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
	ReactionTypeListOutput struct {
		Types []entity.ReactionType
	}

	ReactionTypeCreateInput struct {
		Name  string `validate:"required,min=2,max=50"`
		Emoji string `validate:"required,max=16"`
	}

	ReactionTypeCreateOutput struct {
		ID int64
	}

	ReactionTypeUpdateInput struct {
		ID    int64  `validate:"required,gt=0"`
		Name  string `validate:"required,min=2,max=50"`
		Emoji string `validate:"required,max=16"`
	}

	ReactionTypeDeleteInput struct {
		ID int64 `validate:"required,gt=0"`
	}
)

// ReactionTypeList is public so readers can render the reaction picker;
// the write operations below are admin-only.
func (s *Usecase) ReactionTypeList(ctx context.Context) (*ReactionTypeListOutput, error) {
	ctx, span := s.startSpan(ctx, "ReactionTypeList")
	defer span.End()

	types, err := s.repoDB.GetReactionTypeList(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list reaction types", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ReactionTypeListOutput{Types: types}, nil
}

func (s *Usecase) ReactionTypeCreate(ctx context.Context, in ReactionTypeCreateInput) (*ReactionTypeCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "ReactionTypeCreate")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermBlogMgmtTaxonomy, constant.PermActCreate); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	rt := entity.ReactionType{
		ID:    s.uid.Generate(),
		Name:  in.Name,
		Emoji: in.Emoji,
	}

	err := s.repoDB.CreateReactionType(ctx, rt)
	if errors.Is(err, goerror.ErrConflict) {
		return nil, goerror.NewBusiness("Reaction type already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create reaction type", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ReactionTypeCreateOutput{ID: rt.ID}, nil
}

func (s *Usecase) ReactionTypeUpdate(ctx context.Context, in ReactionTypeUpdateInput) error {
	ctx, span := s.startSpan(ctx, "ReactionTypeUpdate")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermBlogMgmtTaxonomy, constant.PermActUpdate); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.UpdateReactionType(ctx, entity.ReactionType{
		ID:    in.ID,
		Name:  in.Name,
		Emoji: in.Emoji,
	})
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Reaction type not found", goerror.CodeNotFound)
	}
	if errors.Is(err, goerror.ErrConflict) {
		return goerror.NewBusiness("Reaction type already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo update reaction type", "reaction_type_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func (s *Usecase) ReactionTypeDelete(ctx context.Context, in ReactionTypeDeleteInput) error {
	ctx, span := s.startSpan(ctx, "ReactionTypeDelete")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermBlogMgmtTaxonomy, constant.PermActDelete); err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	err := s.repoDB.DeleteReactionType(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("Reaction type not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete reaction type", "reaction_type_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
