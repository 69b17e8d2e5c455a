package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type PasswordResetInput struct {
	ResetGrant  string `validate:"required"`
	NewPassword string `validate:"required,password"`
}

// PasswordReset redeems the grant minted by PasswordVerify, swaps the
// credential, and revokes every open session.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	grantHash, err := s.hmac.Hash(in.ResetGrant)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash reset grant", "error", err)
		return goerror.NewServer(err)
	}

	userID, ok, err := s.repoCache.TakeResetGrant(ctx, string(grantHash))
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo take reset grant", "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "reset grant not found or already used")
		return goerror.NewBusiness("invalid or expired reset grant", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, userID, false)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", userID)
		return goerror.NewBusiness("invalid or expired reset grant", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", userID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user.ID, user.Status); err != nil {
		return err
	}

	newHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.ResetUserPassword(ctx, user.ID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to update user password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
