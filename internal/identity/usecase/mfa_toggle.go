package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/jwt"
)

type MFAToggleInput struct {
	Enabled  bool
	Password string `validate:"required"`
}

// MFAToggle turns the emailed second-factor code on or off for the
// authenticated account. The password recheck keeps a hijacked session
// from silently weakening the account.
func (s *Usecase) MFAToggle(ctx context.Context, in MFAToggleInput) error {
	ctx, span := s.startSpan(ctx, "MFAToggle")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserCredentialInfo(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user credential info", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user.ID, user.Status); err != nil {
		return err
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return goerror.NewBusiness("invalid password", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.SetUserMFA(ctx, user.ID, in.Enabled); err != nil {
		slog.ErrorContext(ctx, "failed to repo set user mfa", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
