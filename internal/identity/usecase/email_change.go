package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/jwt"
)

type EmailChangeInput struct {
	NewEmail string `validate:"required,email"`
	Password string `validate:"required"`
}

type EmailChangeOutput struct {
	VerificationToken string
}

// EmailChange sends a one-time code to the new address. The account keeps
// its current email until EmailChangeVerify consumes the code.
func (s *Usecase) EmailChange(ctx context.Context, in EmailChangeInput) (*EmailChangeOutput, error) {
	ctx, span := s.startSpan(ctx, "EmailChange")
	defer span.End()

	in.NewEmail = strings.TrimSpace(strings.ToLower(in.NewEmail))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserCredentialInfo(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user credential info", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user.ID, user.Status); err != nil {
		return nil, err
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid password", goerror.CodeUnauthorized)
	}

	if in.NewEmail == user.Email {
		return nil, goerror.NewBusiness("new email is the same as the current one", goerror.CodeConflict)
	}

	if _, err := s.repoDB.GetUserByEmail(ctx, in.NewEmail, true); err == nil {
		return nil, goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	} else if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.NewEmail, "error", err)
		return nil, goerror.NewServer(err)
	}

	ownerID := user.ID
	token, err := s.sendOTPCode(ctx, otpScopeEmailChange, in.NewEmail, "", &ownerID, map[string]any{
		"new_email": in.NewEmail,
	})
	if err != nil {
		return nil, err
	}

	return &EmailChangeOutput{VerificationToken: token}, nil
}
