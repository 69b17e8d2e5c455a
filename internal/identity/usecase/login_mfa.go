package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type LoginMFAInput struct {
	MFAToken string `validate:"required"`
	Code     string `validate:"required,numeric"`
}

type LoginMFAOutput struct {
	AccessToken  string
	RefreshToken string
}

// LoginMFA completes a login that required the emailed second-factor code.
func (s *Usecase) LoginMFA(ctx context.Context, in LoginMFAInput) (*LoginMFAOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginMFA")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	res, err := s.otp.Verify(ctx, otpScopeMFA, in.MFAToken, in.Code, true)
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify mfa code", "error", err)
		return nil, goerror.NewServer(err)
	}

	if res.ExpiredOrExceeded {
		return nil, goerror.NewBusiness("code expired or too many attempts", goerror.CodeUnauthorized)
	}
	if !res.OK {
		return nil, goerror.NewBusiness("invalid code", goerror.CodeUnauthorized)
	}
	if res.OwnerID == nil {
		slog.ErrorContext(ctx, "mfa challenge has no owner")
		return nil, goerror.NewServer(errors.New("mfa challenge without owner"))
	}

	user, err := s.repoDB.GetUserByID(ctx, *res.OwnerID, false)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", *res.OwnerID)
		return nil, goerror.NewBusiness("invalid code", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", *res.OwnerID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.ensureUserStatusAllowed(ctx, user.ID, user.Status); err != nil {
		return nil, err
	}

	tokens, err := s.issueLoginTokens(ctx, user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &LoginMFAOutput{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, nil
}
