package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/jwt"
)

type EmailChangeVerifyInput struct {
	VerificationToken string `validate:"required"`
	Code              string `validate:"required,numeric"`
}

// EmailChangeVerify consumes the code sent to the new address, applies
// the change, and revokes every open session. The challenge owner must be
// the authenticated user; a code minted for someone else never applies.
func (s *Usecase) EmailChangeVerify(ctx context.Context, in EmailChangeVerifyInput) error {
	ctx, span := s.startSpan(ctx, "EmailChangeVerify")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	res, err := s.otp.Verify(ctx, otpScopeEmailChange, in.VerificationToken, in.Code, true)
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify email change code", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if res.ExpiredOrExceeded {
		return goerror.NewBusiness("code expired or too many attempts", goerror.CodeUnauthorized)
	}
	if !res.OK {
		return goerror.NewBusiness("invalid code", goerror.CodeUnauthorized)
	}
	if res.OwnerID == nil || *res.OwnerID != clm.UserID {
		slog.WarnContext(ctx, "email change challenge owner mismatch", "user_id", clm.UserID)
		return goerror.NewBusiness("invalid code", goerror.CodeUnauthorized)
	}

	newEmail, _ := res.Meta["new_email"].(string)
	if newEmail == "" {
		slog.ErrorContext(ctx, "email change challenge has no new email", "user_id", clm.UserID)
		return goerror.NewServer(errors.New("malformed email change challenge"))
	}

	err = s.repoDB.ChangeUserEmail(ctx, clm.UserID, newEmail)
	if errors.Is(err, goerror.ErrConflict) {
		return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	}
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo change user email", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
