package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type PasswordVerifyInput struct {
	ResetToken string `validate:"required"`
	Code       string `validate:"required,numeric"`
}

type PasswordVerifyOutput struct {
	ResetGrant string
}

// PasswordVerify consumes the reset code and exchanges it for a short
// lived single-use grant. Splitting verify from reset keeps the emailed
// code out of the request that carries the new password.
func (s *Usecase) PasswordVerify(ctx context.Context, in PasswordVerifyInput) (*PasswordVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordVerify")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	res, err := s.otp.Verify(ctx, otpScopePasswordReset, in.ResetToken, in.Code, true)
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify reset code", "error", err)
		return nil, goerror.NewServer(err)
	}

	if res.ExpiredOrExceeded {
		return nil, goerror.NewBusiness("code expired or too many attempts", goerror.CodeUnauthorized)
	}
	if !res.OK {
		return nil, goerror.NewBusiness("invalid code", goerror.CodeUnauthorized)
	}
	if res.OwnerID == nil {
		slog.ErrorContext(ctx, "reset challenge has no owner")
		return nil, goerror.NewServer(errors.New("reset challenge without owner"))
	}

	grant := s.oid.Generate()
	grantHash, err := s.hmac.Hash(grant)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash reset grant", "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.identity.reset_grant_ttl_minutes")
	if err := s.repoCache.PutResetGrant(ctx, string(grantHash), *res.OwnerID, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to repo put reset grant", "user_id", *res.OwnerID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PasswordVerifyOutput{ResetGrant: grant}, nil
}
