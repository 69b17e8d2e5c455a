package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/otp"
)

type RegisterResendInput struct {
	Email string `validate:"required,email"`
}

type RegisterResendOutput struct {
	VerificationToken string
}

// RegisterResend mints a fresh challenge for a pending sign-up. The reply
// never reveals whether the email has a registration in flight; when it
// does not, the caller gets an empty token and nothing is sent.
func (s *Usecase) RegisterResend(ctx context.Context, in RegisterResendInput) (*RegisterResendOutput, error) {
	ctx, span := s.startSpan(ctx, "RegisterResend")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	idx, err := s.repoCache.GetRegisterIndex(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get register index", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if idx == nil {
		slog.WarnContext(ctx, "no pending registration for resend", "email", in.Email)
		return &RegisterResendOutput{}, nil
	}

	pending := entity.PendingRegistration{
		Email:        in.Email,
		FullName:     idx.FullName,
		PasswordHash: idx.PasswordHash,
	}

	ttl := s.cfg.GetMinute("modules.identity.register_otp_ttl_minutes")
	token, err := s.sendOTPCode(ctx, otpScopeRegister, in.Email, idx.FullName, nil, pending.Meta(), otp.WithTTL(ttl))
	if err != nil {
		return nil, err
	}

	if err := s.repoCache.SetRegisterIndex(ctx, in.Email, entity.RegisterIndex{
		Token:        token,
		FullName:     idx.FullName,
		PasswordHash: idx.PasswordHash,
	}, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to repo set register index", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RegisterResendOutput{VerificationToken: token}, nil
}
