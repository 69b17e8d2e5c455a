package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/otp"
)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	FullName string `validate:"required,min=5,max=100,alphaspace"`
}

type RegisterOutput struct {
	VerificationToken string
}

// Register holds the sign-up as a pending challenge until the emailed code
// is verified. No user row exists before RegisterVerify succeeds.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email, true)
	if err == nil {
		switch user.Status {
		case entity.UserStatusActive:
			return nil, goerror.NewBusiness("Email already registered", goerror.CodeConflict)
		case entity.UserStatusInactive:
			return nil, goerror.NewBusiness("Account deactivated", goerror.CodeConflict)
		default:
			return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
		}
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	idx, err := s.repoCache.GetRegisterIndex(ctx, in.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get register index", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if idx != nil {
		return nil, goerror.NewBusiness("Verification already pending, check your inbox", goerror.CodeConflict)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	pending := entity.PendingRegistration{
		Email:        in.Email,
		FullName:     in.FullName,
		PasswordHash: string(hashedPassword),
	}

	ttl := s.cfg.GetMinute("modules.identity.register_otp_ttl_minutes")
	token, err := s.sendOTPCode(ctx, otpScopeRegister, in.Email, in.FullName, nil, pending.Meta(), otp.WithTTL(ttl))
	if err != nil {
		return nil, err
	}

	if err := s.repoCache.SetRegisterIndex(ctx, in.Email, entity.RegisterIndex{
		Token:        token,
		FullName:     in.FullName,
		PasswordHash: string(hashedPassword),
	}, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to repo set register index", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RegisterOutput{VerificationToken: token}, nil
}
