package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type (
	InvitationValidateInput struct {
		InvitationToken string `validate:"required"`
		Code            string `validate:"required,numeric"`
	}

	InvitationValidateOutput struct {
		Email    string
		FullName string
	}
)

// InvitationValidate checks the invite before the invitee commits to a
// password. The challenge stays in place; accept is what consumes it.
func (s *Usecase) InvitationValidate(ctx context.Context, in InvitationValidateInput) (*InvitationValidateOutput, error) {
	ctx, span := s.startSpan(ctx, "InvitationValidate")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.invitedUser(ctx, in.InvitationToken, in.Code, false)
	if err != nil {
		return nil, err
	}

	return &InvitationValidateOutput{Email: user.Email, FullName: user.FullName}, nil
}

type InvitationAcceptInput struct {
	InvitationToken string `validate:"required"`
	Code            string `validate:"required,numeric"`
	Password        string `validate:"required,password"`
}

// InvitationAccept consumes the invite and activates the account with
// the invitee's chosen password.
func (s *Usecase) InvitationAccept(ctx context.Context, in InvitationAcceptInput) error {
	ctx, span := s.startSpan(ctx, "InvitationAccept")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.invitedUser(ctx, in.InvitationToken, in.Code, true)
	if err != nil {
		return err
	}

	newHash, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	err = s.repoDB.ActivateUserWithCredential(ctx, user.ID, string(newHash))
	if errors.Is(err, goerror.ErrNotFound) {
		return goerror.NewBusiness("account already activated", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo activate user", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

// invitedUser resolves an invitation challenge to its still-unverified
// account.
func (s *Usecase) invitedUser(ctx context.Context, token, code string, consume bool) (*entity.User, error) {
	res, err := s.otp.Verify(ctx, otpScopeInvite, token, code, consume)
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify invitation code", "error", err)
		return nil, goerror.NewServer(err)
	}

	if res.ExpiredOrExceeded {
		return nil, goerror.NewBusiness("invitation expired or too many attempts", goerror.CodeUnauthorized)
	}
	if !res.OK {
		return nil, goerror.NewBusiness("invalid code", goerror.CodeUnauthorized)
	}
	if res.OwnerID == nil {
		slog.ErrorContext(ctx, "invitation challenge has no owner")
		return nil, goerror.NewServer(errors.New("malformed invitation"))
	}

	user, err := s.repoDB.GetUserByID(ctx, *res.OwnerID, false)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Account not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", *res.OwnerID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user.Status.Ensure() != entity.UserStatusUnverified {
		return nil, goerror.NewBusiness("account already activated", goerror.CodeConflict)
	}

	return user, nil
}
