package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/shared/constant"
)

type (
	UserInviteInput struct {
		Email    string `validate:"required,email"`
		FullName string `validate:"required,min=5,max=100,alphaspace"`
	}

	UserInviteOutput struct {
		UserID          int64
		InvitationToken string
	}
)

// UserInvite provisions an account for someone an admin wants on board.
// The row starts unverified with a throwaway credential; the invitee
// activates it by setting their own password through the emailed code.
func (s *Usecase) UserInvite(ctx context.Context, in UserInviteInput) (*UserInviteOutput, error) {
	ctx, span := s.startSpan(ctx, "UserInvite")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermIdentityMgmtUsers, constant.PermActCreate)
	if err != nil {
		return nil, err
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email, true)
	if err == nil && user != nil {
		slog.WarnContext(ctx, "user account is already exists", "email", in.Email)
		return nil, goerror.NewBusiness("user account with that email already exists", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	placeholderHash, err := s.bcrypt.Hash(s.oid.Generate())
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash placeholder credential", "error", err)
		return nil, goerror.NewServer(err)
	}

	newUser := entity.NewUser{
		ID:        s.uid.Generate(),
		Email:     in.Email,
		FullName:  in.FullName,
		AvatarURL: "https://ui-avatars.com/api/?name=" + url.QueryEscape(in.FullName),
		Status:    entity.UserStatusUnverified,
		CreatedBy: clm.UserID,
		UpdatedBy: clm.UserID,
	}

	if err := s.repoDB.CreateUserWithCredential(ctx, newUser, string(placeholderHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo create invited user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	ownerID := newUser.ID
	token, err := s.sendOTPCode(ctx, otpScopeInvite, in.Email, in.FullName, &ownerID, nil)
	if err != nil {
		return nil, err
	}

	return &UserInviteOutput{UserID: newUser.ID, InvitationToken: token}, nil
}
