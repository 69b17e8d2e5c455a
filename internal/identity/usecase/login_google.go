package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

type LoginGoogleInput struct {
	IDToken string `validate:"required"`
}

type LoginGoogleOutput struct {
	AccessToken  string
	RefreshToken string
	Created      bool
}

// LoginGoogle signs a user in with a Google ID token, creating the
// account on first sight. Google already verified the mailbox, so the
// flow skips both email verification and the emailed MFA code.
func (s *Usecase) LoginGoogle(ctx context.Context, in LoginGoogleInput) (*LoginGoogleOutput, error) {
	ctx, span := s.startSpan(ctx, "LoginGoogle")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	claims, err := s.googleID.Verify(ctx, in.IDToken)
	if err != nil {
		slog.WarnContext(ctx, "google id token rejected", "error", err)
		return nil, goerror.NewBusiness("invalid Google token", goerror.CodeUnauthorized)
	}

	if claims.Email == "" || !claims.EmailVerified {
		return nil, goerror.NewBusiness("Google account email is not verified", goerror.CodeUnauthorized)
	}

	email := strings.ToLower(claims.Email)

	user, err := s.repoDB.GetUserByEmail(ctx, email, false)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user != nil {
		if err := s.ensureUserStatusAllowed(ctx, user.ID, user.Status); err != nil {
			return nil, err
		}

		tokens, err := s.issueLoginTokens(ctx, user.ID, user.Email)
		if err != nil {
			return nil, err
		}

		return &LoginGoogleOutput{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		}, nil
	}

	fullName := strings.TrimSpace(claims.FullName)
	if fullName == "" {
		fullName = email
	}

	// a throwaway credential; the user signs in through Google and can
	// run the password reset flow if they ever want a password
	placeholderHash, err := s.bcrypt.Hash(s.oid.Generate())
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash placeholder credential", "error", err)
		return nil, goerror.NewServer(err)
	}

	newUserID := s.uid.Generate()
	newUser := entity.NewUser{
		ID:        newUserID,
		Email:     email,
		FullName:  fullName,
		AvatarURL: "https://ui-avatars.com/api/?name=" + url.QueryEscape(fullName),
		Status:    entity.UserStatusActive,
		CreatedBy: newUserID,
		UpdatedBy: newUserID,
	}

	err = s.repoDB.CreateUserWithCredential(ctx, newUser, string(placeholderHash))
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "email registered while google login pending", "email", email)
		return nil, goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user with credential", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:   newUser.ID,
		Email:    newUser.Email,
		FullName: newUser.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", newUser.ID, "error", err)
	}

	tokens, err := s.issueLoginTokens(ctx, newUser.ID, newUser.Email)
	if err != nil {
		return nil, err
	}

	return &LoginGoogleOutput{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Created:      true,
	}, nil
}
