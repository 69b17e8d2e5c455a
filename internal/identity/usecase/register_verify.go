package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/idempotency"
)

type RegisterVerifyInput struct {
	VerificationToken string `validate:"required"`
	Code              string `validate:"required,numeric"`
}

const registerVerifyStateTTL = time.Minute

// RegisterVerify consumes the registration challenge and creates the user
// row. Retried deliveries of the same token are absorbed by the
// idempotency tracker so the account is created exactly once. Only an
// infrastructure failure latches the failed state; a rejected code frees
// the key again, since the challenge's own attempt budget is what limits
// guessing.
func (s *Usecase) RegisterVerify(ctx context.Context, in RegisterVerifyInput) error {
	ctx, span := s.startSpan(ctx, "RegisterVerify")
	defer span.End()

	in.Code = strings.TrimSpace(in.Code)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	key := "identity:register_verify:" + in.VerificationToken

	state, err := s.idemp.Acquire(ctx, key, registerVerifyStateTTL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire verification state", "error", err)
		return goerror.NewServer(err)
	}

	switch state {
	case idempotency.StateCompleted:
		// The account was already created by an earlier delivery.
		return nil
	case idempotency.StateInProgress:
		return goerror.NewBusiness("verification already in progress", goerror.CodeConflict)
	case idempotency.StateFailed:
		return goerror.NewBusiness("verification failed, request a new code", goerror.CodeUnauthorized)
	}

	if err := s.registerVerify(ctx, in); err != nil {
		var gerr *goerror.Error
		if errors.As(err, &gerr) && gerr.Type() == goerror.TypeBusiness {
			// Wrong or expired code. The user may retry with the right
			// one while the challenge still has attempts left.
			if relErr := s.idemp.Release(ctx, key); relErr != nil {
				slog.ErrorContext(ctx, "failed to release verification state", "error", relErr)
			}

			return err
		}

		if markErr := s.idemp.MarkFailed(ctx, key, registerVerifyStateTTL); markErr != nil {
			slog.ErrorContext(ctx, "failed to mark verification failed", "error", markErr)
		}

		return err
	}

	if err := s.idemp.MarkCompleted(ctx, key, registerVerifyStateTTL); err != nil {
		slog.ErrorContext(ctx, "failed to mark verification completed", "error", err)
	}

	return nil
}

func (s *Usecase) registerVerify(ctx context.Context, in RegisterVerifyInput) error {
	res, err := s.otp.Verify(ctx, otpScopeRegister, in.VerificationToken, in.Code, true)
	if err != nil {
		slog.ErrorContext(ctx, "failed to verify registration code", "error", err)
		return goerror.NewServer(err)
	}

	if res.ExpiredOrExceeded {
		return goerror.NewBusiness("code expired or too many attempts", goerror.CodeUnauthorized)
	}
	if !res.OK {
		return goerror.NewBusiness("invalid code", goerror.CodeUnauthorized)
	}

	pending := entity.PendingRegistrationFromMeta(res.Meta)
	if pending.Email == "" || pending.PasswordHash == "" {
		slog.ErrorContext(ctx, "registration challenge has malformed profile")
		return goerror.NewServer(errors.New("malformed pending registration"))
	}

	newUserID := s.uid.Generate()
	newUser := entity.NewUser{
		ID:        newUserID,
		Email:     pending.Email,
		FullName:  pending.FullName,
		AvatarURL: "https://ui-avatars.com/api/?name=" + url.QueryEscape(pending.FullName),
		Status:    entity.UserStatusActive,
		CreatedBy: newUserID,
		UpdatedBy: newUserID,
	}

	err = s.repoDB.CreateUserWithCredential(ctx, newUser, pending.PasswordHash)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "email registered while verification pending", "email", pending.Email)
		return goerror.NewBusiness("Email already registered", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user with credential", "email", pending.Email, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoCache.DeleteRegisterIndex(ctx, pending.Email); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete register index", "email", pending.Email, "error", err)
	}

	if err := s.repoMessaging.PublishUserRegistered(ctx, UserRegisteredEvent{
		UserID:   newUser.ID,
		Email:    newUser.Email,
		FullName: newUser.FullName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user registered", "user_id", newUser.ID, "error", err)
	}

	return nil
}
