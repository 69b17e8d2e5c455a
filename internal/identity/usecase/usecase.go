package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/clock"
	"github.com/inkpress/inkpress/internal/pkg/config"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/googleid"
	"github.com/inkpress/inkpress/internal/pkg/goroutine"
	"github.com/inkpress/inkpress/internal/pkg/hash"
	"github.com/inkpress/inkpress/internal/pkg/idempotency"
	"github.com/inkpress/inkpress/internal/pkg/instrument"
	"github.com/inkpress/inkpress/internal/pkg/jwt"
	"github.com/inkpress/inkpress/internal/pkg/otp"
	"github.com/inkpress/inkpress/internal/pkg/storage"
	"github.com/inkpress/inkpress/internal/pkg/uid"
	"github.com/inkpress/inkpress/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// One-time code scopes. A code issued under one scope never verifies
// under another.
const (
	otpScopeRegister      = "register"
	otpScopeMFA           = "mfa"
	otpScopePasswordReset = "pwd_reset"
	otpScopeEmailChange   = "email_change"
	otpScopeInvite        = "invite"
)

type OTPCodeEvent struct {
	Scope    string
	Email    string
	FullName string
	Code     string
}

type UserRegisteredEvent struct {
	UserID   int64
	Email    string
	FullName string
}

type repoMessaging interface {
	PublishOTPCode(ctx context.Context, msg OTPCodeEvent) error
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
}

type repoDB interface {
	GetUserLoginInfo(ctx context.Context, email string) (*entity.UserLoginInfo, error)
	GetUserCredentialInfo(ctx context.Context, id int64) (*entity.UserCredentialInfo, error)
	GetUserRefreshToken(ctx context.Context, token string) (*entity.UserRefreshToken, error)
	GetUserByEmail(ctx context.Context, email string, includeDeleted bool) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64, includeDeleted bool) (*entity.User, error)
	GetUserList(ctx context.Context, filter entity.UserListFilterData) ([]entity.User, int64, error)

	CreateRefreshToken(ctx context.Context, in entity.RefreshToken) error
	CreateUserWithCredential(ctx context.Context, user entity.NewUser, hash string) error

	UpdateUserProfile(ctx context.Context, id int64, fullName string) error
	UpdateUserAvatar(ctx context.Context, id int64, avatarURL string) error
	UpdateUserCredential(ctx context.Context, userID int64, hash string) error
	SetUserMFA(ctx context.Context, userID int64, enabled bool) error
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllRefreshToken(ctx context.Context, userID int64) error
	MarkUserDeleted(ctx context.Context, id, byID int64) error

	ResetUserPassword(ctx context.Context, userID int64, newHash string) error
	ActivateUserWithCredential(ctx context.Context, userID int64, hash string) error
	ChangeUserEmail(ctx context.Context, userID int64, newEmail string) error
	RotateRefreshToken(ctx context.Context, ro entity.RotateRefreshToken) error
	PatchUser(ctx context.Context, user entity.PatchUser, hash string) error
	UpsertUsers(ctx context.Context, users []entity.UpsertUser, hashes map[string]string) (created, updated int, err error)
}

type repoCache interface {
	SetRegisterIndex(ctx context.Context, email string, idx entity.RegisterIndex, ttl time.Duration) error
	GetRegisterIndex(ctx context.Context, email string) (*entity.RegisterIndex, error)
	DeleteRegisterIndex(ctx context.Context, email string) error
	PutResetGrant(ctx context.Context, grantHash string, userID int64, ttl time.Duration) error
	TakeResetGrant(ctx context.Context, grantHash string) (int64, bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoCache     repoCache
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	hmac          hash.Hash
	bcrypt        hash.Hash
	otp           *otp.Manager
	uid           uid.NumberID
	uuid          uid.StringID
	oid           uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	googleID      googleid.Verifier
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoCache     repoCache
	RepoMessaging repoMessaging
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	HMAC          hash.Hash
	Bcrypt        hash.Hash
	OTP           *otp.Manager
	UID           uid.NumberID
	UUID          uid.StringID
	OID           uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	GoogleID      googleid.Verifier
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoCache:     dep.RepoCache,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		hmac:          dep.HMAC,
		bcrypt:        dep.Bcrypt,
		otp:           dep.OTP,
		uid:           dep.UID,
		uuid:          dep.UUID,
		oid:           dep.OID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		googleID:      dep.GoogleID,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) ensureUserStatusAllowed(ctx context.Context, userID int64, status entity.UserStatus) error {
	sts := status.Ensure()
	switch sts {
	case entity.UserStatusUnknown:
		slog.WarnContext(ctx, "user account status is unrecognized", "user_id", userID)
		return goerror.NewBusiness("account status is unrecognized", goerror.CodeForbidden)

	case entity.UserStatusUnverified:
		slog.WarnContext(ctx, "user account is unverified", "user_id", userID)
		return goerror.NewBusiness("email not verified", goerror.CodeForbidden)

	case entity.UserStatusBanned:
		slog.WarnContext(ctx, "user account is banned", "user_id", userID)
		return goerror.NewBusiness("account is banned", goerror.CodeForbidden)

	case entity.UserStatusInactive:
		slog.WarnContext(ctx, "user account is deleted", "user_id", userID)
		return goerror.NewBusiness("account is deleted", goerror.CodeForbidden)

	default:
		return nil
	}
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Subject, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

type loginTokens struct {
	AccessToken  string
	RefreshToken string
}

// issueLoginTokens mints the access jwt plus a fresh refresh token and
// persists the hashed refresh token.
func (s *Usecase) issueLoginTokens(ctx context.Context, userID int64, email string) (*loginTokens, error) {
	acToken, err := s.jwt.Generate(userID, email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	refToken := s.oid.Generate()
	refTokenHash, err := s.hmac.Hash(refToken)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash refresh token", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.CreateRefreshToken(ctx, entity.RefreshToken{
		ID:        s.uid.Generate(),
		UserID:    userID,
		Token:     string(refTokenHash),
		ExpiresAt: s.clock.Now().Add(s.cfg.GetDay("modules.identity.refresh_token_ttl_days")),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo create refresh token user", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &loginTokens{AccessToken: acToken, RefreshToken: refToken}, nil
}

// sendOTPCode issues a scoped one-time code and hands the plaintext to the
// notification module for delivery. The plaintext never touches logs or
// storage; publish failures are logged but do not fail the flow, the user
// can always request a resend.
func (s *Usecase) sendOTPCode(
	ctx context.Context,
	scope, email, fullName string,
	ownerID *int64,
	meta map[string]any,
	opts ...otp.IssueOption,
) (string, error) {
	token, code, err := s.otp.Issue(ctx, scope, ownerID, meta, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue one-time code", "scope", scope, "error", err)
		return "", goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishOTPCode(ctx, OTPCodeEvent{
		Scope:    scope,
		Email:    email,
		FullName: fullName,
		Code:     code,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish one-time code", "scope", scope, "error", err)
	}

	return token, nil
}
