package inbound

import (
	"context"

	"github.com/inkpress/inkpress/internal/identity/usecase"
	"github.com/inkpress/inkpress/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	LoginMFA(ctx context.Context, in usecase.LoginMFAInput) (*usecase.LoginMFAOutput, error)
	LoginGoogle(ctx context.Context, in usecase.LoginGoogleInput) (*usecase.LoginGoogleOutput, error)
	RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error)

	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	RegisterResend(ctx context.Context, in usecase.RegisterResendInput) (*usecase.RegisterResendOutput, error)
	RegisterVerify(ctx context.Context, in usecase.RegisterVerifyInput) error

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) (*usecase.PasswordForgotOutput, error)
	PasswordVerify(ctx context.Context, in usecase.PasswordVerifyInput) (*usecase.PasswordVerifyOutput, error)
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error
	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error

	EmailChange(ctx context.Context, in usecase.EmailChangeInput) (*usecase.EmailChangeOutput, error)
	EmailChangeVerify(ctx context.Context, in usecase.EmailChangeVerifyInput) error
	MFAToggle(ctx context.Context, in usecase.MFAToggleInput) error

	Logout(ctx context.Context, in usecase.LogoutInput) error
	LogoutAll(ctx context.Context, in usecase.LogoutAllInput) error

	Profile(ctx context.Context, in usecase.ProfileInput) (*usecase.ProfileOutput, error)
	ProfileUpdate(ctx context.Context, in usecase.ProfileUpdateInput) error
	ProfileUpdateAvatar(ctx context.Context, in usecase.ProfileUpdateAvatarInput) error
	ProfilePermissions(ctx context.Context) (map[string][]string, error)

	UserList(ctx context.Context, in usecase.UserListInput) (*usecase.UserListOutput, error)
	UserDetail(ctx context.Context, in usecase.UserDetailInput) (*usecase.UserDetailOutput, error)
	UserCreate(ctx context.Context, in usecase.UserCreateInput) error
	UserUpdate(ctx context.Context, in usecase.UserUpdateInput) error
	UserDelete(ctx context.Context, in usecase.UserDeleteInput) error
	UserExport(ctx context.Context, in usecase.UserExportInput) (*usecase.UserExportOutput, error)
	UserImport(ctx context.Context, in usecase.UserImportInput) (*usecase.UserImportOutput, error)

	UserInvite(ctx context.Context, in usecase.UserInviteInput) (*usecase.UserInviteOutput, error)
	InvitationValidate(ctx context.Context, in usecase.InvitationValidateInput) (*usecase.InvitationValidateOutput, error)
	InvitationAccept(ctx context.Context, in usecase.InvitationAcceptInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Auth & User Management
	r.POST("/api/v1/identity/login", end.Login)
	r.POST("/api/v1/identity/login/mfa", end.LoginMFA)
	r.POST("/api/v1/identity/login/google", end.LoginGoogle)
	r.POST("/api/v1/identity/refresh", end.RefreshToken)
	//
	r.POST("/api/v1/identity/register", end.Register)
	r.POST("/api/v1/identity/register/resend", end.RegisterResend)
	r.POST("/api/v1/identity/register/verify", end.RegisterVerify)
	//
	r.POST("/api/v1/identity/logout", end.Logout)
	r.POST("/api/v1/identity/logout-all", end.LogoutAll) // need authenticated

	// Password Management
	r.POST("/api/v1/identity/password/forgot", end.PasswordForgot)
	r.POST("/api/v1/identity/password/verify", end.PasswordVerify)
	r.POST("/api/v1/identity/password/reset", end.PasswordReset)
	r.POST("/api/v1/identity/password/change", end.PasswordChange) // need authenticated

	// Email & MFA settings (need authenticated)
	r.POST("/api/v1/identity/email/change", end.EmailChange)
	r.POST("/api/v1/identity/email/change/verify", end.EmailChangeVerify)
	r.PUT("/api/v1/identity/mfa", end.MFAToggle)

	// User Profile (need authenticated)
	r.GET("/api/v1/identity/profile", end.Profile)
	r.PUT("/api/v1/identity/profile", end.ProfileUpdate)
	r.PUT("/api/v1/identity/profile/avatar", end.ProfileUpdateAvatar)
	r.GET("/api/v1/identity/profile/permissions", end.ProfilePermissions)

	// User Directory (need authenticated & authorization)
	r.GET("/api/v1/identity/users", end.UserList)
	r.GET("/api/v1/identity/users/:id", end.UserDetail)
	r.POST("/api/v1/identity/users", end.UserCreate)
	r.PUT("/api/v1/identity/users/:id", end.UserUpdate)
	r.DELETE("/api/v1/identity/users/:id", end.UserDelete)
	r.GET("/api/v1/identity/users-export", end.UserExport)
	r.POST("/api/v1/identity/users-import", end.UserImport)

	// Invitations (accept/validate are hit by invitees without a session)
	r.POST("/api/v1/identity/users/invite", end.UserInvite)
	r.POST("/api/v1/identity/invitation/validate", end.InvitationValidate)
	r.POST("/api/v1/identity/invitation/accept", end.InvitationAccept)
}
