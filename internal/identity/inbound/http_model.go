package inbound

import (
	"time"

	"github.com/inkpress/inkpress/internal/identity/entity"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	MFARequired  bool   `json:"mfa_required,omitempty"`
	MFAToken     string `json:"mfa_token,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type LoginMFARequest struct {
	MFAToken string `json:"mfa_token"`
	Code     string `json:"code"`
}

type LoginMFAResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginGoogleRequest struct {
	IDToken string `json:"id_token"`
}

type LoginGoogleResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Created      bool   `json:"created,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type RegisterResponse struct {
	VerificationToken string `json:"verification_token"`
}

func (RegisterResponse) Message() string {
	return "Registration pending. Please check your email for the verification code."
}

type RegisterResendRequest struct {
	Email string `json:"email"`
}

type RegisterResendResponse struct {
	VerificationToken string `json:"verification_token,omitempty"`
}

func (RegisterResendResponse) Message() string {
	return "If a registration is pending for that email, we have sent a new verification code."
}

type RegisterVerifyRequest struct {
	VerificationToken string `json:"verification_token"`
	Code              string `json:"code"`
}

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct {
	ResetToken string `json:"reset_token,omitempty"`
}

func (PasswordForgotResponse) Message() string {
	return "If an account with that email exists, we have sent a password reset code."
}

type PasswordVerifyRequest struct {
	ResetToken string `json:"reset_token"`
	Code       string `json:"code"`
}

type PasswordVerifyResponse struct {
	ResetGrant string `json:"reset_grant"`
}

type PasswordResetRequest struct {
	ResetGrant  string `json:"reset_grant"`
	NewPassword string `json:"new_password"`
}

type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type EmailChangeRequest struct {
	NewEmail string `json:"new_email"`
	Password string `json:"password"`
}

type EmailChangeResponse struct {
	VerificationToken string `json:"verification_token"`
}

func (EmailChangeResponse) Message() string {
	return "We have sent a verification code to the new address."
}

type EmailChangeVerifyRequest struct {
	VerificationToken string `json:"verification_token"`
	Code              string `json:"code"`
}

type MFAToggleRequest struct {
	Enabled  bool   `json:"enabled"`
	Password string `json:"password"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
}

type ProfilePermissionsResponse struct {
	Permissions map[string][]string `json:"permissions"`
}

type ProfileResponse struct {
	ID         int64  `json:"id,string"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	AvatarURL  string `json:"avatar_url"`
	Status     string `json:"status"`
	MFAEnabled bool   `json:"mfa_enabled"`
}

type UserResponse struct {
	ID        int64             `json:"id,string"`
	Email     string            `json:"email"`
	FullName  string            `json:"full_name"`
	AvatarURL string            `json:"avatar_url"`
	Status    entity.UserStatus `json:"status"`
	UpdateAt  time.Time         `json:"updated_at"`
}

type UserCreateRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	FullName string            `json:"full_name"`
	Status   entity.UserStatus `json:"status"`
}

type UserUpdateRequest struct {
	Email    string            `json:"email,omitempty"`
	Password string            `json:"password,omitempty"`
	FullName string            `json:"full_name,omitempty"`
	Status   entity.UserStatus `json:"status,omitempty"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
	// meta
	total int64
	size  int32
	page  int32
}

func (r UsersResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"size":  r.size,
		"page":  r.page,
	}
}

type UserDetailResponse struct {
	User UserResponse `json:"user"`
}

type UserExportResponse struct {
	Users []UserResponse `json:"users"`
}

type UserImportUserRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password,omitempty"`
	FullName string            `json:"full_name,omitempty"`
	Status   entity.UserStatus `json:"status,omitempty"`
}

type UserImportRequest struct {
	Users []UserImportUserRequest `json:"users"`
}

type UserImportResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

type UserInviteRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type UserInviteResponse struct {
	UserID          int64  `json:"user_id,string"`
	InvitationToken string `json:"invitation_token"`
}

func (UserInviteResponse) Message() string {
	return "Invitation sent. The invitee will receive a code by email."
}

type InvitationValidateRequest struct {
	InvitationToken string `json:"invitation_token"`
	Code            string `json:"code"`
}

type InvitationValidateResponse struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type InvitationAcceptRequest struct {
	InvitationToken string `json:"invitation_token"`
	Code            string `json:"code"`
	Password        string `json:"password"`
}
