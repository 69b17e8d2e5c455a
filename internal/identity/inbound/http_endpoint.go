package inbound

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/inkpress/inkpress/internal/identity/usecase"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for authentication and profile workflows.
type HTTPEndpoint struct {
	uc uc
}

// Login authenticates a user and returns tokens or an MFA challenge.
// @Summary Authenticate user
// @Description Validates credentials and returns access/refresh tokens. If MFA is enabled, a code is emailed and an MFA token is returned instead.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error" example:{"message":"Login failed due to server error","error":{"detail":"Please try again later"}}
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		MFARequired:  resp.MFARequired,
		MFAToken:     resp.MFAToken,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// LoginMFA completes a login that required an emailed code.
// @Summary Complete MFA login
// @Description Verifies the emailed code for a login challenge and returns access/refresh tokens.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginMFARequest true "MFA login payload"
// @Success 200 {object} router.successResponse{data=LoginMFAResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/login/mfa [post]
func (h *HTTPEndpoint) LoginMFA(r *router.Request) (any, error) {
	var req LoginMFARequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginMFA(r.Context(), usecase.LoginMFAInput{
		MFAToken: req.MFAToken,
		Code:     req.Code,
	})
	if err != nil {
		return nil, err
	}

	return LoginMFAResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// LoginGoogle signs in with a Google ID token, creating the account on
// first login.
// @Summary Authenticate with Google
// @Description Verifies a Google ID token and returns access/refresh tokens. A new account is created if the email is unknown.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginGoogleRequest true "Google login payload"
// @Success 200 {object} router.successResponse{data=LoginGoogleResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid Google token"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/login/google [post]
func (h *HTTPEndpoint) LoginGoogle(r *router.Request) (any, error) {
	var req LoginGoogleRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.LoginGoogle(r.Context(), usecase.LoginGoogleInput{IDToken: req.IDToken})
	if err != nil {
		return nil, err
	}

	return LoginGoogleResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Created:      resp.Created,
	}, nil
}

// RefreshToken issues a new access token using a refresh token.
// @Summary Refresh access token
// @Description Exchanges a refresh token for a new access/refresh token pair.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token payload"
// @Success 200 {object} router.successResponse{data=RefreshTokenResponse} "Token refresh result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid refresh token"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/refresh [post]
func (h *HTTPEndpoint) RefreshToken(r *router.Request) (any, error) {
	var req RefreshTokenRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RefreshToken(r.Context(), usecase.RefreshTokenInput{RefreshToken: req.RefreshToken})
	if err != nil {
		return nil, err
	}

	return RefreshTokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// Register starts a new sign-up and emails a verification code.
// @Summary Register user
// @Description Holds the registration as pending and sends a verification code to the email address.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 200 {object} router.successResponse{data=RegisterResponse} "Registration pending"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{VerificationToken: resp.VerificationToken}, nil
}

// RegisterResend re-sends the verification code for a pending sign-up.
// @Summary Resend verification code
// @Description Sends a new verification code when a registration is pending for the provided address.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body RegisterResendRequest true "Resend verification payload"
// @Success 200 {object} router.successResponse{data=RegisterResendResponse} "Resend result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/register/resend [post]
func (h *HTTPEndpoint) RegisterResend(r *router.Request) (any, error) {
	var req RegisterResendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RegisterResend(r.Context(), usecase.RegisterResendInput{
		Email: req.Email,
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResendResponse{VerificationToken: resp.VerificationToken}, nil
}

// RegisterVerify confirms the emailed code and creates the account.
// @Summary Verify email
// @Description Confirms the registration code and creates the user account.
// @Tags Identity, Authentication
// @Accept json
// @Param request body RegisterVerifyRequest true "Email verification payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired code"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/register/verify [post]
func (h *HTTPEndpoint) RegisterVerify(r *router.Request) (any, error) {
	var req RegisterVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.RegisterVerify(r.Context(), usecase.RegisterVerifyInput{
		VerificationToken: req.VerificationToken,
		Code:              req.Code,
	})
}

// PasswordForgot initiates a password reset flow.
// @Summary Request password reset
// @Description Sends a password reset code to the provided email address.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body PasswordForgotRequest true "Forgot password payload"
// @Success 200 {object} router.successResponse{data=PasswordForgotResponse} "Reset initiated"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/forgot [post]
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return &PasswordForgotResponse{ResetToken: resp.ResetToken}, nil
}

// PasswordVerify exchanges the emailed code for a single-use reset grant.
// @Summary Verify password reset code
// @Description Consumes the emailed code and returns a short-lived grant for the actual reset.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body PasswordVerifyRequest true "Reset code payload"
// @Success 200 {object} router.successResponse{data=PasswordVerifyResponse} "Reset grant"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/verify [post]
func (h *HTTPEndpoint) PasswordVerify(r *router.Request) (any, error) {
	var req PasswordVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordVerify(r.Context(), usecase.PasswordVerifyInput{
		ResetToken: req.ResetToken,
		Code:       req.Code,
	})
	if err != nil {
		return nil, err
	}

	return PasswordVerifyResponse{ResetGrant: resp.ResetGrant}, nil
}

// PasswordReset completes a password reset using a reset grant.
// @Summary Reset password
// @Description Sets a new password using the grant returned by the verify step.
// @Tags Identity, Authentication
// @Accept json
// @Param request body PasswordResetRequest true "Reset password payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired grant"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/reset [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		ResetGrant:  req.ResetGrant,
		NewPassword: req.NewPassword,
	})
}

// PasswordChange updates the current user's password.
// @Summary Change password
// @Description Updates the user's password after validating the current password.
// @Tags Identity, Profile Security
// @Security BearerAuth
// @Accept json
// @Param request body PasswordChangeRequest true "Change password payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/password/change [post]
func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
}

// EmailChange starts an email change by sending a code to the new address.
// @Summary Request email change
// @Description Sends a verification code to the new address after rechecking the password.
// @Tags Identity, Profile Security
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body EmailChangeRequest true "Email change payload"
// @Success 200 {object} router.successResponse{data=EmailChangeResponse} "Verification sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/email/change [post]
func (h *HTTPEndpoint) EmailChange(r *router.Request) (any, error) {
	var req EmailChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.EmailChange(r.Context(), usecase.EmailChangeInput{
		NewEmail: req.NewEmail,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return &EmailChangeResponse{VerificationToken: resp.VerificationToken}, nil
}

// EmailChangeVerify applies the email change after code verification.
// @Summary Verify email change
// @Description Confirms the code sent to the new address and applies the change.
// @Tags Identity, Profile Security
// @Security BearerAuth
// @Accept json
// @Param request body EmailChangeVerifyRequest true "Email change verification payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired code"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/email/change/verify [post]
func (h *HTTPEndpoint) EmailChangeVerify(r *router.Request) (any, error) {
	var req EmailChangeVerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.EmailChangeVerify(r.Context(), usecase.EmailChangeVerifyInput{
		VerificationToken: req.VerificationToken,
		Code:              req.Code,
	})
}

// MFAToggle enables or disables the emailed second factor.
// @Summary Toggle MFA
// @Description Turns the emailed login code on or off after rechecking the password.
// @Tags Identity, Profile Security
// @Security BearerAuth
// @Accept json
// @Param request body MFAToggleRequest true "MFA toggle payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/mfa [put]
func (h *HTTPEndpoint) MFAToggle(r *router.Request) (any, error) {
	var req MFAToggleRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.MFAToggle(r.Context(), usecase.MFAToggleInput{
		Enabled:  req.Enabled,
		Password: req.Password,
	})
}

// Logout revokes a refresh token.
// @Summary Logout
// @Description Invalidates the provided refresh token.
// @Tags Identity, Authentication
// @Accept json
// @Param request body LogoutRequest true "Logout payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/logout [post]
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	var req LogoutRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.Logout(r.Context(), usecase.LogoutInput{RefreshToken: req.RefreshToken})
}

// LogoutAll revokes all active sessions for the current user.
// @Summary Logout all sessions
// @Description Invalidates all refresh tokens for the authenticated user.
// @Tags Identity, Profile Security
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/logout-all [post]
func (h *HTTPEndpoint) LogoutAll(r *router.Request) (any, error) {
	return nil, h.uc.LogoutAll(r.Context(), usecase.LogoutAllInput{})
}

// ProfileUpdate updates the current user's profile information.
// @Summary Update profile
// @Description Updates profile details for the authenticated user.
// @Tags Identity, Profile
// @Security BearerAuth
// @Accept json
// @Param request body UpdateProfileRequest true "Profile update payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile [put]
func (h *HTTPEndpoint) ProfileUpdate(r *router.Request) (any, error) {
	var req UpdateProfileRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.ProfileUpdate(r.Context(), usecase.ProfileUpdateInput{FullName: req.FullName})
}

// ProfileUpdateAvatar updates the current user's avatar URL.
// @Summary Update profile avatar
// @Description Updates avatar for the authenticated user.
// @Tags Identity, Profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Param avatar formData file true "Avatar image"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile/avatar [put]
func (h *HTTPEndpoint) ProfileUpdateAvatar(r *router.Request) (any, error) {
	ctx := r.Context()

	file, err := r.StreamSingleFile("avatar")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close file", "error", err)
		}
	}()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.ProfileUpdateAvatar(ctx, usecase.ProfileUpdateAvatarInput{
		File:        io.MultiReader(bytes.NewReader(head[:n]), file),
		ContentType: http.DetectContentType(head[:n]),
	})
}

// Profile retrieves the current user's profile details.
// @Summary Get profile
// @Description Returns profile information for the authenticated user.
// @Tags Identity, Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile result"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context(), usecase.ProfileInput{})
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:         resp.ID,
		Email:      resp.Email,
		FullName:   resp.FullName,
		AvatarURL:  resp.AvatarURL,
		Status:     resp.Status,
		MFAEnabled: resp.MFAEnabled,
	}, nil
}

// @Summary Get profile permissions
// @Tags Identity, Profile Security
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=ProfilePermissionsResponse} "Permissions list"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/profile/permissions [get]
func (h *HTTPEndpoint) ProfilePermissions(r *router.Request) (any, error) {
	resp, err := h.uc.ProfilePermissions(r.Context())
	if err != nil {
		return nil, err
	}

	if resp == nil {
		resp = map[string][]string{}
	}

	return ProfilePermissionsResponse{Permissions: resp}, nil
}

// UserList returns a list of users with optional filters.
// @Summary List users
// @Description Returns a paginated list of users with optional search and status filters.
// @Tags Identity, Management Users
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by email or full name"
// @Param sort_by query string false "Sort by email, full name and etc."
// @Param sort_order query string false "Sort order asc or desc"
// @Param status query []int false "Filter by statuses (1=unverified|2=active|3=banned|4=deleted)"
// @Param date_from query string false "Filter by created_at >= date_from (RFC3339)"
// @Param date_to query string false "Filter by created_at <= date_to (RFC3339)"
// @Param size query int false "Pagination size"
// @Param page query int false "Pagination page"
// @Success 200 {object} router.successResponse{data=UsersResponse} "User list"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/users [get]
func (h *HTTPEndpoint) UserList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	dateFrom, err := r.GetQueryDate("date_from", time.RFC3339)
	if err != nil {
		return nil, err
	}

	dateTo, err := r.GetQueryDate("date_to", time.RFC3339)
	if err != nil {
		return nil, err
	}

	if !dateFrom.IsZero() && !dateTo.IsZero() && dateFrom.After(dateTo) {
		return nil, goerror.NewInvalidFormat("date_from must be before date_to")
	}

	resp, err := h.uc.UserList(r.Context(), usecase.UserListInput{
		Search:    r.GetQuery("search"),
		Statuses:  r.GetQueries("status"),
		SortBy:    r.GetQuery("sort_by"),
		SortOrder: r.GetQuery("sort_order"),
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Size:      size,
		Page:      page,
	})
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, 0, len(resp.Users))
	for _, item := range resp.Users {
		users = append(users, UserResponse{
			ID:        item.ID,
			Email:     item.Email,
			FullName:  item.FullName,
			AvatarURL: item.AvatarURL,
			Status:    item.Status,
			UpdateAt:  item.UpdatedAt,
		})
	}

	return UsersResponse{
		total: resp.Total,
		size:  resp.Size,
		page:  resp.Page,
		Users: users,
	}, nil
}

// @Summary Get user detail
// @Description Returns user details for a given user ID.
// @Tags Identity, Management Users
// @Security BearerAuth
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} router.successResponse{data=UserDetailResponse} "User detail"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/users/{id} [get]
func (h *HTTPEndpoint) UserDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserDetail(r.Context(), usecase.UserDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return UserDetailResponse{User: UserResponse{
		ID:        resp.User.ID,
		Email:     resp.User.Email,
		FullName:  resp.User.FullName,
		AvatarURL: resp.User.AvatarURL,
		Status:    resp.User.Status,
		UpdateAt:  resp.User.UpdatedAt,
	}}, nil
}

// @Summary Create user
// @Description Creates a new user.
// @Tags Identity, Management Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UserCreateRequest true "User creation payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/users [post]
func (h *HTTPEndpoint) UserCreate(r *router.Request) (any, error) {
	var req UserCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.UserCreate(r.Context(), usecase.UserCreateInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Status:   req.Status,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// @Summary Update user
// @Description Updates a user by ID.
// @Tags Identity, Management Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UserUpdateRequest true "User update payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/users/{id} [put]
func (h *HTTPEndpoint) UserUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UserUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.UserUpdate(r.Context(), usecase.UserUpdateInput{
		ID:       id,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Status:   req.Status,
	}); err != nil {
		return nil, err
	}

	return nil, nil
}

// @Summary Export users
// @Description Returns every user matching the filters, paged through internally.
// @Tags Identity, Management Users
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by email or full name"
// @Param sort_by query string false "Sort by email, full name and etc."
// @Param sort_order query string false "Sort order asc or desc"
// @Param status query []int false "Filter by statuses (1=unverified|2=active|3=banned|4=deleted)"
// @Param date_from query string false "Filter by created_at >= date_from (RFC3339)"
// @Param date_to query string false "Filter by created_at <= date_to (RFC3339)"
// @Success 200 {object} router.successResponse{data=UserExportResponse} "Exported users"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/users-export [get]
func (h *HTTPEndpoint) UserExport(r *router.Request) (any, error) {
	dateFrom, err := r.GetQueryDate("date_from", time.RFC3339)
	if err != nil {
		return nil, err
	}

	dateTo, err := r.GetQueryDate("date_to", time.RFC3339)
	if err != nil {
		return nil, err
	}

	if !dateFrom.IsZero() && !dateTo.IsZero() && dateFrom.After(dateTo) {
		return nil, goerror.NewInvalidFormat("date_from must be before date_to")
	}

	resp, err := h.uc.UserExport(r.Context(), usecase.UserExportInput{
		Search:    r.GetQuery("search"),
		Statuses:  r.GetQueries("status"),
		SortBy:    r.GetQuery("sort_by"),
		SortOrder: r.GetQuery("sort_order"),
		DateFrom:  dateFrom,
		DateTo:    dateTo,
	})
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, 0, len(resp.Users))
	for _, item := range resp.Users {
		users = append(users, UserResponse{
			ID:        item.ID,
			Email:     item.Email,
			FullName:  item.FullName,
			AvatarURL: item.AvatarURL,
			Status:    item.Status,
			UpdateAt:  item.UpdatedAt,
		})
	}

	return UserExportResponse{Users: users}, nil
}

// @Summary Import users
// @Description Creates or updates users in bulk, matching rows by email.
// @Tags Identity, Management Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UserImportRequest true "User import payload"
// @Success 200 {object} router.successResponse{data=UserImportResponse} "Import result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/users-import [post]
func (h *HTTPEndpoint) UserImport(r *router.Request) (any, error) {
	var req UserImportRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	users := make([]usecase.UserImportUserInput, 0, len(req.Users))
	for _, item := range req.Users {
		users = append(users, usecase.UserImportUserInput{
			Email:    item.Email,
			Password: item.Password,
			FullName: item.FullName,
			Status:   item.Status,
		})
	}

	resp, err := h.uc.UserImport(r.Context(), usecase.UserImportInput{Users: users})
	if err != nil {
		return nil, err
	}

	return UserImportResponse{
		Created: resp.Created,
		Updated: resp.Updated,
	}, nil
}

// @Summary Invite user
// @Description Provisions an unverified account and emails the invitee an activation code.
// @Tags Identity, Management Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UserInviteRequest true "User invitation payload"
// @Success 200 {object} router.successResponse{data=UserInviteResponse} "Invitation sent"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/users/invite [post]
func (h *HTTPEndpoint) UserInvite(r *router.Request) (any, error) {
	var req UserInviteRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.UserInvite(r.Context(), usecase.UserInviteInput{
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		return nil, err
	}

	return &UserInviteResponse{
		UserID:          resp.UserID,
		InvitationToken: resp.InvitationToken,
	}, nil
}

// InvitationValidate checks an invitation code without consuming it.
// @Summary Validate invitation
// @Description Checks the invitation token and code and returns the invitee's details.
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body InvitationValidateRequest true "Invitation validation payload"
// @Success 200 {object} router.successResponse{data=InvitationValidateResponse} "Invitation details"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired code"
// @Failure 409 {object} router.errorResponse "Account already activated"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/invitation/validate [post]
func (h *HTTPEndpoint) InvitationValidate(r *router.Request) (any, error) {
	var req InvitationValidateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.InvitationValidate(r.Context(), usecase.InvitationValidateInput{
		InvitationToken: req.InvitationToken,
		Code:            req.Code,
	})
	if err != nil {
		return nil, err
	}

	return InvitationValidateResponse{
		Email:    resp.Email,
		FullName: resp.FullName,
	}, nil
}

// InvitationAccept sets the invitee's password and activates the account.
// @Summary Accept invitation
// @Description Consumes the invitation code, stores the chosen password and activates the account.
// @Tags Identity, Authentication
// @Accept json
// @Param request body InvitationAcceptRequest true "Invitation acceptance payload"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Invalid or expired code"
// @Failure 409 {object} router.errorResponse "Account already activated"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/invitation/accept [post]
func (h *HTTPEndpoint) InvitationAccept(r *router.Request) (any, error) {
	var req InvitationAcceptRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.InvitationAccept(r.Context(), usecase.InvitationAcceptInput{
		InvitationToken: req.InvitationToken,
		Code:            req.Code,
		Password:        req.Password,
	})
}

// @Summary Delete user
// @Description Deletes a user by ID.
// @Tags Identity, Management Users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid path parameter"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/identity/users/{id} [delete]
func (h *HTTPEndpoint) UserDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.UserDelete(r.Context(), usecase.UserDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return nil, nil
}
