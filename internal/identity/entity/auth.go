package entity

import (
	"time"

	"github.com/inkpress/inkpress/internal/pkg/valueobject"
)

type User struct {
	ID         int64
	Email      string
	FullName   string
	AvatarURL  string
	Status     UserStatus
	MFAEnabled bool
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

type UserCredential struct {
	UserID    int64
	Password  string // hashed
	UpdatedAt time.Time
}

type RefreshToken struct {
	ID                int64
	UserID            int64
	Token             string
	ExpiresAt         time.Time
	Revoked           bool
	ReplacedByTokenID int64
	Metadata          valueobject.JSONMap
}

// ---- //

type UserLoginInfo struct {
	ID         int64
	Email      string
	FullName   string
	Status     UserStatus
	Password   string
	MFAEnabled bool
}

type UserCredentialInfo struct {
	ID       int64
	Email    string
	Status   UserStatus
	Password string
}

type RotateRefreshToken struct {
	NewID        int64
	OldID        int64
	UserID       int64
	NewToken     string
	NewExpiresAt time.Time
}

type UserRefreshToken struct {
	UserID                   int64
	UserEmail                string
	UserStatus               UserStatus
	RefreshID                int64
	RefreshToken             string
	RefreshRevoked           bool
	RefreshReplacedByTokenID *int64
	RefreshExpiresAt         time.Time
}

type UserListFilterData struct {
	IsFilterBySearch bool
	IsFilterByStatus bool
	Search           string
	Statuses         []int16
	DateFrom         time.Time
	DateTo           time.Time
	Size             int32
	Page             int32
	OrderBy          string
	OrderDirection   string
}

type NewUser struct {
	ID        int64
	Email     string
	FullName  string
	AvatarURL string
	Status    UserStatus
	CreatedBy int64
	UpdatedBy int64
}

type PatchUser struct {
	ID        int64
	Email     string
	FullName  string
	AvatarURL string
	Status    UserStatus
	UpdatedBy int64
}

// UpsertUser is one row of a bulk import. The ID is only used when the
// email does not match an existing user and a fresh row is inserted.
type UpsertUser struct {
	ID        int64
	Email     string
	FullName  string
	AvatarURL string
	Status    UserStatus
	CreatedBy int64
	UpdatedBy int64
}

// RegisterIndex points an email at its outstanding verification token so
// repeated sign-ups and resends reuse one pending window. The profile is
// carried along so a resend can mint a fresh challenge without a user row.
type RegisterIndex struct {
	Token        string `json:"token"`
	FullName     string `json:"full_name"`
	PasswordHash string `json:"password_hash"`
}

// PendingRegistration is the profile held inside a registration challenge
// until the email is verified. No user row exists before that.
type PendingRegistration struct {
	Email        string
	FullName     string
	PasswordHash string
}

// Meta flattens the pending profile into a challenge meta payload.
func (p PendingRegistration) Meta() map[string]any {
	return map[string]any{
		"email":         p.Email,
		"full_name":     p.FullName,
		"password_hash": p.PasswordHash,
	}
}

// PendingRegistrationFromMeta is the inverse of Meta. Values written by
// Meta are always strings; anything else yields a zero field.
func PendingRegistrationFromMeta(meta map[string]any) PendingRegistration {
	str := func(key string) string {
		v, _ := meta[key].(string)
		return v
	}

	return PendingRegistration{
		Email:        str("email"),
		FullName:     str("full_name"),
		PasswordHash: str("password_hash"),
	}
}
