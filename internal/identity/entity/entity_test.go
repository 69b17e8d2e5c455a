package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSafeUserStatuses(t *testing.T) {
	got := ParseSafeUserStatuses([]string{"2", "3", "2", "0", "99", "garbage", "1"})
	assert.Equal(t, []UserStatus{UserStatusActive, UserStatusBanned, UserStatusUnverified}, got)

	assert.Empty(t, ParseSafeUserStatuses(nil))
	assert.Empty(t, ParseSafeUserStatuses([]string{"0", "-1", "x"}))
}

func TestUserStatusEnsure(t *testing.T) {
	assert.Equal(t, UserStatusActive, UserStatusActive.Ensure())
	assert.Equal(t, UserStatusUnknown, UserStatus(42).Ensure())
	assert.True(t, UserStatus(42).IsUnknown())
	assert.False(t, UserStatusInactive.IsUnknown())
}

func TestPendingRegistrationMetaRoundTrip(t *testing.T) {
	p := PendingRegistration{
		Email:        "writer@inkpress.dev",
		FullName:     "Ada Writer",
		PasswordHash: "$2a$10$hash",
	}

	assert.Equal(t, p, PendingRegistrationFromMeta(p.Meta()))

	// Challenge meta survives a JSON round trip as map[string]any with
	// string values; anything off-type zeroes the field instead of
	// panicking.
	got := PendingRegistrationFromMeta(map[string]any{
		"email":     "writer@inkpress.dev",
		"full_name": 12345,
	})
	assert.Equal(t, "writer@inkpress.dev", got.Email)
	assert.Empty(t, got.FullName)
	assert.Empty(t, got.PasswordHash)
}
