package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/config"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/googleid"
	"github.com/inkpress/inkpress/internal/pkg/hash"
	"github.com/inkpress/inkpress/internal/pkg/instrument"
	"github.com/inkpress/inkpress/internal/pkg/jwt"
	"github.com/inkpress/inkpress/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGoogleVerifier struct {
	claims *googleid.Claims
	err    error
}

func (f fakeGoogleVerifier) Verify(context.Context, string) (*googleid.Claims, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.claims, nil
}

type fakeSocialDB struct {
	repoDB
	user          *entity.User
	created       []entity.NewUser
	refreshTokens []entity.RefreshToken
}

func (f *fakeSocialDB) GetUserByEmail(_ context.Context, email string, _ bool) (*entity.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}

	return nil, goerror.ErrNotFound
}

func (f *fakeSocialDB) CreateUserWithCredential(_ context.Context, user entity.NewUser, _ string) error {
	f.created = append(f.created, user)
	return nil
}

func (f *fakeSocialDB) CreateRefreshToken(_ context.Context, in entity.RefreshToken) error {
	f.refreshTokens = append(f.refreshTokens, in)
	return nil
}

type staticJWT struct{}

func (staticJWT) Generate(_ int64, email string) (string, error) {
	return "jwt-for-" + email, nil
}

func (staticJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqStringID struct {
	prefix string
	n      int
}

func (s *seqStringID) Generate() string {
	s.n++
	return s.prefix + string(rune('0'+s.n))
}

type monthTTLConfig struct {
	config.Config
}

func (monthTTLConfig) GetDay(string) time.Duration {
	return 30 * 24 * time.Hour
}

func newGoogleLoginFixture(t *testing.T, db *fakeSocialDB, verifier googleid.Verifier) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	return New(Dependency{
		RepoDB:        db,
		RepoMessaging: fakeRegisterMQ{},
		Validator:     v,
		Config:        monthTTLConfig{},
		HMAC:          hash.NewHMACSHA256("test-secret"),
		Bcrypt:        hash.NewBcrypt(4, "test-pepper"),
		UID:           &seqNumberID{},
		OID:           &seqStringID{prefix: "opaque-"},
		Clock:         fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		JWT:           staticJWT{},
		GoogleID:      verifier,
		Instrument:    instrument.NewNoop(),
	})
}

func TestLoginGoogleCreatesAccountOnFirstSignIn(t *testing.T) {
	db := &fakeSocialDB{}
	uc := newGoogleLoginFixture(t, db, fakeGoogleVerifier{claims: &googleid.Claims{
		Subject:       "google-sub-1",
		Email:         "Ada@Inkpress.DEV",
		FullName:      "Ada Lovelace",
		EmailVerified: true,
	}})

	out, err := uc.LoginGoogle(t.Context(), LoginGoogleInput{IDToken: "raw-token"})
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)

	require.Len(t, db.created, 1)
	assert.Equal(t, "ada@inkpress.dev", db.created[0].Email)
	assert.Equal(t, "Ada Lovelace", db.created[0].FullName)
	assert.Equal(t, entity.UserStatusActive, db.created[0].Status)
	require.Len(t, db.refreshTokens, 1)
	assert.Equal(t, db.created[0].ID, db.refreshTokens[0].UserID)
}

func TestLoginGoogleExistingAccountSignsIn(t *testing.T) {
	db := &fakeSocialDB{user: &entity.User{
		ID:     7,
		Email:  "ada@inkpress.dev",
		Status: entity.UserStatusActive,
	}}
	uc := newGoogleLoginFixture(t, db, fakeGoogleVerifier{claims: &googleid.Claims{
		Subject:       "google-sub-1",
		Email:         "ada@inkpress.dev",
		FullName:      "Ada Lovelace",
		EmailVerified: true,
	}})

	out, err := uc.LoginGoogle(t.Context(), LoginGoogleInput{IDToken: "raw-token"})
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, "jwt-for-ada@inkpress.dev", out.AccessToken)
	assert.Empty(t, db.created)
	require.Len(t, db.refreshTokens, 1)
	assert.Equal(t, int64(7), db.refreshTokens[0].UserID)
}

func TestLoginGoogleRejectsBannedAccount(t *testing.T) {
	db := &fakeSocialDB{user: &entity.User{
		ID:     7,
		Email:  "ada@inkpress.dev",
		Status: entity.UserStatusBanned,
	}}
	uc := newGoogleLoginFixture(t, db, fakeGoogleVerifier{claims: &googleid.Claims{
		Email:         "ada@inkpress.dev",
		EmailVerified: true,
	}})

	_, err := uc.LoginGoogle(t.Context(), LoginGoogleInput{IDToken: "raw-token"})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "account is banned", gerr.Msg())
	assert.Empty(t, db.refreshTokens)
}

func TestLoginGoogleRejectsInvalidToken(t *testing.T) {
	db := &fakeSocialDB{}
	uc := newGoogleLoginFixture(t, db, fakeGoogleVerifier{err: googleid.ErrInvalidToken})

	_, err := uc.LoginGoogle(t.Context(), LoginGoogleInput{IDToken: "garbage"})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "invalid Google token", gerr.Msg())
	assert.Empty(t, db.created)
}

func TestLoginGoogleRejectsUnverifiedEmail(t *testing.T) {
	db := &fakeSocialDB{}
	uc := newGoogleLoginFixture(t, db, fakeGoogleVerifier{claims: &googleid.Claims{
		Email:         "ada@inkpress.dev",
		EmailVerified: false,
	}})

	_, err := uc.LoginGoogle(t.Context(), LoginGoogleInput{IDToken: "raw-token"})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Google account email is not verified", gerr.Msg())
	assert.Empty(t, db.created)
}
