package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/hash"
	"github.com/inkpress/inkpress/internal/pkg/idempotency"
	"github.com/inkpress/inkpress/internal/pkg/instrument"
	"github.com/inkpress/inkpress/internal/pkg/otp"
	"github.com/inkpress/inkpress/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memChallengeStore struct {
	items map[string]otp.Challenge
}

func newMemChallengeStore() *memChallengeStore {
	return &memChallengeStore{items: map[string]otp.Challenge{}}
}

func (s *memChallengeStore) Set(_ context.Context, key string, ch otp.Challenge, _ time.Duration) error {
	s.items[key] = ch
	return nil
}

func (s *memChallengeStore) Get(_ context.Context, key string) (*otp.Challenge, error) {
	ch, ok := s.items[key]
	if !ok {
		return nil, nil
	}

	return &ch, nil
}

func (s *memChallengeStore) Delete(_ context.Context, key string) error {
	delete(s.items, key)
	return nil
}

// fakeIdemp tracks states in memory with the same transitions as the
// redis-backed tracker.
type fakeIdemp struct {
	states map[string]idempotency.State
}

func newFakeIdemp() *fakeIdemp {
	return &fakeIdemp{states: map[string]idempotency.State{}}
}

func (f *fakeIdemp) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	if st, ok := f.states[key]; ok {
		return st, nil
	}
	f.states[key] = idempotency.StateInProgress

	return idempotency.StateNone, nil
}

func (f *fakeIdemp) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	f.states[key] = idempotency.StateCompleted
	return nil
}

func (f *fakeIdemp) MarkFailed(_ context.Context, key string, _ time.Duration) error {
	f.states[key] = idempotency.StateFailed
	return nil
}

func (f *fakeIdemp) Release(_ context.Context, key string) error {
	delete(f.states, key)
	return nil
}

func (f *fakeIdemp) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	state, _ := f.Acquire(ctx, key, 0)
	switch state {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		return idempotency.ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		f.states[key] = idempotency.StateFailed
		return err
	}
	f.states[key] = idempotency.StateCompleted

	return nil
}

type fakeRegisterDB struct {
	repoDB
	createErr error
	created   []entity.NewUser
}

func (f *fakeRegisterDB) CreateUserWithCredential(_ context.Context, user entity.NewUser, _ string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)

	return nil
}

type fakeRegisterCache struct {
	repoCache
}

func (fakeRegisterCache) DeleteRegisterIndex(context.Context, string) error {
	return nil
}

type fakeRegisterMQ struct{}

func (fakeRegisterMQ) PublishOTPCode(context.Context, OTPCodeEvent) error {
	return nil
}

func (fakeRegisterMQ) PublishUserRegistered(context.Context, UserRegisteredEvent) error {
	return nil
}

type seqNumberID struct {
	n int64
}

func (s *seqNumberID) Generate() int64 {
	s.n++
	return s.n
}

func newRegisterVerifyFixture(t *testing.T) (*Usecase, *otp.Manager, *fakeIdemp, *fakeRegisterDB) {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	manager, err := otp.NewManager(newMemChallengeStore(), hash.NewArgon2id("test-pepper"), otp.DefaultConfig())
	require.NoError(t, err)

	idemp := newFakeIdemp()
	db := &fakeRegisterDB{}

	uc := New(Dependency{
		RepoDB:        db,
		RepoCache:     fakeRegisterCache{},
		RepoMessaging: fakeRegisterMQ{},
		Idempotency:   idemp,
		Validator:     v,
		OTP:           manager,
		UID:           &seqNumberID{},
		Instrument:    instrument.NewNoop(),
	})

	return uc, manager, idemp, db
}

func issueRegisterChallenge(t *testing.T, manager *otp.Manager) (token, code string) {
	t.Helper()

	meta := entity.PendingRegistration{
		Email:        "writer@inkpress.dev",
		FullName:     "Ada Writer",
		PasswordHash: "$2a$10$hash",
	}.Meta()

	token, code, err := manager.Issue(t.Context(), otpScopeRegister, nil, meta)
	require.NoError(t, err)

	return token, code
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}

	return "000000"
}

func TestRegisterVerifyMistypedCodeAllowsRetry(t *testing.T) {
	uc, manager, idemp, db := newRegisterVerifyFixture(t)
	token, code := issueRegisterChallenge(t, manager)

	err := uc.RegisterVerify(t.Context(), RegisterVerifyInput{
		VerificationToken: token,
		Code:              wrongCode(code),
	})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "invalid code", gerr.Msg())

	// A mistyped code must not latch the failed state; the challenge's
	// attempt budget still has room and the right code must go through.
	assert.Empty(t, idemp.states)

	err = uc.RegisterVerify(t.Context(), RegisterVerifyInput{
		VerificationToken: token,
		Code:              code,
	})
	require.NoError(t, err)
	require.Len(t, db.created, 1)
	assert.Equal(t, "writer@inkpress.dev", db.created[0].Email)
	assert.Equal(t, entity.UserStatusActive, db.created[0].Status)
	assert.Equal(t, idempotency.StateCompleted, idemp.states["identity:register_verify:"+token])

	// Retried deliveries of the completed token are absorbed.
	err = uc.RegisterVerify(t.Context(), RegisterVerifyInput{
		VerificationToken: token,
		Code:              code,
	})
	require.NoError(t, err)
	assert.Len(t, db.created, 1)
}

func TestRegisterVerifyUnknownTokenLeavesNoState(t *testing.T) {
	uc, _, idemp, db := newRegisterVerifyFixture(t)

	err := uc.RegisterVerify(t.Context(), RegisterVerifyInput{
		VerificationToken: "feedfacefeedfacefeedfacefeedface",
		Code:              "123456",
	})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "code expired or too many attempts", gerr.Msg())
	assert.Empty(t, idemp.states)
	assert.Empty(t, db.created)
}

func TestRegisterVerifyInfrastructureFailureLatches(t *testing.T) {
	uc, manager, idemp, db := newRegisterVerifyFixture(t)
	token, code := issueRegisterChallenge(t, manager)

	db.createErr = errors.New("connection reset")

	err := uc.RegisterVerify(t.Context(), RegisterVerifyInput{
		VerificationToken: token,
		Code:              code,
	})
	require.Error(t, err)
	assert.Equal(t, idempotency.StateFailed, idemp.states["identity:register_verify:"+token])

	err = uc.RegisterVerify(t.Context(), RegisterVerifyInput{
		VerificationToken: token,
		Code:              code,
	})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "verification failed, request a new code", gerr.Msg())
	assert.Empty(t, db.created)
}
