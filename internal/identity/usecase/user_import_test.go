package usecase

import (
	"context"
	"strconv"
	"testing"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	libJWT "github.com/golang-jwt/jwt/v5"
	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/hash"
	"github.com/inkpress/inkpress/internal/pkg/instrument"
	"github.com/inkpress/inkpress/internal/pkg/jwt"
	"github.com/inkpress/inkpress/internal/pkg/validator"
	"github.com/inkpress/inkpress/internal/shared/constant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectoryDB struct {
	repoDB
	upserted  []entity.UpsertUser
	hashes    map[string]string
	created   int
	updated   int
	pages     [][]entity.User
	total     int64
	listCalls int
	offsets   []int32
}

func (f *fakeDirectoryDB) UpsertUsers(_ context.Context, users []entity.UpsertUser, hashes map[string]string) (int, int, error) {
	f.upserted = users
	f.hashes = hashes

	return f.created, f.updated, nil
}

func (f *fakeDirectoryDB) GetUserList(_ context.Context, filter entity.UserListFilterData) ([]entity.User, int64, error) {
	f.offsets = append(f.offsets, filter.Page)
	call := f.listCalls
	f.listCalls++

	if call >= len(f.pages) {
		return nil, f.total, nil
	}

	return f.pages[call], f.total, nil
}

func testEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(`
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`)
	require.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	require.NoError(t, err)

	_, err = e.AddPolicy("42", constant.PermIdentityMgmtUsers, constant.PermActCreate)
	require.NoError(t, err)

	return e
}

func newUserAdminFixture(t *testing.T, db *fakeDirectoryDB) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	return New(Dependency{
		RepoDB:     db,
		Validator:  v,
		Bcrypt:     hash.NewBcrypt(4, "test-pepper"),
		UID:        &seqNumberID{},
		Instrument: instrument.NewNoop(),
		Enforcer:   testEnforcer(t),
	})
}

func adminCtx(t *testing.T) context.Context {
	t.Helper()

	return jwt.SetAuth(t.Context(), jwt.Claims{
		RegisteredClaims: libJWT.RegisteredClaims{Subject: "42"},
		UserID:           42,
	})
}

func TestUserImportHashesAndUpserts(t *testing.T) {
	db := &fakeDirectoryDB{created: 1, updated: 1}
	uc := newUserAdminFixture(t, db)

	out, err := uc.UserImport(adminCtx(t), UserImportInput{Users: []UserImportUserInput{
		{
			Email:    "Ada@Inkpress.DEV",
			Password: "correct horse battery",
			FullName: "Ada Lovelace",
			Status:   entity.UserStatusActive,
		},
		{Email: "noel@inkpress.dev"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Created)
	assert.Equal(t, 1, out.Updated)

	require.Len(t, db.upserted, 2)
	assert.Equal(t, "ada@inkpress.dev", db.upserted[0].Email)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Ada+Lovelace", db.upserted[0].AvatarURL)
	assert.Equal(t, int64(42), db.upserted[0].CreatedBy)
	assert.Equal(t, int64(42), db.upserted[0].UpdatedBy)

	// no full name, no avatar
	assert.Equal(t, "noel@inkpress.dev", db.upserted[1].Email)
	assert.Empty(t, db.upserted[1].AvatarURL)

	// only rows carrying a password get a hash, keyed by normalized email
	require.Len(t, db.hashes, 1)
	assert.NotEmpty(t, db.hashes["ada@inkpress.dev"])
	assert.NotEqual(t, "correct horse battery", db.hashes["ada@inkpress.dev"])
}

func TestUserImportDuplicateEmailRejected(t *testing.T) {
	db := &fakeDirectoryDB{}
	uc := newUserAdminFixture(t, db)

	_, err := uc.UserImport(adminCtx(t), UserImportInput{Users: []UserImportUserInput{
		{Email: "dup@inkpress.dev"},
		{Email: "dup@inkpress.dev"},
	}})
	require.Error(t, err)
	assert.Empty(t, db.upserted)
}

func TestUserImportRequiresAuthentication(t *testing.T) {
	db := &fakeDirectoryDB{}
	uc := newUserAdminFixture(t, db)

	_, err := uc.UserImport(t.Context(), UserImportInput{Users: []UserImportUserInput{
		{Email: "ada@inkpress.dev"},
	}})
	require.Error(t, err)
	assert.Empty(t, db.upserted)
}

func TestUserExportPagesThroughDirectory(t *testing.T) {
	first := make([]entity.User, 0, userExportPageSize)
	for i := range int(userExportPageSize) {
		first = append(first, entity.User{ID: int64(i + 1), Email: strconv.Itoa(i+1) + "@inkpress.dev"})
	}
	second := make([]entity.User, 0, 500)
	for i := range 500 {
		second = append(second, entity.User{ID: int64(i + 1001), Email: strconv.Itoa(i+1001) + "@inkpress.dev"})
	}

	db := &fakeDirectoryDB{pages: [][]entity.User{first, second}, total: 1500}
	uc := newUserAdminFixture(t, db)

	out, err := uc.UserExport(adminCtx(t), UserExportInput{})
	require.NoError(t, err)
	require.Len(t, out.Users, 1500)
	assert.Equal(t, int64(1), out.Users[0].ID)
	assert.Equal(t, int64(1500), out.Users[1499].ID)

	// two round trips, the second one offset past the first page
	assert.Equal(t, []int32{0, userExportPageSize}, db.offsets)
}

func TestUserExportEmptyDirectory(t *testing.T) {
	db := &fakeDirectoryDB{}
	uc := newUserAdminFixture(t, db)

	out, err := uc.UserExport(adminCtx(t), UserExportInput{})
	require.NoError(t, err)
	assert.Empty(t, out.Users)
	assert.Equal(t, 1, db.listCalls)
}
