package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/config"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/instrument"
	"github.com/inkpress/inkpress/internal/pkg/jwt"
	"github.com/inkpress/inkpress/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlogDB struct {
	repoDB
	listPosts    []entity.Post
	listTotal    int64
	listCalls    int
	created      []entity.NewPost
	conflictOnce bool

	comment  *entity.Comment
	editIDs  []int64
	newBodys []string
}

func (f *fakeBlogDB) GetPostList(_ context.Context, _ entity.PostListFilterData) ([]entity.Post, int64, error) {
	f.listCalls++
	return f.listPosts, f.listTotal, nil
}

func (f *fakeBlogDB) CreatePost(_ context.Context, p entity.NewPost) error {
	if f.conflictOnce {
		f.conflictOnce = false
		return goerror.ErrConflict
	}
	f.created = append(f.created, p)

	return nil
}

func (f *fakeBlogDB) GetCommentByID(_ context.Context, id int64) (*entity.Comment, error) {
	if f.comment == nil || f.comment.ID != id {
		return nil, goerror.ErrNotFound
	}

	c := *f.comment

	return &c, nil
}

func (f *fakeBlogDB) UpdateCommentBody(_ context.Context, editID, _ int64, newBody string) error {
	f.editIDs = append(f.editIDs, editID)
	f.newBodys = append(f.newBodys, newBody)

	return nil
}

type fakeBlogCache struct {
	repoCache
	pages   map[string][]entity.Post
	totals  map[string]int64
	setKeys []string
}

func newFakeBlogCache() *fakeBlogCache {
	return &fakeBlogCache{
		pages:  map[string][]entity.Post{},
		totals: map[string]int64{},
	}
}

func (f *fakeBlogCache) GetPostList(_ context.Context, key string) ([]entity.Post, int64, bool, error) {
	posts, ok := f.pages[key]
	if !ok {
		return nil, 0, false, nil
	}

	return posts, f.totals[key], true, nil
}

func (f *fakeBlogCache) SetPostList(_ context.Context, key string, posts []entity.Post, total int64, _ time.Duration) error {
	f.pages[key] = posts
	f.totals[key] = total
	f.setKeys = append(f.setKeys, key)

	return nil
}

func (f *fakeBlogCache) InvalidatePostList(context.Context) error {
	f.pages = map[string][]entity.Post{}
	f.totals = map[string]int64{}

	return nil
}

func (f *fakeBlogCache) GetViewCounts(_ context.Context, _ []int64) (map[int64]int64, error) {
	return map[int64]int64{}, nil
}

type minuteTTLConfig struct {
	config.Config
}

func (minuteTTLConfig) GetSecond(string) time.Duration {
	return time.Minute
}

type seqUID struct {
	n int64
}

func (s *seqUID) Generate() int64 {
	s.n++
	return s.n
}

func newBlogFixture(t *testing.T, db *fakeBlogDB, cache *fakeBlogCache) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	return New(Dependency{
		RepoDB:     db,
		RepoCache:  cache,
		Validator:  v,
		Config:     minuteTTLConfig{},
		UID:        &seqUID{},
		Instrument: instrument.NewNoop(),
	})
}

func writerCtx(t *testing.T) context.Context {
	t.Helper()

	return jwt.SetAuth(t.Context(), jwt.Claims{
		RegisteredClaims: libJWT.RegisteredClaims{Subject: "7"},
		UserID:           7,
	})
}

func TestPostListCacheMissFillsCache(t *testing.T) {
	db := &fakeBlogDB{
		listPosts: []entity.Post{{ID: 1, Slug: "first", Title: "First"}},
		listTotal: 1,
	}
	cache := newFakeBlogCache()
	uc := newBlogFixture(t, db, cache)

	out, err := uc.PostList(t.Context(), PostListInput{Size: 10, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Posts, 1)

	assert.Equal(t, 1, db.listCalls)
	require.Contains(t, cache.pages, "1:10:")
	assert.Equal(t, []string{"1:10:"}, cache.setKeys)
}

func TestPostListCacheHitSkipsDatabase(t *testing.T) {
	db := &fakeBlogDB{}
	cache := newFakeBlogCache()
	cache.pages["1:10:"] = []entity.Post{{ID: 1, Slug: "first", Title: "First"}}
	cache.totals["1:10:"] = 1
	uc := newBlogFixture(t, db, cache)

	out, err := uc.PostList(t.Context(), PostListInput{Size: 10, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	require.Len(t, out.Posts, 1)
	assert.Equal(t, "first", out.Posts[0].Slug)

	// the page came straight from the cache
	assert.Zero(t, db.listCalls)
	assert.Empty(t, cache.setKeys)
}

func TestPostListSearchKeyedSeparately(t *testing.T) {
	db := &fakeBlogDB{listTotal: 0}
	cache := newFakeBlogCache()
	cache.pages["1:10:"] = []entity.Post{{ID: 1}}
	cache.totals["1:10:"] = 1
	uc := newBlogFixture(t, db, cache)

	_, err := uc.PostList(t.Context(), PostListInput{Search: "Go", Size: 10, Page: 1})
	require.NoError(t, err)

	// a searched page never reuses the unsearched one
	assert.Equal(t, 1, db.listCalls)
	assert.Contains(t, cache.pages, "1:10:go")
}

func TestPostCreateSlugConflictRetriesWithSuffix(t *testing.T) {
	db := &fakeBlogDB{conflictOnce: true}
	cache := newFakeBlogCache()
	uc := newBlogFixture(t, db, cache)

	out, err := uc.PostCreate(writerCtx(t), PostCreateInput{
		Title:  "Hello World",
		Body:   "a body worth reading",
		Status: "published",
	})
	require.NoError(t, err)

	require.Len(t, db.created, 1)
	wantSlug := "hello-world-" + strconv.FormatInt(out.ID, 36)
	assert.Equal(t, wantSlug, out.Slug)
	assert.Equal(t, wantSlug, db.created[0].Slug)
	assert.Equal(t, int64(7), db.created[0].AuthorID)
	assert.Equal(t, entity.PostStatusPublished, db.created[0].Status)
	assert.Equal(t, int32(1), db.created[0].ReadTime)
}

func TestPostCreateRequiresAuthentication(t *testing.T) {
	db := &fakeBlogDB{}
	uc := newBlogFixture(t, db, newFakeBlogCache())

	_, err := uc.PostCreate(t.Context(), PostCreateInput{
		Title:  "Hello World",
		Body:   "a body",
		Status: "draft",
	})
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "Authentication required", gerr.Msg())
	assert.Empty(t, db.created)
}
