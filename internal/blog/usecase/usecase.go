package usecase

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/config"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/instrument"
	"github.com/inkpress/inkpress/internal/pkg/jwt"
	"github.com/inkpress/inkpress/internal/pkg/storage"
	"github.com/inkpress/inkpress/internal/pkg/uid"
	"github.com/inkpress/inkpress/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type CommentCreatedEvent struct {
	CommentID     int64
	PostID        int64
	PostSlug      string
	PostTitle     string
	PostAuthorID  int64
	CommenterID   int64
	CommenterName string
	Excerpt       string
}

type repoMessaging interface {
	PublishCommentCreated(ctx context.Context, msg CommentCreatedEvent) error
}

type repoDB interface {
	CreatePost(ctx context.Context, p entity.NewPost) error
	UpdatePost(ctx context.Context, p entity.PatchPost) error
	MarkPostDeleted(ctx context.Context, id int64) error
	UpdatePostCover(ctx context.Context, id int64, coverURL string) error
	GetPostBySlug(ctx context.Context, slug string) (*entity.Post, error)
	GetPostList(ctx context.Context, filter entity.PostListFilterData) ([]entity.Post, int64, error)

	CreateComment(ctx context.Context, c entity.NewComment) error
	GetCommentByID(ctx context.Context, id int64) (*entity.Comment, error)
	GetCommentsByPost(ctx context.Context, postID int64) ([]entity.Comment, error)
	GetCommentEdits(ctx context.Context, commentID int64) ([]entity.CommentEdit, error)
	UpdateCommentBody(ctx context.Context, editID, commentID int64, newBody string) error
	MarkCommentDeleted(ctx context.Context, id int64) error
	SetCommentReaction(ctx context.Context, commentID, userID int64, kind entity.ReactionKind) error
	ClearCommentReaction(ctx context.Context, commentID, userID int64) error

	GetReactionTypeList(ctx context.Context) ([]entity.ReactionType, error)
	CreateReactionType(ctx context.Context, rt entity.ReactionType) error
	UpdateReactionType(ctx context.Context, rt entity.ReactionType) error
	DeleteReactionType(ctx context.Context, id int64) error
	SetPostReaction(ctx context.Context, postID, userID, typeID int64) error
	ClearPostReaction(ctx context.Context, postID, userID int64) error
	GetPostReactionCounts(ctx context.Context, postID int64) ([]entity.PostReactionCount, error)
	GetUserPostReaction(ctx context.Context, postID, userID int64) (*int64, error)

	GetCategoryList(ctx context.Context) ([]entity.Category, error)
	CreateCategory(ctx context.Context, cat entity.Category) error
	UpdateCategory(ctx context.Context, cat entity.Category) error
	DeleteCategory(ctx context.Context, id int64) error
	GetTagList(ctx context.Context) ([]entity.Tag, error)
	CreateTag(ctx context.Context, t entity.Tag) error
	UpdateTag(ctx context.Context, t entity.Tag) error
	DeleteTag(ctx context.Context, id int64) error

	GetUserFullName(ctx context.Context, userID int64) (string, error)

	ToggleBookmark(ctx context.Context, userID, postID int64) (bool, error)
	ToggleFavourite(ctx context.Context, userID, postID int64) (bool, error)
	GetBookmarkedPosts(ctx context.Context, userID int64, size, offset int32) ([]entity.Post, int64, error)
	GetFavouritePosts(ctx context.Context, userID int64, size, offset int32) ([]entity.Post, int64, error)
}

type repoCache interface {
	GetPostList(ctx context.Context, key string) ([]entity.Post, int64, bool, error)
	SetPostList(ctx context.Context, key string, posts []entity.Post, total int64, ttl time.Duration) error
	InvalidatePostList(ctx context.Context) error
	IncrementViewCount(ctx context.Context, postID int64) (int64, error)
	GetViewCounts(ctx context.Context, postIDs []int64) (map[int64]int64, error)
}

type Usecase struct {
	repoDB        repoDB
	repoCache     repoCache
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	uid           uid.NumberID
	uuid          uid.StringID
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
}

type Dependency struct {
	RepoDB        repoDB
	RepoCache     repoCache
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	UID           uid.NumberID
	UUID          uid.StringID
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoCache:     dep.RepoCache,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		uid:           dep.UID,
		uuid:          dep.UUID,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("blog.usecase").Start(ctx, name)
}

func (s *Usecase) authenticated(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	return clm, nil
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
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

// getOwnedPost loads a post and ensures the caller wrote it.
func (s *Usecase) getOwnedPost(ctx context.Context, slug string, authorID int64) (*entity.Post, error) {
	post, err := s.repoDB.GetPostBySlug(ctx, slug)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("Post not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get post by slug", "slug", slug, "error", err)
		return nil, goerror.NewServer(err)
	}

	if post.AuthorID != authorID {
		return nil, goerror.NewBusiness("Only the author can modify this post", goerror.CodeForbidden)
	}

	return post, nil
}

// invalidatePostListCache drops the cached list pages after any post
// write. A failed drop only means stale pages until their TTL, so it is
// logged and swallowed.
func (s *Usecase) invalidatePostListCache(ctx context.Context) {
	if err := s.repoCache.InvalidatePostList(ctx); err != nil {
		slog.WarnContext(ctx, "failed to invalidate post list cache", "error", err)
	}
}

// fillViewCounts merges the redis counters into a page of posts. Counter
// failures degrade to zero counts, never to a failed request.
func (s *Usecase) fillViewCounts(ctx context.Context, posts []entity.Post) {
	if len(posts) == 0 {
		return
	}

	ids := make([]int64, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	counts, err := s.repoCache.GetViewCounts(ctx, ids)
	if err != nil {
		slog.WarnContext(ctx, "failed to get post view counts", "error", err)
		return
	}

	for i := range posts {
		posts[i].ViewCount = counts[posts[i].ID]
	}
}

// wordsPerMinute is the assumed adult reading speed.
const wordsPerMinute = 225

// readTimeMinutes estimates how long a body takes to read, rounded up
// with a floor of one minute. An empty body reads in zero.
func readTimeMinutes(body string) int32 {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute

	return int32(minutes)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowers the text and collapses every non-alphanumeric run into a
// single dash.
func slugify(raw string) string {
	out := strings.ToLower(strings.TrimSpace(raw))
	out = slugStrip.ReplaceAllString(out, "-")

	return strings.Trim(out, "-")
}
