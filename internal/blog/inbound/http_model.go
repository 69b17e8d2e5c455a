package inbound

import (
	"strconv"
	"strings"
	"time"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/blog/usecase"
	"github.com/samber/lo"
)

type CategoryResponse struct {
	ID   int64  `json:"id,string"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type TagResponse struct {
	ID   int64  `json:"id,string"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type PostResponse struct {
	ID         int64              `json:"id,string"`
	AuthorID   int64              `json:"author_id,string"`
	AuthorName string             `json:"author_name"`
	Slug       string             `json:"slug"`
	Title      string             `json:"title"`
	Body       string             `json:"body,omitempty"`
	CoverURL   string             `json:"cover_url,omitempty"`
	Status     string             `json:"status"`
	ReadTime   int32              `json:"read_time"`
	Categories []CategoryResponse `json:"categories"`
	Tags       []TagResponse      `json:"tags"`
	ViewCount  int64              `json:"view_count"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func toPostResponse(p entity.Post, withBody bool) PostResponse {
	resp := PostResponse{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		Slug:       p.Slug,
		Title:      p.Title,
		Status:     strings.ToLower(p.Status.String()),
		ReadTime:   p.ReadTime,
		Categories: lo.Map(p.Categories, func(c entity.Category, _ int) CategoryResponse {
			return CategoryResponse{ID: c.ID, Slug: c.Slug, Name: c.Name}
		}),
		Tags: lo.Map(p.Tags, func(t entity.Tag, _ int) TagResponse {
			return TagResponse{ID: t.ID, Slug: t.Slug, Name: t.Name}
		}),
		ViewCount: p.ViewCount,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if withBody {
		resp.Body = p.Body
	}
	if p.CoverURL != nil {
		resp.CoverURL = *p.CoverURL
	}

	return resp
}

type PostCreateRequest struct {
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Status      string   `json:"status"`
	CategoryIDs []string `json:"category_ids"`
	Tags        []string `json:"tags"`
}

// categoryIDs parses the string-encoded ids, silently skipping garbage;
// validation of the surviving set happens in the usecase.
func (r PostCreateRequest) categoryIDs() []int64 {
	return parseIDs(r.CategoryIDs)
}

func parseIDs(raws []string) []int64 {
	ids := make([]int64, 0, len(raws))
	for _, raw := range raws {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}

	return ids
}

type PostCreateResponse struct {
	ID   int64  `json:"id,string"`
	Slug string `json:"slug"`
}

func (PostCreateResponse) Message() string {
	return "Post created."
}

type PostUpdateRequest struct {
	Title       *string  `json:"title"`
	Body        *string  `json:"body"`
	Status      *string  `json:"status"`
	CategoryIDs []string `json:"category_ids"`
	Tags        []string `json:"tags"`
}

type PostReactionCountResponse struct {
	ID    int64  `json:"id,string"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Count int64  `json:"count"`
}

type PostDetailResponse struct {
	Post       PostResponse                `json:"post"`
	Reactions  []PostReactionCountResponse `json:"reactions"`
	MyReaction string                      `json:"my_reaction,omitempty"`
}

type PostsResponse struct {
	Posts []PostResponse `json:"posts"`
	// meta
	total int64
	size  int32
	page  int32
}

func (r PostsResponse) Meta() map[string]any {
	return map[string]any{
		"total": r.total,
		"size":  r.size,
		"page":  r.page,
	}
}

type CommentCreateRequest struct {
	ParentID *int64 `json:"parent_id,omitempty"`
	Body     string `json:"body"`
}

type CommentCreateResponse struct {
	ID int64 `json:"id,string"`
}

func (CommentCreateResponse) Message() string {
	return "Comment posted."
}

type CommentUpdateRequest struct {
	Body string `json:"body"`
}

type CommentReactRequest struct {
	Reaction string `json:"reaction"`
}

type CommentResponse struct {
	ID         int64             `json:"id,string"`
	AuthorID   int64             `json:"author_id,string"`
	AuthorName string            `json:"author_name"`
	Body       string            `json:"body"`
	Edited     bool              `json:"edited"`
	Deleted    bool              `json:"deleted"`
	Likes      int64             `json:"likes"`
	Dislikes   int64             `json:"dislikes"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	Replies    []CommentResponse `json:"replies"`
}

func toCommentResponse(tc usecase.ThreadedComment) CommentResponse {
	return CommentResponse{
		ID:         tc.Comment.ID,
		AuthorID:   tc.Comment.AuthorID,
		AuthorName: tc.Comment.AuthorName,
		Body:       tc.Comment.Body,
		Edited:     tc.Comment.Edited,
		Deleted:    tc.Comment.Deleted,
		Likes:      tc.Comment.Likes,
		Dislikes:   tc.Comment.Dislikes,
		CreatedAt:  tc.Comment.CreatedAt,
		UpdatedAt:  tc.Comment.UpdatedAt,
		Replies:    lo.Map(tc.Replies, func(r usecase.ThreadedComment, _ int) CommentResponse { return toCommentResponse(r) }),
	}
}

type CommentsResponse struct {
	Comments []CommentResponse `json:"comments"`
}

type CommentEditResponse struct {
	ID        int64     `json:"id,string"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentHistoryResponse struct {
	Edits []CommentEditResponse `json:"edits"`
}

type BookmarkToggleResponse struct {
	Bookmarked bool `json:"bookmarked"`
}

type FavouriteToggleResponse struct {
	Favourited bool `json:"favourited"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CategoryCreateRequest struct {
	Name string `json:"name"`
}

type CategoryCreateResponse struct {
	ID   int64  `json:"id,string"`
	Slug string `json:"slug"`
}

type CategoryUpdateRequest struct {
	Name string `json:"name"`
}

type TagsResponse struct {
	Tags []TagResponse `json:"tags"`
}

type TagCreateRequest struct {
	Name string `json:"name"`
}

type TagCreateResponse struct {
	ID   int64  `json:"id,string"`
	Slug string `json:"slug"`
}

type TagUpdateRequest struct {
	Name string `json:"name"`
}

type PostReactRequest struct {
	TypeID string `json:"type_id"` // empty or "0" withdraws
}

type ReactionTypeResponse struct {
	ID    int64  `json:"id,string"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type ReactionTypesResponse struct {
	Types []ReactionTypeResponse `json:"reaction_types"`
}

type ReactionTypeCreateRequest struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type ReactionTypeCreateResponse struct {
	ID int64 `json:"id,string"`
}

type ReactionTypeUpdateRequest struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}
