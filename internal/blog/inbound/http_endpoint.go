package inbound

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/blog/usecase"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/inkpress/inkpress/internal/pkg/router"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for posts, comments, engagement and
// taxonomy.
type HTTPEndpoint struct {
	uc uc
}

// PostList returns the public feed of published posts.
// @Summary List posts
// @Description Returns a paginated list of published posts, newest first, with optional search.
// @Tags Blog, Posts
// @Produce json
// @Param search query string false "Search in title and body"
// @Param size query int false "Pagination size"
// @Param page query int false "Pagination page"
// @Success 200 {object} router.successResponse{data=PostsResponse} "Post list"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts [get]
func (h *HTTPEndpoint) PostList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.PostList(r.Context(), usecase.PostListInput{
		Search: strings.TrimSpace(r.GetQuery("search")),
		Size:   size,
		Page:   page,
	})
	if err != nil {
		return nil, err
	}

	return PostsResponse{
		Posts: lo.Map(resp.Posts, func(p entity.Post, _ int) PostResponse { return toPostResponse(p, false) }),
		total: resp.Total,
		size:  resp.Size,
		page:  resp.Page,
	}, nil
}

// PostDetail returns one post by slug.
// @Summary Get post
// @Description Returns a single post by slug and counts the view. Drafts are only visible to their author.
// @Tags Blog, Posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} router.successResponse{data=PostDetailResponse} "Post detail"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts/{slug} [get]
func (h *HTTPEndpoint) PostDetail(r *router.Request) (any, error) {
	resp, err := h.uc.PostDetail(r.Context(), usecase.PostDetailInput{Slug: r.GetParam("slug")})
	if err != nil {
		return nil, err
	}

	out := PostDetailResponse{
		Post: toPostResponse(resp.Post, true),
		Reactions: lo.Map(resp.Reactions, func(c entity.PostReactionCount, _ int) PostReactionCountResponse {
			return PostReactionCountResponse{
				ID:    c.Type.ID,
				Name:  c.Type.Name,
				Emoji: c.Type.Emoji,
				Count: c.Count,
			}
		}),
	}
	if resp.MyReactionTypeID != nil {
		out.MyReaction = strconv.FormatInt(*resp.MyReactionTypeID, 10)
	}

	return out, nil
}

// PostCreate publishes or drafts a new post.
// @Summary Create post
// @Description Creates a post owned by the caller, with optional categories and free-form tags.
// @Tags Blog, Posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body PostCreateRequest true "Post payload"
// @Success 200 {object} router.successResponse{data=PostCreateResponse} "Created post"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts [post]
func (h *HTTPEndpoint) PostCreate(r *router.Request) (any, error) {
	var req PostCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PostCreate(r.Context(), usecase.PostCreateInput{
		Title:       req.Title,
		Body:        req.Body,
		Status:      req.Status,
		CategoryIDs: req.categoryIDs(),
		Tags:        req.Tags,
	})
	if err != nil {
		return nil, err
	}

	return PostCreateResponse{ID: resp.ID, Slug: resp.Slug}, nil
}

// PostUpdate edits a post owned by the caller.
// @Summary Update post
// @Description Updates the provided fields of a post. The slug is stable across retitles.
// @Tags Blog, Posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param request body PostUpdateRequest true "Fields to update"
// @Success 200 {object} router.successResponse "Updated"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not the author"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts/{slug} [put]
func (h *HTTPEndpoint) PostUpdate(r *router.Request) (any, error) {
	var req PostUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	in := usecase.PostUpdateInput{
		Slug:   r.GetParam("slug"),
		Title:  req.Title,
		Body:   req.Body,
		Status: req.Status,
		Tags:   req.Tags,
	}
	if req.CategoryIDs != nil {
		in.CategoryIDs = parseIDs(req.CategoryIDs)
	}

	return nil, h.uc.PostUpdate(r.Context(), in)
}

// PostDelete removes a post owned by the caller.
// @Summary Delete post
// @Description Soft-deletes a post. It disappears from listings and detail lookups.
// @Tags Blog, Posts
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} router.successResponse "Deleted"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not the author"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts/{slug} [delete]
func (h *HTTPEndpoint) PostDelete(r *router.Request) (any, error) {
	return nil, h.uc.PostDelete(r.Context(), usecase.PostDeleteInput{Slug: r.GetParam("slug")})
}

// PostCover uploads a cover image for a post.
// @Summary Upload post cover
// @Description Replaces the post's cover image. Accepts jpeg, png or webp.
// @Tags Blog, Posts
// @Security BearerAuth
// @Accept mpfd
// @Produce json
// @Param slug path string true "Post slug"
// @Param cover formData file true "Cover image"
// @Success 200 {object} router.successResponse "Uploaded"
// @Failure 400 {object} router.errorResponse "Invalid file"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not the author"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts/{slug}/cover [put]
func (h *HTTPEndpoint) PostCover(r *router.Request) (any, error) {
	ctx := r.Context()

	file, err := r.StreamSingleFile("cover")
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

	return nil, h.uc.PostCoverUpload(ctx, usecase.PostCoverUploadInput{
		Slug:        r.GetParam("slug"),
		File:        io.MultiReader(bytes.NewReader(head[:n]), file),
		ContentType: http.DetectContentType(head[:n]),
	})
}

// PostReact records an emoji reaction on a post.
// @Summary React to post
// @Description Records the caller's emoji reaction, one per user per post; an empty type id withdraws it.
// @Tags Blog, Posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param request body PostReactRequest true "Reaction type id"
// @Success 200 {object} router.successResponse "Recorded"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Post or reaction type not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts/{slug}/reaction [put]
func (h *HTTPEndpoint) PostReact(r *router.Request) (any, error) {
	var req PostReactRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	var typeID int64
	if req.TypeID != "" {
		id, err := strconv.ParseInt(req.TypeID, 10, 64)
		if err != nil || id < 0 {
			return nil, goerror.NewInvalidFormat("type_id must be a non-negative integer")
		}
		typeID = id
	}

	return nil, h.uc.PostReact(r.Context(), usecase.PostReactInput{
		Slug:   r.GetParam("slug"),
		TypeID: typeID,
	})
}

// CommentList returns the threaded comments of a post.
// @Summary List comments
// @Description Returns the full comment thread of a post, oldest first, replies nested.
// @Tags Blog, Comments
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} router.successResponse{data=CommentsResponse} "Comment thread"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts/{slug}/comments [get]
func (h *HTTPEndpoint) CommentList(r *router.Request) (any, error) {
	resp, err := h.uc.CommentList(r.Context(), usecase.CommentListInput{Slug: r.GetParam("slug")})
	if err != nil {
		return nil, err
	}

	return CommentsResponse{
		Comments: lo.Map(resp.Comments, func(tc usecase.ThreadedComment, _ int) CommentResponse {
			return toCommentResponse(tc)
		}),
	}, nil
}

// CommentCreate posts a comment or a reply.
// @Summary Create comment
// @Description Attaches a comment to a published post; pass parent_id to reply to another comment.
// @Tags Blog, Comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param slug path string true "Post slug"
// @Param request body CommentCreateRequest true "Comment payload"
// @Success 200 {object} router.successResponse{data=CommentCreateResponse} "Created comment"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Post or parent comment not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts/{slug}/comments [post]
func (h *HTTPEndpoint) CommentCreate(r *router.Request) (any, error) {
	var req CommentCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CommentCreate(r.Context(), usecase.CommentCreateInput{
		Slug:     r.GetParam("slug"),
		ParentID: req.ParentID,
		Body:     req.Body,
	})
	if err != nil {
		return nil, err
	}

	return CommentCreateResponse{ID: resp.ID}, nil
}

// CommentUpdate edits a comment owned by the caller.
// @Summary Update comment
// @Description Replaces the comment body; the previous body is kept in the edit history.
// @Tags Blog, Comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body CommentUpdateRequest true "New body"
// @Success 200 {object} router.successResponse "Updated"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not the author"
// @Failure 404 {object} router.errorResponse "Comment not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/comments/{id} [put]
func (h *HTTPEndpoint) CommentUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CommentUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CommentUpdate(r.Context(), usecase.CommentUpdateInput{
		CommentID: id,
		Body:      req.Body,
	})
}

// CommentDelete removes a comment owned by the caller.
// @Summary Delete comment
// @Description Soft-deletes a comment; replies stay anchored under a blanked body.
// @Tags Blog, Comments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} router.successResponse "Deleted"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Not the author"
// @Failure 404 {object} router.errorResponse "Comment not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/comments/{id} [delete]
func (h *HTTPEndpoint) CommentDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.CommentDelete(r.Context(), usecase.CommentDeleteInput{CommentID: id})
}

// CommentReact likes, dislikes or withdraws a reaction.
// @Summary React to comment
// @Description Records like or dislike, one per user per comment; "none" withdraws it.
// @Tags Blog, Comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Comment ID"
// @Param request body CommentReactRequest true "Reaction (like|dislike|none)"
// @Success 200 {object} router.successResponse "Recorded"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Comment not found"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/comments/{id}/reaction [put]
func (h *HTTPEndpoint) CommentReact(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CommentReactRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CommentReact(r.Context(), usecase.CommentReactInput{
		CommentID: id,
		Reaction:  req.Reaction,
	})
}

// CommentHistory lists the edit history of a comment.
// @Summary Comment edit history
// @Description Returns the superseded bodies of an edited comment, oldest first.
// @Tags Blog, Comments
// @Produce json
// @Param id path int true "Comment ID"
// @Success 200 {object} router.successResponse{data=CommentHistoryResponse} "Edit history"
// @Failure 404 {object} router.errorResponse "Comment not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/comments/{id}/history [get]
func (h *HTTPEndpoint) CommentHistory(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.CommentHistory(r.Context(), usecase.CommentHistoryInput{CommentID: id})
	if err != nil {
		return nil, err
	}

	edits := make([]CommentEditResponse, 0, len(resp.Edits))
	for _, e := range resp.Edits {
		edits = append(edits, CommentEditResponse{ID: e.ID, Body: e.Body, CreatedAt: e.CreatedAt})
	}

	return CommentHistoryResponse{Edits: edits}, nil
}

// BookmarkToggle bookmarks a post or removes the bookmark.
// @Summary Toggle bookmark
// @Description Adds the post to the caller's bookmarks, or removes it when already bookmarked.
// @Tags Blog, Engagement
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} router.successResponse{data=BookmarkToggleResponse} "Resulting state"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts/{slug}/bookmark [put]
func (h *HTTPEndpoint) BookmarkToggle(r *router.Request) (any, error) {
	resp, err := h.uc.BookmarkToggle(r.Context(), usecase.BookmarkToggleInput{Slug: r.GetParam("slug")})
	if err != nil {
		return nil, err
	}

	return BookmarkToggleResponse{Bookmarked: resp.Bookmarked}, nil
}

// FavouriteToggle favourites a post or removes the favourite.
// @Summary Toggle favourite
// @Description Adds the post to the caller's favourites, or removes it when already favourited.
// @Tags Blog, Engagement
// @Security BearerAuth
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} router.successResponse{data=FavouriteToggleResponse} "Resulting state"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 404 {object} router.errorResponse "Post not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/posts/{slug}/favourite [put]
func (h *HTTPEndpoint) FavouriteToggle(r *router.Request) (any, error) {
	resp, err := h.uc.FavouriteToggle(r.Context(), usecase.FavouriteToggleInput{Slug: r.GetParam("slug")})
	if err != nil {
		return nil, err
	}

	return FavouriteToggleResponse{Favourited: resp.Favourited}, nil
}

// BookmarkList returns the caller's bookmarked posts.
// @Summary List bookmarks
// @Description Returns the caller's bookmarked posts, most recently bookmarked first.
// @Tags Blog, Engagement
// @Security BearerAuth
// @Produce json
// @Param size query int false "Pagination size"
// @Param page query int false "Pagination page"
// @Success 200 {object} router.successResponse{data=PostsResponse} "Bookmarked posts"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/bookmarks [get]
func (h *HTTPEndpoint) BookmarkList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.BookmarkList(r.Context(), usecase.BookmarkListInput{Size: size, Page: page})
	if err != nil {
		return nil, err
	}

	return PostsResponse{
		Posts: lo.Map(resp.Posts, func(p entity.Post, _ int) PostResponse { return toPostResponse(p, false) }),
		total: resp.Total,
		size:  resp.Size,
		page:  resp.Page,
	}, nil
}

// FavouriteList returns the caller's favourite posts.
// @Summary List favourites
// @Description Returns the caller's favourite posts, most recently favourited first.
// @Tags Blog, Engagement
// @Security BearerAuth
// @Produce json
// @Param size query int false "Pagination size"
// @Param page query int false "Pagination page"
// @Success 200 {object} router.successResponse{data=PostsResponse} "Favourite posts"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/favourites [get]
func (h *HTTPEndpoint) FavouriteList(r *router.Request) (any, error) {
	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.FavouriteList(r.Context(), usecase.FavouriteListInput{Size: size, Page: page})
	if err != nil {
		return nil, err
	}

	return PostsResponse{
		Posts: lo.Map(resp.Posts, func(p entity.Post, _ int) PostResponse { return toPostResponse(p, false) }),
		total: resp.Total,
		size:  resp.Size,
		page:  resp.Page,
	}, nil
}

// CategoryList returns all categories.
// @Summary List categories
// @Description Returns every category, sorted by name.
// @Tags Blog, Taxonomy
// @Produce json
// @Success 200 {object} router.successResponse{data=CategoriesResponse} "Categories"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/categories [get]
func (h *HTTPEndpoint) CategoryList(r *router.Request) (any, error) {
	resp, err := h.uc.CategoryList(r.Context())
	if err != nil {
		return nil, err
	}

	return CategoriesResponse{
		Categories: lo.Map(resp.Categories, func(c entity.Category, _ int) CategoryResponse {
			return CategoryResponse{ID: c.ID, Slug: c.Slug, Name: c.Name}
		}),
	}, nil
}

// CategoryCreate adds a category.
// @Summary Create category
// @Description Creates a category. Requires taxonomy management permission.
// @Tags Blog, Taxonomy
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body CategoryCreateRequest true "Category payload"
// @Success 200 {object} router.successResponse{data=CategoryCreateResponse} "Created category"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Category already exists"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/categories [post]
func (h *HTTPEndpoint) CategoryCreate(r *router.Request) (any, error) {
	var req CategoryCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CategoryCreate(r.Context(), usecase.CategoryCreateInput{Name: req.Name})
	if err != nil {
		return nil, err
	}

	return CategoryCreateResponse{ID: resp.ID, Slug: resp.Slug}, nil
}

// CategoryUpdate renames a category.
// @Summary Update category
// @Description Renames a category and refreshes its slug. Requires taxonomy management permission.
// @Tags Blog, Taxonomy
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body CategoryUpdateRequest true "Category payload"
// @Success 200 {object} router.successResponse "Updated"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Category not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/categories/{id} [put]
func (h *HTTPEndpoint) CategoryUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req CategoryUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.CategoryUpdate(r.Context(), usecase.CategoryUpdateInput{ID: id, Name: req.Name})
}

// CategoryDelete removes a category.
// @Summary Delete category
// @Description Deletes a category; posts keep their other categories. Requires taxonomy management permission.
// @Tags Blog, Taxonomy
// @Security BearerAuth
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} router.successResponse "Deleted"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Category not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/categories/{id} [delete]
func (h *HTTPEndpoint) CategoryDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.CategoryDelete(r.Context(), usecase.CategoryDeleteInput{ID: id})
}

// TagList returns all tags.
// @Summary List tags
// @Description Returns every tag, sorted by name.
// @Tags Blog, Taxonomy
// @Produce json
// @Success 200 {object} router.successResponse{data=TagsResponse} "Tags"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/tags [get]
func (h *HTTPEndpoint) TagList(r *router.Request) (any, error) {
	resp, err := h.uc.TagList(r.Context())
	if err != nil {
		return nil, err
	}

	return TagsResponse{
		Tags: lo.Map(resp.Tags, func(t entity.Tag, _ int) TagResponse {
			return TagResponse{ID: t.ID, Slug: t.Slug, Name: t.Name}
		}),
	}, nil
}

// TagCreate adds a tag.
// @Summary Create tag
// @Description Creates a tag. Requires taxonomy management permission.
// @Tags Blog, Taxonomy
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body TagCreateRequest true "Tag payload"
// @Success 200 {object} router.successResponse{data=TagCreateResponse} "Created tag"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Tag already exists"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/tags [post]
func (h *HTTPEndpoint) TagCreate(r *router.Request) (any, error) {
	var req TagCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.TagCreate(r.Context(), usecase.TagCreateInput{Name: req.Name})
	if err != nil {
		return nil, err
	}

	return TagCreateResponse{ID: resp.ID, Slug: resp.Slug}, nil
}

// TagUpdate renames a tag.
// @Summary Update tag
// @Description Renames a tag and refreshes its slug. Requires taxonomy management permission.
// @Tags Blog, Taxonomy
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param request body TagUpdateRequest true "Tag payload"
// @Success 200 {object} router.successResponse "Updated"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Tag not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/tags/{id} [put]
func (h *HTTPEndpoint) TagUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req TagUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.TagUpdate(r.Context(), usecase.TagUpdateInput{ID: id, Name: req.Name})
}

// ReactionTypeList returns the reaction types readers can pick from.
// @Summary List reaction types
// @Description Returns every reaction type, sorted by name.
// @Tags Blog, Taxonomy
// @Produce json
// @Success 200 {object} router.successResponse{data=ReactionTypesResponse} "Reaction types"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/reaction-types [get]
func (h *HTTPEndpoint) ReactionTypeList(r *router.Request) (any, error) {
	resp, err := h.uc.ReactionTypeList(r.Context())
	if err != nil {
		return nil, err
	}

	return ReactionTypesResponse{
		Types: lo.Map(resp.Types, func(rt entity.ReactionType, _ int) ReactionTypeResponse {
			return ReactionTypeResponse{ID: rt.ID, Name: rt.Name, Emoji: rt.Emoji}
		}),
	}, nil
}

// ReactionTypeCreate adds a reaction type.
// @Summary Create reaction type
// @Description Creates a reaction type. Requires taxonomy management permission.
// @Tags Blog, Taxonomy
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ReactionTypeCreateRequest true "Reaction type payload"
// @Success 200 {object} router.successResponse{data=ReactionTypeCreateResponse} "Created reaction type"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 409 {object} router.errorResponse "Reaction type already exists"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/reaction-types [post]
func (h *HTTPEndpoint) ReactionTypeCreate(r *router.Request) (any, error) {
	var req ReactionTypeCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ReactionTypeCreate(r.Context(), usecase.ReactionTypeCreateInput{
		Name:  req.Name,
		Emoji: req.Emoji,
	})
	if err != nil {
		return nil, err
	}

	return ReactionTypeCreateResponse{ID: resp.ID}, nil
}

// ReactionTypeUpdate renames a reaction type or swaps its emoji.
// @Summary Update reaction type
// @Description Updates a reaction type. Requires taxonomy management permission.
// @Tags Blog, Taxonomy
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Reaction type ID"
// @Param request body ReactionTypeUpdateRequest true "Reaction type payload"
// @Success 200 {object} router.successResponse "Updated"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Reaction type not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/reaction-types/{id} [put]
func (h *HTTPEndpoint) ReactionTypeUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req ReactionTypeUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.ReactionTypeUpdate(r.Context(), usecase.ReactionTypeUpdateInput{
		ID:    id,
		Name:  req.Name,
		Emoji: req.Emoji,
	})
}

// ReactionTypeDelete removes a reaction type.
// @Summary Delete reaction type
// @Description Deletes a reaction type and the reactions recorded with it. Requires taxonomy management permission.
// @Tags Blog, Taxonomy
// @Security BearerAuth
// @Produce json
// @Param id path int true "Reaction type ID"
// @Success 200 {object} router.successResponse "Deleted"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Reaction type not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/reaction-types/{id} [delete]
func (h *HTTPEndpoint) ReactionTypeDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.ReactionTypeDelete(r.Context(), usecase.ReactionTypeDeleteInput{ID: id})
}

// TagDelete removes a tag.
// @Summary Delete tag
// @Description Deletes a tag; posts keep their other tags. Requires taxonomy management permission.
// @Tags Blog, Taxonomy
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} router.successResponse "Deleted"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "Tag not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/blog/tags/{id} [delete]
func (h *HTTPEndpoint) TagDelete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	return nil, h.uc.TagDelete(r.Context(), usecase.TagDeleteInput{ID: id})
}
