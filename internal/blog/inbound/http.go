package inbound

import (
	"context"

	"github.com/inkpress/inkpress/internal/blog/usecase"
	"github.com/inkpress/inkpress/internal/pkg/router"
)

type uc interface {
	PostList(ctx context.Context, in usecase.PostListInput) (*usecase.PostListOutput, error)
	PostDetail(ctx context.Context, in usecase.PostDetailInput) (*usecase.PostDetailOutput, error)
	PostCreate(ctx context.Context, in usecase.PostCreateInput) (*usecase.PostCreateOutput, error)
	PostUpdate(ctx context.Context, in usecase.PostUpdateInput) error
	PostDelete(ctx context.Context, in usecase.PostDeleteInput) error
	PostCoverUpload(ctx context.Context, in usecase.PostCoverUploadInput) error
	PostReact(ctx context.Context, in usecase.PostReactInput) error

	CommentList(ctx context.Context, in usecase.CommentListInput) (*usecase.CommentListOutput, error)
	CommentCreate(ctx context.Context, in usecase.CommentCreateInput) (*usecase.CommentCreateOutput, error)
	CommentUpdate(ctx context.Context, in usecase.CommentUpdateInput) error
	CommentDelete(ctx context.Context, in usecase.CommentDeleteInput) error
	CommentReact(ctx context.Context, in usecase.CommentReactInput) error
	CommentHistory(ctx context.Context, in usecase.CommentHistoryInput) (*usecase.CommentHistoryOutput, error)

	BookmarkToggle(ctx context.Context, in usecase.BookmarkToggleInput) (*usecase.BookmarkToggleOutput, error)
	BookmarkList(ctx context.Context, in usecase.BookmarkListInput) (*usecase.BookmarkListOutput, error)
	FavouriteToggle(ctx context.Context, in usecase.FavouriteToggleInput) (*usecase.FavouriteToggleOutput, error)
	FavouriteList(ctx context.Context, in usecase.FavouriteListInput) (*usecase.FavouriteListOutput, error)

	CategoryList(ctx context.Context) (*usecase.CategoryListOutput, error)
	CategoryCreate(ctx context.Context, in usecase.CategoryCreateInput) (*usecase.CategoryCreateOutput, error)
	CategoryUpdate(ctx context.Context, in usecase.CategoryUpdateInput) error
	CategoryDelete(ctx context.Context, in usecase.CategoryDeleteInput) error
	TagList(ctx context.Context) (*usecase.TagListOutput, error)
	TagCreate(ctx context.Context, in usecase.TagCreateInput) (*usecase.TagCreateOutput, error)
	TagUpdate(ctx context.Context, in usecase.TagUpdateInput) error
	TagDelete(ctx context.Context, in usecase.TagDeleteInput) error

	ReactionTypeList(ctx context.Context) (*usecase.ReactionTypeListOutput, error)
	ReactionTypeCreate(ctx context.Context, in usecase.ReactionTypeCreateInput) (*usecase.ReactionTypeCreateOutput, error)
	ReactionTypeUpdate(ctx context.Context, in usecase.ReactionTypeUpdateInput) error
	ReactionTypeDelete(ctx context.Context, in usecase.ReactionTypeDeleteInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Posts
	r.GET("/api/v1/blog/posts", end.PostList)
	r.POST("/api/v1/blog/posts", end.PostCreate) // need authenticated
	r.GET("/api/v1/blog/posts/:slug", end.PostDetail)
	r.PUT("/api/v1/blog/posts/:slug", end.PostUpdate)         // need authenticated
	r.DELETE("/api/v1/blog/posts/:slug", end.PostDelete)      // need authenticated
	r.PUT("/api/v1/blog/posts/:slug/cover", end.PostCover)    // need authenticated
	r.PUT("/api/v1/blog/posts/:slug/reaction", end.PostReact) // need authenticated

	// Comments
	r.GET("/api/v1/blog/posts/:slug/comments", end.CommentList)
	r.POST("/api/v1/blog/posts/:slug/comments", end.CommentCreate) // need authenticated
	r.PUT("/api/v1/blog/comments/:id", end.CommentUpdate)          // need authenticated
	r.DELETE("/api/v1/blog/comments/:id", end.CommentDelete)       // need authenticated
	r.PUT("/api/v1/blog/comments/:id/reaction", end.CommentReact)  // need authenticated
	r.GET("/api/v1/blog/comments/:id/history", end.CommentHistory)

	// Bookmarks & Favourites (need authenticated)
	r.PUT("/api/v1/blog/posts/:slug/bookmark", end.BookmarkToggle)
	r.PUT("/api/v1/blog/posts/:slug/favourite", end.FavouriteToggle)
	r.GET("/api/v1/blog/bookmarks", end.BookmarkList)
	r.GET("/api/v1/blog/favourites", end.FavouriteList)

	// Taxonomy (writes need authenticated & authorization)
	r.GET("/api/v1/blog/categories", end.CategoryList)
	r.POST("/api/v1/blog/categories", end.CategoryCreate)
	r.PUT("/api/v1/blog/categories/:id", end.CategoryUpdate)
	r.DELETE("/api/v1/blog/categories/:id", end.CategoryDelete)
	r.GET("/api/v1/blog/tags", end.TagList)
	r.POST("/api/v1/blog/tags", end.TagCreate)
	r.PUT("/api/v1/blog/tags/:id", end.TagUpdate)
	r.DELETE("/api/v1/blog/tags/:id", end.TagDelete)
	r.GET("/api/v1/blog/reaction-types", end.ReactionTypeList)
	r.POST("/api/v1/blog/reaction-types", end.ReactionTypeCreate)
	r.PUT("/api/v1/blog/reaction-types/:id", end.ReactionTypeUpdate)
	r.DELETE("/api/v1/blog/reaction-types/:id", end.ReactionTypeDelete)
}
