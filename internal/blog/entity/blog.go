package entity

import "time"

type Category struct {
	ID   int64
	Slug string
	Name string
}

type Tag struct {
	ID   int64
	Slug string
	Name string
}

type Post struct {
	ID         int64
	AuthorID   int64
	AuthorName string
	Slug       string
	Title      string
	Body       string
	CoverURL   *string
	Status     PostStatus
	ReadTime   int32
	Categories []Category
	Tags       []Tag
	ViewCount  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPost carries everything needed to insert a post. Tags arrive with
// pre-generated ids; the id is only spent when the tag does not exist yet.
type NewPost struct {
	ID          int64
	AuthorID    int64
	Slug        string
	Title       string
	Body        string
	Status      PostStatus
	ReadTime    int32
	CategoryIDs []int64
	Tags        []Tag
}

// PatchPost carries only the fields the author actually sent. Nil means
// leave the column (or the association set) untouched.
type PatchPost struct {
	ID          int64
	Title       *string
	Body        *string
	Status      *PostStatus
	ReadTime    *int32
	CategoryIDs []int64
	Tags        []Tag
}

type PostListFilterData struct {
	Search           string
	IsFilterBySearch bool
	Statuses         []int16
	IsFilterByStatus bool
	AuthorID         int64
	Size             int32
	Page             int32 // precomputed row offset
}

// ReactionType is an admin-curated emoji readers can react to posts
// with.
type ReactionType struct {
	ID    int64
	Name  string
	Emoji string
}

// PostReactionCount is one reaction type's tally on a post.
type PostReactionCount struct {
	Type  ReactionType
	Count int64
}

type Comment struct {
	ID         int64
	PostID     int64
	ParentID   *int64
	AuthorID   int64
	AuthorName string
	Body       string
	Edited     bool
	Deleted    bool
	Likes      int64
	Dislikes   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type NewComment struct {
	ID       int64
	PostID   int64
	ParentID *int64
	AuthorID int64
	Body     string
}

// CommentEdit is one superseded body, appended whenever a comment is
// edited.
type CommentEdit struct {
	ID        int64
	CommentID int64
	Body      string
	CreatedAt time.Time
}
