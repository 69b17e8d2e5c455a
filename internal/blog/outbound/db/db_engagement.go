package db

import (
	"context"
	"fmt"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/jackc/pgx/v5"
)

// ToggleBookmark adds the bookmark when absent and removes it when
// present. Returns whether the post ends up bookmarked.
func (s *DB) ToggleBookmark(ctx context.Context, userID, postID int64) (bookmarked bool, err error) {
	ctx, span := s.startSpan(ctx, "ToggleBookmark")
	defer func() { s.endSpan(span, err) }()

	return s.toggleMark(ctx, "blog_bookmarks", userID, postID)
}

// ToggleFavourite works like ToggleBookmark against the favourites table.
func (s *DB) ToggleFavourite(ctx context.Context, userID, postID int64) (favourited bool, err error) {
	ctx, span := s.startSpan(ctx, "ToggleFavourite")
	defer func() { s.endSpan(span, err) }()

	return s.toggleMark(ctx, "blog_favourites", userID, postID)
}

func (s *DB) toggleMark(ctx context.Context, table string, userID, postID int64) (on bool, err error) {
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		insert := fmt.Sprintf(`
			INSERT INTO %s (user_id, post_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, table)
		tag, err := tx.Exec(ctx, insert, userID, postID)
		if err != nil {
			return s.mapError(err)
		}
		if tag.RowsAffected() > 0 {
			on = true
			return nil
		}

		remove := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND post_id = $2`, table)
		if _, err := tx.Exec(ctx, remove, userID, postID); err != nil {
			return s.mapError(err)
		}

		return nil
	})

	return on, err
}

func (s *DB) GetBookmarkedPosts(ctx context.Context, userID int64, size, offset int32) ([]entity.Post, int64, error) {
	ctx, span := s.startSpan(ctx, "GetBookmarkedPosts")
	var err error
	defer func() { s.endSpan(span, err) }()

	posts, total, err := s.getMarkedPosts(ctx, "blog_bookmarks", userID, size, offset)

	return posts, total, err
}

func (s *DB) GetFavouritePosts(ctx context.Context, userID int64, size, offset int32) ([]entity.Post, int64, error) {
	ctx, span := s.startSpan(ctx, "GetFavouritePosts")
	var err error
	defer func() { s.endSpan(span, err) }()

	posts, total, err := s.getMarkedPosts(ctx, "blog_favourites", userID, size, offset)

	return posts, total, err
}

func (s *DB) getMarkedPosts(ctx context.Context, table string, userID int64, size, offset int32) (posts []entity.Post, total int64, err error) {
	countQuery := fmt.Sprintf(`
		SELECT count(*)
		FROM %s m
		JOIN blog_posts p ON p.id = m.post_id
		WHERE m.user_id = $1 AND p.deleted_at IS NULL`, table)
	if err = s.conn.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	query := fmt.Sprintf(`
		SELECT p.id, p.author_id, u.full_name, p.slug, p.title, p.body,
			p.cover_url, p.status, p.read_time, p.created_at, p.updated_at
		FROM %s m
		JOIN blog_posts p ON p.id = m.post_id
		JOIN identity_users u ON u.id = p.author_id
		WHERE m.user_id = $1 AND p.deleted_at IS NULL
		ORDER BY m.created_at DESC
		LIMIT $2 OFFSET $3`, table)

	rows, err := s.conn.Query(ctx, query, userID, size, offset)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	posts = make([]entity.Post, 0)
	for rows.Next() {
		var post entity.Post
		if err = rows.Scan(
			&post.ID, &post.AuthorID, &post.AuthorName, &post.Slug, &post.Title, &post.Body,
			&post.CoverURL, &post.Status, &post.ReadTime, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, 0, s.mapError(err)
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	refs := make([]*entity.Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	if err = s.fillTaxonomy(ctx, refs); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}
