package db

import (
	"context"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/jackc/pgx/v5"
)

func (s *DB) CreateComment(ctx context.Context, c entity.NewComment) (err error) {
	ctx, span := s.startSpan(ctx, "CreateComment")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO blog_comments (id, post_id, parent_id, author_id, body)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = s.conn.Exec(ctx, query, c.ID, c.PostID, c.ParentID, c.AuthorID, c.Body)

	return s.mapError(err)
}

// GetUserFullName resolves a commenter's display name for the
// notification payload.
func (s *DB) GetUserFullName(ctx context.Context, userID int64) (name string, err error) {
	ctx, span := s.startSpan(ctx, "GetUserFullName")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT full_name FROM identity_users WHERE id = $1 AND deleted_at IS NULL`

	if err = s.conn.QueryRow(ctx, query, userID).Scan(&name); err != nil {
		return "", s.mapError(err)
	}

	return name, nil
}

func (s *DB) GetCommentByID(ctx context.Context, id int64) (out *entity.Comment, err error) {
	ctx, span := s.startSpan(ctx, "GetCommentByID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT c.id, c.post_id, c.parent_id, c.author_id, u.full_name,
			c.body, c.edited, c.deleted_at IS NOT NULL, c.created_at, c.updated_at
		FROM blog_comments c
		JOIN identity_users u ON u.id = c.author_id
		WHERE c.id = $1`

	var cm entity.Comment
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&cm.ID, &cm.PostID, &cm.ParentID, &cm.AuthorID, &cm.AuthorName,
		&cm.Body, &cm.Edited, &cm.Deleted, &cm.CreatedAt, &cm.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &cm, nil
}

// GetCommentsByPost returns the flat comment set for a post, oldest first,
// with reaction tallies. Soft-deleted rows stay in so replies keep their
// place in the thread.
func (s *DB) GetCommentsByPost(ctx context.Context, postID int64) (comments []entity.Comment, err error) {
	ctx, span := s.startSpan(ctx, "GetCommentsByPost")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT c.id, c.post_id, c.parent_id, c.author_id, u.full_name,
			c.body, c.edited, c.deleted_at IS NOT NULL,
			count(r.*) FILTER (WHERE r.kind = 1),
			count(r.*) FILTER (WHERE r.kind = 2),
			c.created_at, c.updated_at
		FROM blog_comments c
		JOIN identity_users u ON u.id = c.author_id
		LEFT JOIN blog_comment_reactions r ON r.comment_id = c.id
		WHERE c.post_id = $1
		GROUP BY c.id, u.full_name
		ORDER BY c.created_at ASC, c.id ASC`

	rows, err := s.conn.Query(ctx, query, postID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	comments = make([]entity.Comment, 0)
	for rows.Next() {
		var cm entity.Comment
		if err = rows.Scan(
			&cm.ID, &cm.PostID, &cm.ParentID, &cm.AuthorID, &cm.AuthorName,
			&cm.Body, &cm.Edited, &cm.Deleted, &cm.Likes, &cm.Dislikes,
			&cm.CreatedAt, &cm.UpdatedAt,
		); err != nil {
			return nil, s.mapError(err)
		}
		comments = append(comments, cm)
	}

	return comments, s.mapError(rows.Err())
}

// UpdateCommentBody snapshots the current body into the edit history and
// then replaces it, both inside one transaction.
func (s *DB) UpdateCommentBody(ctx context.Context, editID, commentID int64, newBody string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateCommentBody")
	defer func() { s.endSpan(span, err) }()

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		const snapshot = `
			INSERT INTO blog_comment_edits (id, comment_id, body)
			SELECT $1, id, body FROM blog_comments
			WHERE id = $2 AND deleted_at IS NULL`
		tag, err := tx.Exec(ctx, snapshot, editID, commentID)
		if err != nil {
			return s.mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		const update = `
			UPDATE blog_comments SET body = $2, edited = true, updated_at = now()
			WHERE id = $1`
		if _, err := tx.Exec(ctx, update, commentID, newBody); err != nil {
			return s.mapError(err)
		}

		return nil
	})

	return err
}

func (s *DB) GetCommentEdits(ctx context.Context, commentID int64) (edits []entity.CommentEdit, err error) {
	ctx, span := s.startSpan(ctx, "GetCommentEdits")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, comment_id, body, created_at
		FROM blog_comment_edits
		WHERE comment_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := s.conn.Query(ctx, query, commentID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	edits = make([]entity.CommentEdit, 0)
	for rows.Next() {
		var e entity.CommentEdit
		if err = rows.Scan(&e.ID, &e.CommentID, &e.Body, &e.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		edits = append(edits, e)
	}

	return edits, s.mapError(rows.Err())
}

func (s *DB) MarkCommentDeleted(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkCommentDeleted")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE blog_comments SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// SetCommentReaction records like/dislike, one per user per comment; a
// second reaction by the same user replaces the first.
func (s *DB) SetCommentReaction(ctx context.Context, commentID, userID int64, kind entity.ReactionKind) (err error) {
	ctx, span := s.startSpan(ctx, "SetCommentReaction")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO blog_comment_reactions (comment_id, user_id, kind)
		VALUES ($1, $2, $3)
		ON CONFLICT (comment_id, user_id) DO UPDATE SET kind = excluded.kind`

	_, err = s.conn.Exec(ctx, query, commentID, userID, kind)

	return s.mapError(err)
}

func (s *DB) ClearCommentReaction(ctx context.Context, commentID, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "ClearCommentReaction")
	defer func() { s.endSpan(span, err) }()

	const query = `DELETE FROM blog_comment_reactions WHERE comment_id = $1 AND user_id = $2`

	_, err = s.conn.Exec(ctx, query, commentID, userID)

	return s.mapError(err)
}
