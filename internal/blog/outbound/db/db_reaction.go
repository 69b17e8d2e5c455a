package db

import (
	"context"
	"errors"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

func (s *DB) GetReactionTypeList(ctx context.Context) (types []entity.ReactionType, err error) {
	ctx, span := s.startSpan(ctx, "GetReactionTypeList")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT id, name, emoji FROM blog_reaction_types ORDER BY name ASC`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	types = make([]entity.ReactionType, 0)
	for rows.Next() {
		var rt entity.ReactionType
		if err = rows.Scan(&rt.ID, &rt.Name, &rt.Emoji); err != nil {
			return nil, s.mapError(err)
		}
		types = append(types, rt)
	}

	return types, s.mapError(rows.Err())
}

func (s *DB) CreateReactionType(ctx context.Context, rt entity.ReactionType) (err error) {
	ctx, span := s.startSpan(ctx, "CreateReactionType")
	defer func() { s.endSpan(span, err) }()

	const query = `INSERT INTO blog_reaction_types (id, name, emoji) VALUES ($1, $2, $3)`

	_, err = s.conn.Exec(ctx, query, rt.ID, rt.Name, rt.Emoji)

	return s.mapError(err)
}

func (s *DB) UpdateReactionType(ctx context.Context, rt entity.ReactionType) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateReactionType")
	defer func() { s.endSpan(span, err) }()

	const query = `UPDATE blog_reaction_types SET name = $2, emoji = $3 WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, rt.ID, rt.Name, rt.Emoji)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// DeleteReactionType removes the type and, via its cascade, every
// reaction recorded with it.
func (s *DB) DeleteReactionType(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteReactionType")
	defer func() { s.endSpan(span, err) }()

	const query = `DELETE FROM blog_reaction_types WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

// SetPostReaction records or replaces the caller's reaction, one row per
// reader per post.
func (s *DB) SetPostReaction(ctx context.Context, postID, userID, typeID int64) (err error) {
	ctx, span := s.startSpan(ctx, "SetPostReaction")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO blog_post_reactions (post_id, user_id, type_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, user_id) DO UPDATE SET type_id = EXCLUDED.type_id, updated_at = now()`

	_, err = s.conn.Exec(ctx, query, postID, userID, typeID)

	return s.mapError(err)
}

func (s *DB) ClearPostReaction(ctx context.Context, postID, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "ClearPostReaction")
	defer func() { s.endSpan(span, err) }()

	const query = `DELETE FROM blog_post_reactions WHERE post_id = $1 AND user_id = $2`

	_, err = s.conn.Exec(ctx, query, postID, userID)

	return s.mapError(err)
}

// GetPostReactionCounts tallies a post's reactions per type. Every type
// appears, zero counts included, so the client can render the full
// picker.
func (s *DB) GetPostReactionCounts(ctx context.Context, postID int64) (counts []entity.PostReactionCount, err error) {
	ctx, span := s.startSpan(ctx, "GetPostReactionCounts")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT t.id, t.name, t.emoji, count(r.user_id)
		FROM blog_reaction_types t
		LEFT JOIN blog_post_reactions r ON r.type_id = t.id AND r.post_id = $1
		GROUP BY t.id, t.name, t.emoji
		ORDER BY t.name ASC`

	rows, err := s.conn.Query(ctx, query, postID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	counts = make([]entity.PostReactionCount, 0)
	for rows.Next() {
		var c entity.PostReactionCount
		if err = rows.Scan(&c.Type.ID, &c.Type.Name, &c.Type.Emoji, &c.Count); err != nil {
			return nil, s.mapError(err)
		}
		counts = append(counts, c)
	}

	return counts, s.mapError(rows.Err())
}

// GetUserPostReaction returns the type id of the caller's reaction, or
// nil when they have not reacted.
func (s *DB) GetUserPostReaction(ctx context.Context, postID, userID int64) (typeID *int64, err error) {
	ctx, span := s.startSpan(ctx, "GetUserPostReaction")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT type_id FROM blog_post_reactions WHERE post_id = $1 AND user_id = $2`

	var id int64
	err = s.conn.QueryRow(ctx, query, postID, userID).Scan(&id)
	if errors.Is(s.mapError(err), goerror.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.mapError(err)
	}

	return &id, nil
}
