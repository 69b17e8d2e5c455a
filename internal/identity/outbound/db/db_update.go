package db

import (
	"context"

	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

func (s *DB) UpdateUserProfile(ctx context.Context, id int64, fullName string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserProfile")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE identity_users
		SET full_name = $2, updated_by = $1, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, fullName)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpdateUserAvatar(ctx context.Context, id int64, avatarURL string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserAvatar")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE identity_users
		SET avatar_url = $2, updated_by = $1, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, avatarURL)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) UpdateUserCredential(ctx context.Context, userID int64, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserCredential")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE identity_user_credentials
		SET password = $2, updated_at = now()
		WHERE user_id = $1`

	_, err = s.conn.Exec(ctx, query, userID, hash)

	return s.mapError(err)
}

func (s *DB) SetUserMFA(ctx context.Context, userID int64, enabled bool) (err error) {
	ctx, span := s.startSpan(ctx, "SetUserMFA")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE identity_users
		SET mfa_enabled = $2, updated_by = $1, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, userID, enabled)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) RevokeRefreshToken(ctx context.Context, token string) (err error) {
	ctx, span := s.startSpan(ctx, "RevokeRefreshToken")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE identity_refresh_tokens
		SET revoked = TRUE
		WHERE token = $1 AND revoked = FALSE`

	_, err = s.conn.Exec(ctx, query, token)

	return s.mapError(err)
}

func (s *DB) RevokeAllRefreshToken(ctx context.Context, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "RevokeAllRefreshToken")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE identity_refresh_tokens
		SET revoked = TRUE
		WHERE user_id = $1 AND revoked = FALSE`

	_, err = s.conn.Exec(ctx, query, userID)

	return s.mapError(err)
}

func (s *DB) MarkUserDeleted(ctx context.Context, id, byID int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkUserDeleted")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE identity_users
		SET deleted_at = now(), updated_by = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, byID)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
