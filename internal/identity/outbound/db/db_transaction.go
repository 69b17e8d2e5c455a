package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/inkpress/inkpress/internal/identity/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

// CreateUserWithCredential inserts the user row and its credential in one
// transaction. Used by both verified registrations and admin creation.
func (s *DB) CreateUserWithCredential(ctx context.Context, user entity.NewUser, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUserWithCredential")
	defer func() { s.endSpan(span, err) }()

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		const userQuery = `
			INSERT INTO identity_users (id, email, full_name, avatar_url, status, created_by, updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`

		if _, err := tx.Exec(ctx, userQuery,
			user.ID, user.Email, user.FullName, user.AvatarURL,
			user.Status, user.CreatedBy, user.UpdatedBy,
		); err != nil {
			return s.mapError(err)
		}

		const credQuery = `
			INSERT INTO identity_user_credentials (user_id, password)
			VALUES ($1, $2)`

		if _, err := tx.Exec(ctx, credQuery, user.ID, hash); err != nil {
			return s.mapError(err)
		}

		return nil
	})

	return err
}

// ResetUserPassword swaps the credential and kills every open session so
// a stolen refresh token dies with the old password.
func (s *DB) ResetUserPassword(ctx context.Context, userID int64, newHash string) (err error) {
	ctx, span := s.startSpan(ctx, "ResetUserPassword")
	defer func() { s.endSpan(span, err) }()

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		const credQuery = `
			UPDATE identity_user_credentials
			SET password = $2, updated_at = now()
			WHERE user_id = $1`

		if _, err := tx.Exec(ctx, credQuery, userID, newHash); err != nil {
			return s.mapError(err)
		}

		const revokeQuery = `
			UPDATE identity_refresh_tokens
			SET revoked = TRUE
			WHERE user_id = $1 AND revoked = FALSE`

		if _, err := tx.Exec(ctx, revokeQuery, userID); err != nil {
			return s.mapError(err)
		}

		return nil
	})

	return err
}

// ActivateUserWithCredential sets the invitee's chosen password and
// flips the account to active. Guarded on the unverified status so a
// replayed accept cannot clobber a live credential.
func (s *DB) ActivateUserWithCredential(ctx context.Context, userID int64, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "ActivateUserWithCredential")
	defer func() { s.endSpan(span, err) }()

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		const activateQuery = `
			UPDATE identity_users
			SET status = $2, updated_by = $1, updated_at = now()
			WHERE id = $1 AND status = $3 AND deleted_at IS NULL`

		tag, err := tx.Exec(ctx, activateQuery, userID,
			int16(entity.UserStatusActive), int16(entity.UserStatusUnverified))
		if err != nil {
			return s.mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		const credQuery = `
			UPDATE identity_user_credentials
			SET password = $2, updated_at = now()
			WHERE user_id = $1`

		if _, err := tx.Exec(ctx, credQuery, userID, hash); err != nil {
			return s.mapError(err)
		}

		return nil
	})

	return err
}

// ChangeUserEmail updates the address and revokes open sessions.
func (s *DB) ChangeUserEmail(ctx context.Context, userID int64, newEmail string) (err error) {
	ctx, span := s.startSpan(ctx, "ChangeUserEmail")
	defer func() { s.endSpan(span, err) }()

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		const emailQuery = `
			UPDATE identity_users
			SET email = $2, updated_by = $1, updated_at = now()
			WHERE id = $1 AND deleted_at IS NULL`

		tag, err := tx.Exec(ctx, emailQuery, userID, newEmail)
		if err != nil {
			return s.mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		const revokeQuery = `
			UPDATE identity_refresh_tokens
			SET revoked = TRUE
			WHERE user_id = $1 AND revoked = FALSE`

		if _, err := tx.Exec(ctx, revokeQuery, userID); err != nil {
			return s.mapError(err)
		}

		return nil
	})

	return err
}

func (s *DB) RotateRefreshToken(ctx context.Context, ro entity.RotateRefreshToken) (err error) {
	ctx, span := s.startSpan(ctx, "RotateRefreshToken")
	defer func() { s.endSpan(span, err) }()

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		const replaceQuery = `
			UPDATE identity_refresh_tokens
			SET revoked = TRUE, replaced_by_token_id = $1
			WHERE id = $2 AND revoked = FALSE`

		tag, err := tx.Exec(ctx, replaceQuery, ro.NewID, ro.OldID)
		if err != nil {
			return s.mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		const createQuery = `
			INSERT INTO identity_refresh_tokens (id, user_id, token, expires_at)
			VALUES ($1, $2, $3, $4)`

		if _, err := tx.Exec(ctx, createQuery, ro.NewID, ro.UserID, ro.NewToken, ro.NewExpiresAt); err != nil {
			return s.mapError(err)
		}

		return nil
	})

	return err
}

// UpsertUsers reconciles an imported batch against existing rows by
// email inside one transaction. Deleted rows still match, so an import
// never inserts a duplicate address.
func (s *DB) UpsertUsers(ctx context.Context, users []entity.UpsertUser, hashes map[string]string) (created, updated int, err error) {
	ctx, span := s.startSpan(ctx, "UpsertUsers")
	defer func() { s.endSpan(span, err) }()

	if len(users) == 0 {
		return 0, 0, nil
	}

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		emails := make([]string, 0, len(users))
		for _, user := range users {
			emails = append(emails, strings.ToLower(user.Email))
		}

		const existingQuery = `
			SELECT id, email
			FROM identity_users
			WHERE lower(email) = ANY($1)`

		rows, err := tx.Query(ctx, existingQuery, emails)
		if err != nil {
			return s.mapError(err)
		}

		existingByEmail := make(map[string]int64, len(users))
		for rows.Next() {
			var (
				id    int64
				email string
			)
			if err := rows.Scan(&id, &email); err != nil {
				rows.Close()
				return s.mapError(err)
			}
			existingByEmail[strings.ToLower(email)] = id
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return s.mapError(err)
		}

		for _, user := range users {
			email := strings.ToLower(user.Email)

			if existingID, ok := existingByEmail[email]; ok {
				updated++

				const patchQuery = `
					UPDATE identity_users
					SET full_name = COALESCE(NULLIF($2, ''), full_name),
						avatar_url = COALESCE(NULLIF($3, ''), avatar_url),
						status = CASE WHEN $4 = 0 THEN status ELSE $4 END,
						updated_by = $5,
						updated_at = now()
					WHERE id = $1`

				if _, err := tx.Exec(ctx, patchQuery,
					existingID, user.FullName, user.AvatarURL,
					int16(user.Status), user.UpdatedBy,
				); err != nil {
					return s.mapError(err)
				}

				if hash, ok := hashes[email]; ok && hash != "" {
					const credQuery = `
						UPDATE identity_user_credentials
						SET password = $2, updated_at = now()
						WHERE user_id = $1`

					if _, err := tx.Exec(ctx, credQuery, existingID, hash); err != nil {
						return s.mapError(err)
					}
				}

				continue
			}

			created++

			const insertQuery = `
				INSERT INTO identity_users (id, email, full_name, avatar_url, status, created_by, updated_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`

			if _, err := tx.Exec(ctx, insertQuery,
				user.ID, user.Email, user.FullName, user.AvatarURL,
				user.Status, user.CreatedBy, user.UpdatedBy,
			); err != nil {
				return s.mapError(err)
			}

			if hash, ok := hashes[email]; ok && hash != "" {
				const credQuery = `
					INSERT INTO identity_user_credentials (user_id, password)
					VALUES ($1, $2)`

				if _, err := tx.Exec(ctx, credQuery, user.ID, hash); err != nil {
					return s.mapError(err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return created, updated, nil
}

// PatchUser applies the non-zero fields of user and optionally a new
// credential hash in one transaction.
func (s *DB) PatchUser(ctx context.Context, user entity.PatchUser, hash string) (err error) {
	ctx, span := s.startSpan(ctx, "PatchUser")
	defer func() { s.endSpan(span, err) }()

	if hash == "" && user.Email == "" && user.FullName == "" && user.Status.IsUnknown() {
		// nothing to patch
		return nil
	}

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		if hash != "" {
			const credQuery = `
				UPDATE identity_user_credentials
				SET password = $2, updated_at = now()
				WHERE user_id = $1`

			if _, err := tx.Exec(ctx, credQuery, user.ID, hash); err != nil {
				return s.mapError(err)
			}
		}

		const patchQuery = `
			UPDATE identity_users
			SET email = COALESCE(NULLIF($2, ''), email),
				full_name = COALESCE(NULLIF($3, ''), full_name),
				avatar_url = COALESCE(NULLIF($4, ''), avatar_url),
				status = CASE WHEN $5 = 0 THEN status ELSE $5 END,
				updated_by = $6,
				updated_at = now()
			WHERE id = $1 AND deleted_at IS NULL`

		tag, err := tx.Exec(ctx, patchQuery,
			user.ID, user.Email, user.FullName, user.AvatarURL,
			int16(user.Status), user.UpdatedBy,
		)
		if err != nil {
			return s.mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		return nil
	})

	return err
}
