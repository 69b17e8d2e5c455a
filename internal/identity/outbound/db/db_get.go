package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkpress/inkpress/internal/identity/entity"
)

func (s *DB) GetUserLoginInfo(ctx context.Context, email string) (out *entity.UserLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserLoginInfo")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT u.id, u.email, u.full_name, u.status, u.mfa_enabled, c.password
		FROM identity_users u
		JOIN identity_user_credentials c ON c.user_id = u.id
		WHERE lower(u.email) = lower($1) AND u.deleted_at IS NULL`

	var info entity.UserLoginInfo
	err = s.conn.QueryRow(ctx, query, email).Scan(
		&info.ID, &info.Email, &info.FullName, &info.Status, &info.MFAEnabled, &info.Password,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &info, nil
}

func (s *DB) GetUserCredentialInfo(ctx context.Context, id int64) (out *entity.UserCredentialInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserCredentialInfo")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT u.id, u.email, u.status, c.password
		FROM identity_users u
		JOIN identity_user_credentials c ON c.user_id = u.id
		WHERE u.id = $1 AND u.deleted_at IS NULL`

	var info entity.UserCredentialInfo
	err = s.conn.QueryRow(ctx, query, id).Scan(&info.ID, &info.Email, &info.Status, &info.Password)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &info, nil
}

func (s *DB) GetUserByEmail(ctx context.Context, email string, includeDeleted bool) (out *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, email, full_name, avatar_url, status, mfa_enabled, updated_at, deleted_at
		FROM identity_users
		WHERE lower(email) = lower($1)`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	var user entity.User
	err = s.conn.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Email, &user.FullName, &user.AvatarURL,
		&user.Status, &user.MFAEnabled, &user.UpdatedAt, &user.DeletedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64, includeDeleted bool) (out *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, email, full_name, avatar_url, status, mfa_enabled, updated_at, deleted_at
		FROM identity_users
		WHERE id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}

	var user entity.User
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.FullName, &user.AvatarURL,
		&user.Status, &user.MFAEnabled, &user.UpdatedAt, &user.DeletedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &user, nil
}

func (s *DB) GetUserRefreshToken(ctx context.Context, token string) (out *entity.UserRefreshToken, err error) {
	ctx, span := s.startSpan(ctx, "GetUserRefreshToken")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT u.id, u.email, u.status,
			r.id, r.token, r.revoked, r.replaced_by_token_id, r.expires_at
		FROM identity_refresh_tokens r
		JOIN identity_users u ON u.id = r.user_id
		WHERE r.token = $1 AND u.deleted_at IS NULL`

	var urt entity.UserRefreshToken
	err = s.conn.QueryRow(ctx, query, token).Scan(
		&urt.UserID, &urt.UserEmail, &urt.UserStatus,
		&urt.RefreshID, &urt.RefreshToken, &urt.RefreshRevoked,
		&urt.RefreshReplacedByTokenID, &urt.RefreshExpiresAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &urt, nil
}

var userListOrderColumns = map[string]string{
	"email":      "email",
	"full_name":  "full_name",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

func (s *DB) GetUserList(ctx context.Context, filter entity.UserListFilterData) (users []entity.User, total int64, err error) {
	ctx, span := s.startSpan(ctx, "GetUserList")
	defer func() { s.endSpan(span, err) }()

	conds := []string{"deleted_at IS NULL"}
	args := []any{}

	if filter.IsFilterBySearch {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("(email ILIKE $%d OR full_name ILIKE $%d)", len(args), len(args)))
	}
	if filter.IsFilterByStatus {
		args = append(args, filter.Statuses)
		conds = append(conds, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if !filter.DateFrom.IsZero() {
		args = append(args, filter.DateFrom)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.DateTo.IsZero() {
		args = append(args, filter.DateTo)
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	where := strings.Join(conds, " AND ")

	countQuery := "SELECT count(*) FROM identity_users WHERE " + where
	if err = s.conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	orderBy, ok := userListOrderColumns[filter.OrderBy]
	if !ok {
		orderBy = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.OrderDirection, "asc") {
		direction = "ASC"
	}

	args = append(args, filter.Size, filter.Page)
	query := fmt.Sprintf(`
		SELECT id, email, full_name, avatar_url, status, mfa_enabled, updated_at, deleted_at
		FROM identity_users
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`, where, orderBy, direction, len(args)-1, len(args))

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	users = make([]entity.User, 0)
	for rows.Next() {
		var user entity.User
		if err = rows.Scan(
			&user.ID, &user.Email, &user.FullName, &user.AvatarURL,
			&user.Status, &user.MFAEnabled, &user.UpdatedAt, &user.DeletedAt,
		); err != nil {
			return nil, 0, s.mapError(err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return users, total, nil
}
