package db

import (
	"context"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
)

func (s *DB) GetCategoryList(ctx context.Context) (categories []entity.Category, err error) {
	ctx, span := s.startSpan(ctx, "GetCategoryList")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT id, slug, name FROM blog_categories ORDER BY name ASC`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	categories = make([]entity.Category, 0)
	for rows.Next() {
		var cat entity.Category
		if err = rows.Scan(&cat.ID, &cat.Slug, &cat.Name); err != nil {
			return nil, s.mapError(err)
		}
		categories = append(categories, cat)
	}

	return categories, s.mapError(rows.Err())
}

func (s *DB) CreateCategory(ctx context.Context, cat entity.Category) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCategory")
	defer func() { s.endSpan(span, err) }()

	const query = `INSERT INTO blog_categories (id, slug, name) VALUES ($1, $2, $3)`

	_, err = s.conn.Exec(ctx, query, cat.ID, cat.Slug, cat.Name)

	return s.mapError(err)
}

func (s *DB) UpdateCategory(ctx context.Context, cat entity.Category) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateCategory")
	defer func() { s.endSpan(span, err) }()

	const query = `UPDATE blog_categories SET slug = $2, name = $3 WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, cat.ID, cat.Slug, cat.Name)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) DeleteCategory(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteCategory")
	defer func() { s.endSpan(span, err) }()

	const query = `DELETE FROM blog_categories WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) GetTagList(ctx context.Context) (tags []entity.Tag, err error) {
	ctx, span := s.startSpan(ctx, "GetTagList")
	defer func() { s.endSpan(span, err) }()

	const query = `SELECT id, slug, name FROM blog_tags ORDER BY name ASC`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	tags = make([]entity.Tag, 0)
	for rows.Next() {
		var t entity.Tag
		if err = rows.Scan(&t.ID, &t.Slug, &t.Name); err != nil {
			return nil, s.mapError(err)
		}
		tags = append(tags, t)
	}

	return tags, s.mapError(rows.Err())
}

func (s *DB) CreateTag(ctx context.Context, t entity.Tag) (err error) {
	ctx, span := s.startSpan(ctx, "CreateTag")
	defer func() { s.endSpan(span, err) }()

	const query = `INSERT INTO blog_tags (id, slug, name) VALUES ($1, $2, $3)`

	_, err = s.conn.Exec(ctx, query, t.ID, t.Slug, t.Name)

	return s.mapError(err)
}

func (s *DB) UpdateTag(ctx context.Context, t entity.Tag) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateTag")
	defer func() { s.endSpan(span, err) }()

	const query = `UPDATE blog_tags SET slug = $2, name = $3 WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, t.ID, t.Slug, t.Name)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) DeleteTag(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteTag")
	defer func() { s.endSpan(span, err) }()

	const query = `DELETE FROM blog_tags WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
