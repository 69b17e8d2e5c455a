package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/inkpress/inkpress/internal/blog/entity"
	"github.com/inkpress/inkpress/internal/pkg/goerror"
	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
)

func (s *DB) CreatePost(ctx context.Context, p entity.NewPost) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePost")
	defer func() { s.endSpan(span, err) }()

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		const insert = `
			INSERT INTO blog_posts (id, author_id, slug, title, body, status, read_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := tx.Exec(ctx, insert, p.ID, p.AuthorID, p.Slug, p.Title, p.Body, p.Status, p.ReadTime); err != nil {
			return s.mapError(err)
		}

		if err := s.linkCategories(ctx, tx, p.ID, p.CategoryIDs); err != nil {
			return err
		}

		return s.linkTags(ctx, tx, p.ID, p.Tags)
	})

	return err
}

func (s *DB) UpdatePost(ctx context.Context, p entity.PatchPost) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePost")
	defer func() { s.endSpan(span, err) }()

	err = s.inTx(ctx, func(tx pgx.Tx) error {
		sets := []string{"updated_at = now()"}
		args := []any{p.ID}

		if p.Title != nil {
			args = append(args, *p.Title)
			sets = append(sets, fmt.Sprintf("title = $%d", len(args)))
		}
		if p.Body != nil {
			args = append(args, *p.Body)
			sets = append(sets, fmt.Sprintf("body = $%d", len(args)))
		}
		if p.Status != nil {
			args = append(args, *p.Status)
			sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
		}
		if p.ReadTime != nil {
			args = append(args, *p.ReadTime)
			sets = append(sets, fmt.Sprintf("read_time = $%d", len(args)))
		}

		query := fmt.Sprintf(
			`UPDATE blog_posts SET %s WHERE id = $1 AND deleted_at IS NULL`,
			strings.Join(sets, ", "),
		)
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return s.mapError(err)
		}
		if tag.RowsAffected() == 0 {
			return goerror.ErrNotFound
		}

		if p.CategoryIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM blog_post_categories WHERE post_id = $1`, p.ID); err != nil {
				return s.mapError(err)
			}
			if err := s.linkCategories(ctx, tx, p.ID, p.CategoryIDs); err != nil {
				return err
			}
		}

		if p.Tags != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM blog_post_tags WHERE post_id = $1`, p.ID); err != nil {
				return s.mapError(err)
			}
			if err := s.linkTags(ctx, tx, p.ID, p.Tags); err != nil {
				return err
			}
		}

		return nil
	})

	return err
}

func (s *DB) linkCategories(ctx context.Context, tx pgx.Tx, postID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	const link = `
		INSERT INTO blog_post_categories (post_id, category_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`
	if _, err := tx.Exec(ctx, link, postID, categoryIDs); err != nil {
		return s.mapError(err)
	}

	return nil
}

// linkTags upserts free-form tags by slug and attaches them. The carried
// id is only spent when the slug is new.
func (s *DB) linkTags(ctx context.Context, tx pgx.Tx, postID int64, tags []entity.Tag) error {
	if len(tags) == 0 {
		return nil
	}

	ids := lo.Map(tags, func(t entity.Tag, _ int) int64 { return t.ID })
	slugs := lo.Map(tags, func(t entity.Tag, _ int) string { return t.Slug })
	names := lo.Map(tags, func(t entity.Tag, _ int) string { return t.Name })

	const upsert = `
		INSERT INTO blog_tags (id, slug, name)
		SELECT unnest($1::bigint[]), unnest($2::text[]), unnest($3::text[])
		ON CONFLICT (slug) DO NOTHING`
	if _, err := tx.Exec(ctx, upsert, ids, slugs, names); err != nil {
		return s.mapError(err)
	}

	const link = `
		INSERT INTO blog_post_tags (post_id, tag_id)
		SELECT $1, id FROM blog_tags WHERE slug = ANY($2)
		ON CONFLICT DO NOTHING`
	if _, err := tx.Exec(ctx, link, postID, slugs); err != nil {
		return s.mapError(err)
	}

	return nil
}

func (s *DB) MarkPostDeleted(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "MarkPostDeleted")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE blog_posts SET deleted_at = now(), updated_at = now()
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

func (s *DB) UpdatePostCover(ctx context.Context, id int64, coverURL string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePostCover")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE blog_posts SET cover_url = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := s.conn.Exec(ctx, query, id, coverURL)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}

func (s *DB) GetPostBySlug(ctx context.Context, slug string) (out *entity.Post, err error) {
	ctx, span := s.startSpan(ctx, "GetPostBySlug")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT p.id, p.author_id, u.full_name, p.slug, p.title, p.body,
			p.cover_url, p.status, p.read_time, p.created_at, p.updated_at
		FROM blog_posts p
		JOIN identity_users u ON u.id = p.author_id
		WHERE p.slug = $1 AND p.deleted_at IS NULL`

	var post entity.Post
	err = s.conn.QueryRow(ctx, query, slug).Scan(
		&post.ID, &post.AuthorID, &post.AuthorName, &post.Slug, &post.Title, &post.Body,
		&post.CoverURL, &post.Status, &post.ReadTime, &post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	if err = s.fillTaxonomy(ctx, []*entity.Post{&post}); err != nil {
		return nil, err
	}

	return &post, nil
}

func (s *DB) GetPostList(ctx context.Context, filter entity.PostListFilterData) (posts []entity.Post, total int64, err error) {
	ctx, span := s.startSpan(ctx, "GetPostList")
	defer func() { s.endSpan(span, err) }()

	conds := []string{"p.deleted_at IS NULL"}
	args := []any{}

	if filter.IsFilterBySearch {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		args = append(args, filter.Search)
		conds = append(conds, fmt.Sprintf(
			"(p.title ILIKE $%d OR p.body ILIKE $%d OR similarity(p.title, $%d) > 0.3)", n, n, len(args)))
	}
	if filter.IsFilterByStatus {
		args = append(args, filter.Statuses)
		conds = append(conds, fmt.Sprintf("p.status = ANY($%d)", len(args)))
	}
	if filter.AuthorID > 0 {
		args = append(args, filter.AuthorID)
		conds = append(conds, fmt.Sprintf("p.author_id = $%d", len(args)))
	}

	where := strings.Join(conds, " AND ")

	countQuery := "SELECT count(*) FROM blog_posts p WHERE " + where
	if err = s.conn.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	args = append(args, filter.Size, filter.Page)
	query := fmt.Sprintf(`
		SELECT p.id, p.author_id, u.full_name, p.slug, p.title, p.body,
			p.cover_url, p.status, p.read_time, p.created_at, p.updated_at
		FROM blog_posts p
		JOIN identity_users u ON u.id = p.author_id
		WHERE %s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := s.conn.Query(ctx, query, args...)
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

// fillTaxonomy loads the category and tag sets for a page of posts in two
// queries instead of two per post.
func (s *DB) fillTaxonomy(ctx context.Context, posts []*entity.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := lo.Map(posts, func(p *entity.Post, _ int) int64 { return p.ID })
	byID := lo.KeyBy(posts, func(p *entity.Post) int64 { return p.ID })

	const catQuery = `
		SELECT pc.post_id, c.id, c.slug, c.name
		FROM blog_post_categories pc
		JOIN blog_categories c ON c.id = pc.category_id
		WHERE pc.post_id = ANY($1)
		ORDER BY c.name`
	rows, err := s.conn.Query(ctx, catQuery, ids)
	if err != nil {
		return s.mapError(err)
	}
	for rows.Next() {
		var postID int64
		var cat entity.Category
		if err := rows.Scan(&postID, &cat.ID, &cat.Slug, &cat.Name); err != nil {
			rows.Close()
			return s.mapError(err)
		}
		byID[postID].Categories = append(byID[postID].Categories, cat)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return s.mapError(err)
	}

	const tagQuery = `
		SELECT pt.post_id, t.id, t.slug, t.name
		FROM blog_post_tags pt
		JOIN blog_tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name`
	rows, err = s.conn.Query(ctx, tagQuery, ids)
	if err != nil {
		return s.mapError(err)
	}
	for rows.Next() {
		var postID int64
		var tag entity.Tag
		if err := rows.Scan(&postID, &tag.ID, &tag.Slug, &tag.Name); err != nil {
			rows.Close()
			return s.mapError(err)
		}
		byID[postID].Tags = append(byID[postID].Tags, tag)
	}
	rows.Close()

	return s.mapError(rows.Err())
}
