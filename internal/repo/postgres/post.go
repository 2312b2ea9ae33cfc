package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
)

type PostDB struct {
	db *sqlx.DB
}

func NewPost(db *sqlx.DB) repo.Post {
	return &PostDB{db: db}
}

func postSelect() sq.SelectBuilder {
	return psql.Select(
		"p.id", "p.title", "p.slug", "p.author_id", "u.username AS author_username",
		"p.category_id", "c.name AS category_name", "p.content", "p.excerpt", "p.featured_image",
		"p.status", "p.created_at", "p.updated_at", "p.publish_date", "p.meta_description",
		"(SELECT COUNT(*) FROM comment cm WHERE cm.post_id = p.id AND cm.is_approved) AS comment_count",
	).
		From("post p").
		Join(`"user" u ON u.id = p.author_id`).
		LeftJoin("category c ON c.id = p.category_id")
}

func (p *PostDB) CountPosts(ctx context.Context, filter entity.PostFilter) (int, error) {
	query, args, err := applyPostFilter(psql.Select("COUNT(*)").From("post p"), filter).ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := p.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *PostDB) ListPosts(ctx context.Context, filter entity.PostFilter, orderBy entity.OrderBy, limit, offset int) ([]*entity.Post, error) {
	b := applyPostFilter(postSelect(), filter).
		OrderBy(orderClause(postOrderColumns, "p.id", orderBy, entity.OrderByPublishDateDesc)...)
	query, args, err := applyLimit(b, limit, offset).ToSql()
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, 0)
	if err := p.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, err
	}
	if err := p.loadTags(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (p *PostDB) AggregatePostCountByStatus(ctx context.Context) ([]*entity.StatusCount, error) {
	query := `
		SELECT status, COUNT(*) AS count
		FROM post
		GROUP BY status
		ORDER BY count DESC, status ASC
	`
	stats := make([]*entity.StatusCount, 0)
	if err := p.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return stats, nil
}

func (p *PostDB) GetPost(ctx context.Context, postID int) (*entity.Post, error) {
	return p.getOne(ctx, sq.Eq{"p.id": postID})
}

func (p *PostDB) GetPostBySlug(ctx context.Context, slug string) (*entity.Post, error) {
	return p.getOne(ctx, sq.Eq{"p.slug": slug})
}

func (p *PostDB) getOne(ctx context.Context, cond sq.Eq) (*entity.Post, error) {
	query, args, err := postSelect().Where(cond).ToSql()
	if err != nil {
		return nil, err
	}
	var post entity.Post
	err = p.db.GetContext(ctx, &post, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repo.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := p.loadTags(ctx, []*entity.Post{&post}); err != nil {
		return nil, err
	}
	return &post, nil
}

// loadTags одним запросом подтягивает теги для всех переданных постов
func (p *PostDB) loadTags(ctx context.Context, posts []*entity.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, len(posts))
	byID := make(map[int]*entity.Post, len(posts))
	for i, post := range posts {
		ids[i] = int64(post.ID)
		post.Tags = []string{}
		byID[post.ID] = post
	}

	query := `
		SELECT pt.post_id, t.name
		FROM post_tag pt
		JOIN tag t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name
	`
	rows, err := p.db.QueryxContext(ctx, query, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			postID int
			name   string
		)
		if err := rows.Scan(&postID, &name); err != nil {
			return err
		}
		if post, ok := byID[postID]; ok {
			post.Tags = append(post.Tags, name)
		}
	}
	return rows.Err()
}

func (p *PostDB) AddPost(ctx context.Context, post *entity.Post) (int, error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		INSERT INTO post (title, slug, author_id, category_id, content, excerpt, featured_image, status,
		                  created_at, updated_at, publish_date, meta_description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9, $10, $11)
		RETURNING id
	`
	createdAt := post.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	var postID int
	err = tx.QueryRowxContext(ctx, query,
		post.Title,
		post.Slug,
		post.AuthorID,
		post.CategoryID,
		post.Content,
		post.Excerpt,
		post.FeaturedImage,
		string(post.Status),
		createdAt,
		post.PublishDate,
		post.MetaDescription,
	).Scan(&postID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repo.ErrSlugExists
		}
		return 0, err
	}

	if err = setTags(ctx, tx, postID, post.Tags); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return postID, nil
}

func (p *PostDB) EditPost(ctx context.Context, post *entity.Post) error {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		UPDATE post
		SET title = $1, slug = $2, category_id = $3, content = $4, excerpt = $5, featured_image = $6,
		    status = $7, publish_date = $8, meta_description = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := tx.ExecContext(ctx, query,
		post.Title,
		post.Slug,
		post.CategoryID,
		post.Content,
		post.Excerpt,
		post.FeaturedImage,
		string(post.Status),
		post.PublishDate,
		post.MetaDescription,
		time.Now(),
		post.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			err = repo.ErrSlugExists
		}
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		err = repo.ErrPostNotFound
		return err
	}

	// nil означает "теги не менялись", пустой срез - "удалить все теги"
	if post.Tags != nil {
		if _, err = tx.ExecContext(ctx, `DELETE FROM post_tag WHERE post_id = $1`, post.ID); err != nil {
			return err
		}
		if err = setTags(ctx, tx, post.ID, post.Tags); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func setTags(ctx context.Context, tx *sqlx.Tx, postID int, tags []string) error {
	for _, name := range tags {
		var tagID int
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO tag (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, name).Scan(&tagID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO post_tag (post_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, postID, tagID)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *PostDB) DeletePost(ctx context.Context, postID int) error {
	result, err := p.db.ExecContext(ctx, `DELETE FROM post WHERE id = $1`, postID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repo.ErrPostNotFound
	}
	return nil
}

func (p *PostDB) SetPostsStatus(ctx context.Context, slugs []string, status entity.PostStatus) (int, error) {
	query, args, err := psql.Update("post").
		Set("status", string(status)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"slug": slugs}).
		ToSql()
	if err != nil {
		return 0, err
	}
	result, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(rowsAffected), nil
}
