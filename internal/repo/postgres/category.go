package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
)

type Category struct {
	db *sqlx.DB
}

func NewCategory(db *sqlx.DB) repo.Category {
	return &Category{db: db}
}

const categorySelect = `
	SELECT c.id, c.name, c.slug, c.description, c.created_at,
	       (SELECT COUNT(*) FROM post p WHERE p.category_id = c.id AND p.status = 'published') AS post_count
	FROM category c
`

func (c *Category) CountCategories(ctx context.Context) (int, error) {
	var count int
	if err := c.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM category`); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Category) AggregatePostCountByCategory(ctx context.Context) ([]*entity.CategoryPostCount, error) {
	query := `
		SELECT c.id, c.name, c.slug, COUNT(p.id) AS post_count
		FROM category c
		LEFT JOIN post p ON p.category_id = c.id
		GROUP BY c.id, c.name, c.slug
		ORDER BY post_count DESC, c.name ASC
	`
	counts := make([]*entity.CategoryPostCount, 0)
	if err := c.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return counts, nil
}

func (c *Category) GetCategories(ctx context.Context) ([]*entity.Category, error) {
	categories := make([]*entity.Category, 0)
	if err := c.db.SelectContext(ctx, &categories, categorySelect+` ORDER BY c.name`); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Category) GetCategory(ctx context.Context, categoryID int) (*entity.Category, error) {
	return c.getOne(ctx, categorySelect+` WHERE c.id = $1`, categoryID)
}

func (c *Category) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return c.getOne(ctx, categorySelect+` WHERE c.slug = $1`, slug)
}

func (c *Category) getOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	var category entity.Category
	err := c.db.GetContext(ctx, &category, query, arg)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, repo.ErrCategoryNotFound
	case err != nil:
		return nil, err
	}
	return &category, nil
}

func (c *Category) AddCategory(ctx context.Context, category *entity.Category) (int, error) {
	query := `
		INSERT INTO category (name, slug, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var categoryID int
	err := c.db.QueryRowxContext(ctx, query, category.Name, category.Slug, category.Description, time.Now()).Scan(&categoryID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repo.ErrCategoryExists
		}
		return 0, err
	}
	return categoryID, nil
}

func (c *Category) EditCategory(ctx context.Context, category *entity.Category) error {
	result, err := c.db.ExecContext(ctx,
		`UPDATE category SET name = $1, slug = $2, description = $3 WHERE id = $4`,
		category.Name, category.Slug, category.Description, category.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repo.ErrCategoryExists
		}
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repo.ErrCategoryNotFound
	}
	return nil
}

func (c *Category) DeleteCategory(ctx context.Context, categoryID int) error {
	result, err := c.db.ExecContext(ctx, `DELETE FROM category WHERE id = $1`, categoryID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repo.ErrCategoryNotFound
	}
	return nil
}
