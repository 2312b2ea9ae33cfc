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

type Page struct {
	db *sqlx.DB
}

func NewPage(db *sqlx.DB) repo.Page {
	return &Page{db: db}
}

func (p *Page) CountPages(ctx context.Context) (int, error) {
	var count int
	if err := p.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM page`); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *Page) GetPages(ctx context.Context, onlyPublished bool) ([]*entity.Page, error) {
	query := `
		SELECT id, title, slug, content, meta_description, is_published, created_at, updated_at
		FROM page
		WHERE is_published OR NOT $1
		ORDER BY title, id
	`
	pages := make([]*entity.Page, 0)
	if err := p.db.SelectContext(ctx, &pages, query, onlyPublished); err != nil {
		return nil, err
	}
	return pages, nil
}

func (p *Page) GetPageBySlug(ctx context.Context, slug string) (*entity.Page, error) {
	query := `
		SELECT id, title, slug, content, meta_description, is_published, created_at, updated_at
		FROM page
		WHERE slug = $1
	`
	var page entity.Page
	err := p.db.GetContext(ctx, &page, query, slug)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, repo.ErrPageNotFound
	case err != nil:
		return nil, err
	}
	return &page, nil
}

func (p *Page) AddPage(ctx context.Context, page *entity.Page) (int, error) {
	query := `
		INSERT INTO page (title, slug, content, meta_description, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING id
	`
	var pageID int
	err := p.db.QueryRowxContext(ctx, query,
		page.Title, page.Slug, page.Content, page.MetaDescription, page.IsPublished, time.Now(),
	).Scan(&pageID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repo.ErrSlugExists
		}
		return 0, err
	}
	return pageID, nil
}

func (p *Page) EditPage(ctx context.Context, page *entity.Page) error {
	query := `
		UPDATE page
		SET title = $1, slug = $2, content = $3, meta_description = $4, is_published = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := p.db.ExecContext(ctx, query,
		page.Title, page.Slug, page.Content, page.MetaDescription, page.IsPublished, time.Now(), page.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repo.ErrSlugExists
		}
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repo.ErrPageNotFound
	}
	return nil
}

func (p *Page) DeletePage(ctx context.Context, pageID int) error {
	result, err := p.db.ExecContext(ctx, `DELETE FROM page WHERE id = $1`, pageID)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repo.ErrPageNotFound
	}
	return nil
}
