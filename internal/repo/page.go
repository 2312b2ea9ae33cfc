package repo

import (
	"context"
	"errors"

	"cms-backend/internal/entity"
)

type PageReader interface {
	// CountPages возвращает количество страниц
	CountPages(ctx context.Context) (int, error)
}

type Page interface {
	PageReader
	// GetPages возвращает страницы по заголовку. onlyPublished - только опубликованные
	GetPages(ctx context.Context, onlyPublished bool) ([]*entity.Page, error)
	// GetPageBySlug возвращает страницу по slug
	GetPageBySlug(ctx context.Context, slug string) (*entity.Page, error)
	// AddPage добавляет страницу и возвращает её айди
	AddPage(ctx context.Context, page *entity.Page) (int, error)
	// EditPage обновляет страницу
	EditPage(ctx context.Context, page *entity.Page) error
	// DeletePage удаляет страницу
	DeletePage(ctx context.Context, pageID int) error
}

var (
	ErrPageNotFound = errors.New("page not found")
)
