package repo

import (
	"context"
	"errors"

	"cms-backend/internal/entity"
)

type CategoryReader interface {
	// CountCategories возвращает количество категорий
	CountCategories(ctx context.Context) (int, error)
	// AggregatePostCountByCategory возвращает все категории с количеством постов в каждой
	AggregatePostCountByCategory(ctx context.Context) ([]*entity.CategoryPostCount, error)
}

type Category interface {
	CategoryReader
	// GetCategories возвращает все категории по имени, post_count считает только опубликованные посты
	GetCategories(ctx context.Context) ([]*entity.Category, error)
	// GetCategory возвращает категорию по ID
	GetCategory(ctx context.Context, categoryID int) (*entity.Category, error)
	// GetCategoryBySlug возвращает категорию по slug
	GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error)
	// AddCategory добавляет категорию и возвращает её айди
	AddCategory(ctx context.Context, category *entity.Category) (int, error)
	// EditCategory обновляет категорию
	EditCategory(ctx context.Context, category *entity.Category) error
	// DeleteCategory удаляет категорию, у постов категория обнуляется
	DeleteCategory(ctx context.Context, categoryID int) error
}

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
)
