package usecase

import (
	"context"

	"cms-backend/internal/entity"
)

type Category interface {
	GetCategories(ctx context.Context) ([]*entity.Category, error)
	GetCategory(ctx context.Context, slug string) (*entity.Category, error)
	AddCategory(ctx context.Context, req *entity.CategoryRequest) (*entity.Category, error)
	EditCategory(ctx context.Context, req *entity.CategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, userID int, slug string) error
}
