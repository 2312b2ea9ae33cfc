package usecase

import (
	"context"

	"cms-backend/internal/entity"
)

type Page interface {
	// GetPages возвращает страницы. Анонимным пользователям видны только опубликованные
	GetPages(ctx context.Context, userID int) ([]*entity.Page, error)
	GetPage(ctx context.Context, userID int, slug string) (*entity.Page, error)
	AddPage(ctx context.Context, req *entity.PageRequest) (*entity.Page, error)
	EditPage(ctx context.Context, req *entity.PageRequest) (*entity.Page, error)
	DeletePage(ctx context.Context, userID int, slug string) error
}
