package repo

import (
	"context"
	"errors"

	"cms-backend/internal/entity"
)

// PostReader - операции чтения постов, которые нужны аналитике дашборда
type PostReader interface {
	// CountPosts возвращает количество постов, подходящих под фильтр
	CountPosts(ctx context.Context, filter entity.PostFilter) (int, error)
	// ListPosts возвращает посты, подходящие под фильтр, в заданном порядке. limit <= 0 - без ограничения
	ListPosts(ctx context.Context, filter entity.PostFilter, orderBy entity.OrderBy, limit, offset int) ([]*entity.Post, error)
	// AggregatePostCountByStatus возвращает количество постов в каждом статусе
	AggregatePostCountByStatus(ctx context.Context) ([]*entity.StatusCount, error)
}

type Post interface {
	PostReader
	// GetPost возвращает пост по ID
	GetPost(ctx context.Context, postID int) (*entity.Post, error)
	// GetPostBySlug возвращает пост по slug
	GetPostBySlug(ctx context.Context, slug string) (*entity.Post, error)
	// AddPost добавляет пост вместе с тегами и возвращает его айди
	AddPost(ctx context.Context, post *entity.Post) (int, error)
	// EditPost обновляет пост. Теги заменяются, только если post.Tags != nil
	EditPost(ctx context.Context, post *entity.Post) error
	// DeletePost удаляет пост вместе с комментариями
	DeletePost(ctx context.Context, postID int) error
	// SetPostsStatus массово меняет статус постов и возвращает число изменённых
	SetPostsStatus(ctx context.Context, slugs []string, status entity.PostStatus) (int, error)
}

var (
	ErrPostNotFound = errors.New("post not found")
	ErrSlugExists   = errors.New("slug already exists")
)
