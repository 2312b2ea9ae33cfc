package usecase

import (
	"context"

	"cms-backend/internal/entity"
)

type Post interface {
	// GetPosts возвращает страницу постов. Анонимным пользователям видны только опубликованные
	GetPosts(ctx context.Context, req *entity.GetPostsRequest) (*entity.PostList, error)
	// GetFeaturedPosts возвращает последние опубликованные посты с обложкой
	GetFeaturedPosts(ctx context.Context) ([]*entity.Post, error)
	// GetPost возвращает пост по slug вместе с одобренными комментариями и похожими постами
	GetPost(ctx context.Context, req *entity.GetPostRequest) (*entity.PostDetail, error)
	// AddPost создает пост от имени пользователя
	AddPost(ctx context.Context, req *entity.AddPostRequest) (*entity.Post, error)
	// EditPost обновляет пост. Редактировать может автор или сотрудник
	EditPost(ctx context.Context, req *entity.EditPostRequest) (*entity.Post, error)
	// DeletePost удаляет пост. Удалять может автор или сотрудник
	DeletePost(ctx context.Context, req *entity.DeletePostRequest) error
	// SetPostsStatus массово публикует посты или переводит их в черновики
	SetPostsStatus(ctx context.Context, req *entity.BulkPostStatusRequest) (int, error)
}
