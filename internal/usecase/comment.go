package usecase

import (
	"context"

	"cms-backend/internal/entity"
)

type Comment interface {
	// GetComments возвращает комментарии. Анонимным пользователям видны только одобренные
	GetComments(ctx context.Context, req *entity.GetCommentsRequest) (*entity.CommentList, error)
	// GetComment возвращает комментарий по ID
	GetComment(ctx context.Context, req *entity.GetCommentRequest) (*entity.Comment, error)
	// AddComment добавляет комментарий к опубликованному посту. Комментарий ждёт одобрения
	AddComment(ctx context.Context, req *entity.AddCommentRequest) (*entity.Comment, error)
	// ModerateComment одобряет или отклоняет комментарий
	ModerateComment(ctx context.Context, req *entity.ModerateCommentRequest) error
	// DeleteComment удаляет комментарий
	DeleteComment(ctx context.Context, req *entity.DeleteCommentRequest) error
}
