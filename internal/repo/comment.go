package repo

import (
	"context"
	"errors"

	"cms-backend/internal/entity"
)

type CommentReader interface {
	// CountComments возвращает количество комментариев, подходящих под фильтр
	CountComments(ctx context.Context, filter entity.CommentFilter) (int, error)
	// ListComments возвращает комментарии, подходящие под фильтр, в заданном порядке
	ListComments(ctx context.Context, filter entity.CommentFilter, orderBy entity.OrderBy, limit, offset int) ([]*entity.Comment, error)
}

type Comment interface {
	CommentReader
	// GetComment возвращает комментарий по ID
	GetComment(ctx context.Context, commentID int) (*entity.Comment, error)
	// AddComment добавляет комментарий и возвращает его айди
	AddComment(ctx context.Context, comment *entity.Comment) (int, error)
	// SetCommentApproved одобряет или отклоняет комментарий
	SetCommentApproved(ctx context.Context, commentID int, approved bool) error
	// DeleteComment удаляет комментарий
	DeleteComment(ctx context.Context, commentID int) error
}

var (
	ErrCommentNotFound = errors.New("comment not found")
)
