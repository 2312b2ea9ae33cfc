package repo

import (
	"context"
	"errors"
	"time"

	"cms-backend/internal/entity"
)

type UserReader interface {
	// CountUsers возвращает количество пользователей, подходящих под фильтр
	CountUsers(ctx context.Context, filter entity.UserFilter) (int, error)
	// AggregatePostCountByAuthor возвращает пользователей с количеством написанных ими постов
	AggregatePostCountByAuthor(ctx context.Context) ([]*entity.AuthorPostCount, error)
}

type User interface {
	UserReader
	// AddUser добавляет нового пользователя
	AddUser(ctx context.Context, user *entity.User) (int, error)
	// GetUser возвращает пользователя по его ID
	GetUser(ctx context.Context, userID int) (*entity.User, error)
	// GetUserByUsername возвращает пользователя по логину
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	// GetUsers возвращает всех пользователей, отсортированных по логину
	GetUsers(ctx context.Context) ([]*entity.User, error)
	// UpdateProfile обновляет профиль пользователя
	UpdateProfile(ctx context.Context, userID int, profile *entity.UpdateProfileRequest) error
	// UpdateLastLogin сохраняет время последнего входа
	UpdateLastLogin(ctx context.Context, userID int, at time.Time) error
}

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameExists  = errors.New("username already exists")
	ErrInvalidPassword = errors.New("invalid password")
)
