package usecase

import (
	"context"

	"cms-backend/internal/entity"
)

type User interface {
	// Register регистрирует нового пользователя и возвращает его идентификатор
	Register(ctx context.Context, req *entity.RegisterRequest) (int, error)
	// Login проверяет пароль, запоминает время входа и возвращает идентификатор пользователя
	Login(ctx context.Context, req *entity.LoginRequest) (int, error)
	// GetUser возвращает пользователя по его идентификатору
	GetUser(ctx context.Context, userID int) (*entity.UserProfile, error)
	// GetUsers возвращает всех пользователей
	GetUsers(ctx context.Context) ([]*entity.UserProfile, error)
	// UpdateProfile обновляет профиль пользователя
	UpdateProfile(ctx context.Context, userID int, profile *entity.UpdateProfileRequest) error
	// IsStaff проверяет, является ли пользователь сотрудником
	IsStaff(ctx context.Context, userID int) (bool, error)
}
