package service

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
)

type User struct {
	userRepo repo.User
	events   *EventPublisher
	now      func() time.Time
}

func NewUser(userRepo repo.User, events *EventPublisher) usecase.User {
	return &User{
		userRepo: userRepo,
		events:   events,
		now:      time.Now,
	}
}

func (u *User) Register(ctx context.Context, req *entity.RegisterRequest) (int, error) {
	if req.Password != req.Password2 {
		return 0, usecase.ErrInvalidRequest
	}
	// Хешируем пароль пользователя
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hashedPassword),
	}
	userID, err := u.userRepo.AddUser(ctx, user)
	if err != nil {
		return 0, err
	}
	u.events.publish(ctx, entity.UserRegistered, userID)
	return userID, nil
}

func (u *User) Login(ctx context.Context, req *entity.LoginRequest) (int, error) {
	user, err := u.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			return 0, usecase.ErrInvalidCredentials
		}
		return 0, err
	}

	if user.PasswordHash == "" {
		return 0, usecase.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return 0, usecase.ErrInvalidCredentials
	}

	// время входа нужно только для счётчика активных пользователей, вход из-за него не ломаем
	if err := u.userRepo.UpdateLastLogin(ctx, user.ID, u.now()); err != nil {
		log.Errorf("Ошибка обновления времени входа пользователя %d: %v", user.ID, err)
	}
	return user.ID, nil
}

func (u *User) GetUser(ctx context.Context, userID int) (*entity.UserProfile, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (u *User) GetUsers(ctx context.Context) ([]*entity.UserProfile, error) {
	users, err := u.userRepo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]*entity.UserProfile, len(users))
	for i, user := range users {
		profiles[i] = user.Profile()
	}
	return profiles, nil
}

func (u *User) UpdateProfile(ctx context.Context, userID int, profile *entity.UpdateProfileRequest) error {
	return u.userRepo.UpdateProfile(ctx, userID, profile)
}

func (u *User) IsStaff(ctx context.Context, userID int) (bool, error) {
	err := requireStaff(ctx, u.userRepo, userID)
	if errors.Is(err, usecase.ErrUserForbidden) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
