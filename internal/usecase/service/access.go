package service

import (
	"context"
	"errors"

	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
)

func requireUser(userID int) error {
	if userID == 0 {
		return usecase.ErrUserForbidden
	}
	return nil
}

func requireStaff(ctx context.Context, users repo.User, userID int) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	user, err := users.GetUser(ctx, userID)
	if errors.Is(err, repo.ErrUserNotFound) {
		return usecase.ErrUserForbidden
	}
	if err != nil {
		return err
	}
	if !user.IsStaff {
		return usecase.ErrUserForbidden
	}
	return nil
}

// requireAuthorOrStaff пропускает автора записи и сотрудников
func requireAuthorOrStaff(ctx context.Context, users repo.User, userID, authorID int) error {
	if userID != 0 && userID == authorID {
		return nil
	}
	return requireStaff(ctx, users, userID)
}
