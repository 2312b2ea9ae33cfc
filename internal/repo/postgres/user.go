package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
)

type User struct {
	db *sqlx.DB
}

func NewUser(db *sqlx.DB) repo.User {
	return &User{
		db: db,
	}
}

const userColumns = `id, username, email, first_name, last_name, password_hash, is_staff, date_joined, last_login`

func (u *User) CountUsers(ctx context.Context, filter entity.UserFilter) (int, error) {
	b := psql.Select("COUNT(*)").From(`"user"`)
	if filter.LastLoginFrom != nil {
		b = b.Where(sq.GtOrEq{"last_login": *filter.LastLoginFrom})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var count int
	if err := u.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (u *User) AggregatePostCountByAuthor(ctx context.Context) ([]*entity.AuthorPostCount, error) {
	query := `
		SELECT u.id, u.username, COUNT(p.id) AS post_count
		FROM "user" u
		JOIN post p ON p.author_id = u.id
		GROUP BY u.id, u.username
		HAVING COUNT(p.id) > 0
		ORDER BY post_count DESC, u.username ASC
	`
	counts := make([]*entity.AuthorPostCount, 0)
	if err := u.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, err
	}
	return counts, nil
}

func (u *User) AddUser(ctx context.Context, user *entity.User) (int, error) {
	query := `
		INSERT INTO "user" (username, email, first_name, last_name, password_hash, is_staff, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var userID int
	err := u.db.QueryRowxContext(ctx, query,
		user.Username, user.Email, user.FirstName, user.LastName, user.PasswordHash, user.IsStaff, time.Now(),
	).Scan(&userID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repo.ErrUsernameExists
		}
		return 0, err
	}
	return userID, nil
}

func (u *User) GetUser(ctx context.Context, userID int) (*entity.User, error) {
	var user entity.User
	err := u.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *User) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	var user entity.User
	err := u.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM "user" WHERE username = $1`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (u *User) GetUsers(ctx context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	if err := u.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM "user" ORDER BY username`); err != nil {
		return nil, err
	}
	return users, nil
}

func (u *User) UpdateProfile(ctx context.Context, userID int, profile *entity.UpdateProfileRequest) error {
	query := `UPDATE "user" SET first_name = $1, last_name = $2, email = $3 WHERE id = $4`
	result, err := u.db.ExecContext(ctx, query, profile.FirstName, profile.LastName, profile.Email, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repo.ErrUserNotFound
	}

	return nil
}

func (u *User) UpdateLastLogin(ctx context.Context, userID int, at time.Time) error {
	result, err := u.db.ExecContext(ctx, `UPDATE "user" SET last_login = $1 WHERE id = $2`, at, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repo.ErrUserNotFound
	}

	return nil
}
