package entity

import "time"

type User struct {
	ID           int        `db:"id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	PasswordHash string     `db:"password_hash"`
	IsStaff      bool       `db:"is_staff"`
	DateJoined   time.Time  `db:"date_joined"`
	LastLogin    *time.Time `db:"last_login"`
}

// UserProfile - публичное представление пользователя, без хеша пароля
type UserProfile struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	IsStaff    bool      `json:"is_staff"`
	DateJoined time.Time `json:"date_joined"`
}

func (u *User) Profile() *UserProfile {
	return &UserProfile{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsStaff:    u.IsStaff,
		DateJoined: u.DateJoined,
	}
}

// UserFilter описывает условия выборки пользователей
type UserFilter struct {
	LastLoginFrom *time.Time
}

// AuthorPostCount - строка агрегата "автор -> количество постов"
type AuthorPostCount struct {
	UserID    int    `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	PostCount int    `json:"post_count" db:"post_count"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"required,max=30"`
	Password  string `json:"password1" validate:"required,min=8,max=64"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"max=30"`
	LastName  string `json:"last_name" validate:"max=30"`
	Email     string `json:"email" validate:"omitempty,email"`
}
