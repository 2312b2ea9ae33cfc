package entity

import "time"

type Category struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	PostCount   int       `json:"post_count" db:"post_count"`
}

type CategoryRequest struct {
	UserID      int    `json:"-"`
	Slug        string `json:"-"` // slug редактируемой категории
	Name        string `json:"name" validate:"required,max=100"`
	NewSlug     string `json:"slug" validate:"omitempty,max=100"`
	Description string `json:"description"`
}

// CategoryPostCount - строка агрегата "категория -> количество постов"
type CategoryPostCount struct {
	CategoryID int    `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Slug       string `json:"slug" db:"slug"`
	PostCount  int    `json:"post_count" db:"post_count"`
}
