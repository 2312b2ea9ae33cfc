package entity

import "time"

type Page struct {
	ID              int       `json:"id" db:"id"`
	Title           string    `json:"title" db:"title"`
	Slug            string    `json:"slug" db:"slug"`
	Content         string    `json:"content" db:"content"`
	MetaDescription string    `json:"meta_description" db:"meta_description"`
	IsPublished     bool      `json:"is_published" db:"is_published"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type PageRequest struct {
	UserID          int    `json:"-"`
	Slug            string `json:"-"`
	Title           string `json:"title" validate:"required,max=200"`
	NewSlug         string `json:"slug" validate:"omitempty,max=200"`
	Content         string `json:"content" validate:"required"`
	MetaDescription string `json:"meta_description" validate:"omitempty,max=160"`
	IsPublished     *bool  `json:"is_published"`
}
