package entity

import (
	"time"
)

type Comment struct {
	ID         int       `json:"id" db:"id"`
	PostID     int       `json:"post" db:"post_id"`
	PostTitle  string    `json:"post_title" db:"post_title"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Content    string    `json:"content" db:"content"`
	IsApproved bool      `json:"is_approved" db:"is_approved"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CommentFilter описывает условия выборки комментариев. Нулевые поля не участвуют в фильтрации.
type CommentFilter struct {
	PostID      int
	IsApproved  *bool
	Search      string
	CreatedFrom *time.Time
}

type AddCommentRequest struct {
	PostSlug string `json:"-"`
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Content  string `json:"content" validate:"required"`
}

type GetCommentsRequest struct {
	UserID     int    `query:"-"`
	PostID     int    `query:"post"`
	IsApproved *bool  `query:"-"`
	Search     string `query:"search"`
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
}

type GetCommentRequest struct {
	UserID    int
	CommentID int
}

type ModerateCommentRequest struct {
	UserID    int
	CommentID int
	Approve   bool
}

type DeleteCommentRequest struct {
	UserID    int
	CommentID int
}

type CommentList struct {
	Comments []*Comment `json:"comments"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}
