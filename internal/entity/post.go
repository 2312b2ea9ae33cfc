package entity

import (
	"time"
)

type PostStatus string

const (
	PostDraft     PostStatus = "draft"
	PostPublished PostStatus = "published"
)

// IsValid проверяет, что статус входит в множество {draft, published}
func (s PostStatus) IsValid() bool {
	return s == PostDraft || s == PostPublished
}

type Post struct {
	ID              int        `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Slug            string     `json:"slug" db:"slug"`
	AuthorID        int        `json:"author_id" db:"author_id"`
	AuthorUsername  string     `json:"author_username" db:"author_username"`
	CategoryID      *int       `json:"category_id" db:"category_id"`
	CategoryName    *string    `json:"category_name" db:"category_name"`
	Content         string     `json:"content,omitempty" db:"content"`
	Excerpt         string     `json:"excerpt" db:"excerpt"`
	FeaturedImage   string     `json:"featured_image" db:"featured_image"`
	Status          PostStatus `json:"status" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	PublishDate     time.Time  `json:"publish_date" db:"publish_date"`
	MetaDescription string     `json:"meta_description" db:"meta_description"`
	Tags            []string   `json:"tags"`
	CommentCount    int        `json:"comment_count" db:"comment_count"` // только одобренные
}

// IsPublishedAt возвращает true, если пост опубликован и дата публикации уже наступила
func (p *Post) IsPublishedAt(now time.Time) bool {
	return p.Status == PostPublished && !p.PublishDate.After(now)
}

// PostFilter описывает условия выборки постов. Нулевые поля не участвуют в фильтрации.
type PostFilter struct {
	Status          PostStatus
	AuthorID        int
	CategoryID      int
	CategorySlug    string
	Tag             string
	Search          string
	CreatedFrom     *time.Time // created_at >= CreatedFrom
	CreatedBefore   *time.Time // created_at < CreatedBefore
	CreatedUntil    *time.Time // created_at <= CreatedUntil
	PublishedBefore *time.Time // publish_date <= PublishedBefore
	WithFeatured    bool
	ExcludeID       int
}

// OrderBy задаёт сортировку выборки. Desc - по убыванию.
type OrderBy struct {
	Field string
	Desc  bool
}

var (
	OrderByCreatedDesc     = OrderBy{Field: "created_at", Desc: true}
	OrderByPublishDateDesc = OrderBy{Field: "publish_date", Desc: true}
)

type GetPostsRequest struct {
	UserID   int        `query:"-"`
	Search   string     `query:"search"`
	Category string     `query:"category"`
	Tag      string     `query:"tag"`
	Status   PostStatus `query:"status"`
	Author   int        `query:"author"`
	Ordering string     `query:"ordering"`
	Page     int        `query:"page"`
	Limit    int        `query:"limit"`
}

type GetPostRequest struct {
	UserID int
	Slug   string
}

type AddPostRequest struct {
	UserID          int        `json:"-"`
	Title           string     `json:"title" validate:"required,max=200"`
	Slug            string     `json:"slug" validate:"omitempty,max=200"`
	CategoryID      *int       `json:"category_id"`
	Content         string     `json:"content" validate:"required"`
	Excerpt         string     `json:"excerpt" validate:"omitempty,max=300"`
	FeaturedImage   string     `json:"featured_image"`
	Status          PostStatus `json:"status" validate:"omitempty,oneof=draft published"`
	PublishDate     *time.Time `json:"publish_date"`
	MetaDescription string     `json:"meta_description" validate:"omitempty,max=160"`
	Tags            []string   `json:"tags" validate:"omitempty,dive,max=50"`
}

type EditPostRequest struct {
	UserID          int         `json:"-"`
	Slug            string      `json:"-"`
	Title           *string     `json:"title" validate:"omitempty,max=200"`
	NewSlug         *string     `json:"slug" validate:"omitempty,max=200"`
	CategoryID      *int        `json:"category_id"`
	Content         *string     `json:"content"`
	Excerpt         *string     `json:"excerpt" validate:"omitempty,max=300"`
	FeaturedImage   *string     `json:"featured_image"`
	Status          *PostStatus `json:"status" validate:"omitempty,oneof=draft published"`
	PublishDate     *time.Time  `json:"publish_date"`
	MetaDescription *string     `json:"meta_description" validate:"omitempty,max=160"`
	Tags            *[]string   `json:"tags" validate:"omitempty,dive,max=50"`
}

type DeletePostRequest struct {
	UserID int
	Slug   string
}

type BulkPostStatusRequest struct {
	UserID int        `json:"-"`
	Slugs  []string   `json:"slugs" validate:"required,min=1"`
	Status PostStatus `json:"status" validate:"required,oneof=draft published"`
}

type PostDetail struct {
	*Post
	Author       *UserProfile `json:"author"`
	Category     *Category    `json:"category"`
	Comments     []*Comment   `json:"approved_comments"`
	RelatedPosts []*Post      `json:"related_posts"`
}

type PostList struct {
	Posts    []*Post `json:"posts"`
	Total    int     `json:"total"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}
