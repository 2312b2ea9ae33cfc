package entity

import "time"

// Bucket - интервал времени и количество постов, созданных в нём.
// Интервал полуоткрытый [Start, End), кроме случая EndInclusive, когда правая граница включена.
type Bucket struct {
	Label        string    `json:"label"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	EndInclusive bool      `json:"end_inclusive"`
	Count        int       `json:"count"`
}

type StatusCount struct {
	Status PostStatus `json:"status" db:"status"`
	Count  int        `json:"count" db:"count"`
}

type SnapshotRequest struct {
	Now             time.Time
	RecentLimit     int
	TopAuthorsLimit int
}

// DashboardSnapshot - неизменяемый срез аналитики на момент GeneratedAt.
// Каждый запрос вычисляет его заново, в хранилище он не сохраняется.
type DashboardSnapshot struct {
	GeneratedAt time.Time `json:"generated_at"`

	TotalPosts        int `json:"total_posts"`
	PublishedPosts    int `json:"published_posts"`
	DraftPosts        int `json:"draft_posts"`
	TotalComments     int `json:"total_comments"`
	PendingComments   int `json:"pending_comments"`
	ApprovedComments  int `json:"approved_comments"`
	TotalCategories   int `json:"total_categories"`
	TotalPages        int `json:"total_pages"`
	TotalUsers        int `json:"total_users"`
	ActiveUsers       int `json:"active_users"`
	PostsThisMonth    int `json:"posts_this_month"`
	CommentsThisMonth int `json:"comments_this_month"`

	Weekly  []Bucket `json:"weekly"`
	Monthly []Bucket `json:"monthly"`

	RecentPosts          []*Post              `json:"recent_posts"`
	RecentComments       []*Comment           `json:"recent_comments"`
	TopCategories        []*CategoryPostCount `json:"top_categories"`
	CategoryDistribution []*CategoryPostCount `json:"category_distribution"`
	TopAuthors           []*AuthorPostCount   `json:"top_authors"`
	StatusDistribution   []*StatusCount       `json:"status_distribution"`

	EngagementRate            float64 `json:"engagement_rate"`
	ApprovalRate              float64 `json:"approval_rate"`
	PendingCommentsPercentage float64 `json:"pending_comments_percentage"`
}

// SeriesResponse - данные для графиков: подписи и значения по порядку
type SeriesResponse struct {
	Labels []string `json:"labels"`
	Data   []int    `json:"data"`
}

type AnalyticsResponse struct {
	MonthlyPosts         SeriesResponse       `json:"monthly_posts"`
	WeeklyPosts          SeriesResponse       `json:"weekly_posts"`
	CategoryDistribution []*CategoryPostCount `json:"category_distribution"`
	StatusDistribution   []*StatusCount       `json:"status_distribution"`
}
