package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
)

const (
	DefaultRecentLimit     = 5
	AdminRecentLimit       = 10
	DefaultTopAuthorsLimit = 5
	TopCategoriesLimit     = 5

	activeUserWindow = 30 * 24 * time.Hour
)

type Dashboard struct {
	store repo.ContentStore
}

func NewDashboard(store repo.ContentStore) usecase.Dashboard {
	return &Dashboard{store: store}
}

// normalizeSnapshotRequest подставляет лимиты по умолчанию, не меняя исходный запрос.
// Момент Now обязателен: снимок всегда считается на явно переданное время.
func normalizeSnapshotRequest(req *entity.SnapshotRequest) (entity.SnapshotRequest, error) {
	if req == nil || req.Now.IsZero() {
		return entity.SnapshotRequest{}, usecase.ErrInvalidRequest
	}
	normalized := *req
	if normalized.RecentLimit <= 0 {
		normalized.RecentLimit = DefaultRecentLimit
	}
	if normalized.TopAuthorsLimit <= 0 {
		normalized.TopAuthorsLimit = DefaultTopAuthorsLimit
	}
	return normalized, nil
}

func (d *Dashboard) ComputeSnapshot(ctx context.Context, req *entity.SnapshotRequest) (*entity.DashboardSnapshot, error) {
	timer := prometheus.NewTimer(snapshotDuration)
	defer timer.ObserveDuration()

	params, err := normalizeSnapshotRequest(req)
	if err != nil {
		return nil, err
	}
	now := params.Now
	y, m, _ := now.Date()
	monthStart := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	activeSince := now.Add(-activeUserWindow)
	approved, pending := true, false

	snapshot := &entity.DashboardSnapshot{GeneratedAt: now}

	counters := []struct {
		name  string
		dst   *int
		count func() (int, error)
	}{
		{"всех постов", &snapshot.TotalPosts, func() (int, error) {
			return d.store.CountPosts(ctx, entity.PostFilter{})
		}},
		{"опубликованных постов", &snapshot.PublishedPosts, func() (int, error) {
			return d.store.CountPosts(ctx, entity.PostFilter{Status: entity.PostPublished})
		}},
		{"черновиков", &snapshot.DraftPosts, func() (int, error) {
			return d.store.CountPosts(ctx, entity.PostFilter{Status: entity.PostDraft})
		}},
		{"постов за месяц", &snapshot.PostsThisMonth, func() (int, error) {
			return d.store.CountPosts(ctx, entity.PostFilter{CreatedFrom: &monthStart})
		}},
		{"всех комментариев", &snapshot.TotalComments, func() (int, error) {
			return d.store.CountComments(ctx, entity.CommentFilter{})
		}},
		{"одобренных комментариев", &snapshot.ApprovedComments, func() (int, error) {
			return d.store.CountComments(ctx, entity.CommentFilter{IsApproved: &approved})
		}},
		{"комментариев на модерации", &snapshot.PendingComments, func() (int, error) {
			return d.store.CountComments(ctx, entity.CommentFilter{IsApproved: &pending})
		}},
		{"комментариев за месяц", &snapshot.CommentsThisMonth, func() (int, error) {
			return d.store.CountComments(ctx, entity.CommentFilter{CreatedFrom: &monthStart})
		}},
		{"категорий", &snapshot.TotalCategories, func() (int, error) {
			return d.store.CountCategories(ctx)
		}},
		{"страниц", &snapshot.TotalPages, func() (int, error) {
			return d.store.CountPages(ctx)
		}},
		{"пользователей", &snapshot.TotalUsers, func() (int, error) {
			return d.store.CountUsers(ctx, entity.UserFilter{})
		}},
		{"активных пользователей", &snapshot.ActiveUsers, func() (int, error) {
			return d.store.CountUsers(ctx, entity.UserFilter{LastLoginFrom: &activeSince})
		}},
	}
	for _, counter := range counters {
		value, err := counter.count()
		if err != nil {
			return nil, fmt.Errorf("подсчёт %s: %w", counter.name, err)
		}
		*counter.dst = value
	}

	if snapshot.Weekly, err = d.fillBuckets(ctx, WeeklyBuckets(now)); err != nil {
		return nil, err
	}
	if snapshot.Monthly, err = d.fillBuckets(ctx, MonthlyBuckets(now)); err != nil {
		return nil, err
	}

	snapshot.RecentPosts, err = d.store.ListPosts(ctx, entity.PostFilter{}, entity.OrderByCreatedDesc, params.RecentLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("последние посты: %w", err)
	}
	snapshot.RecentComments, err = d.store.ListComments(ctx, entity.CommentFilter{}, entity.OrderByCreatedDesc, params.RecentLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("последние комментарии: %w", err)
	}

	categories, err := d.store.AggregatePostCountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("посты по категориям: %w", err)
	}
	snapshot.CategoryDistribution = rankCategories(categories)
	snapshot.TopCategories = cloneCategoryCounts(snapshot.CategoryDistribution[:min(TopCategoriesLimit, len(snapshot.CategoryDistribution))])

	authors, err := d.store.AggregatePostCountByAuthor(ctx)
	if err != nil {
		return nil, fmt.Errorf("посты по авторам: %w", err)
	}
	snapshot.TopAuthors = rankAuthors(authors, params.TopAuthorsLimit)

	statuses, err := d.store.AggregatePostCountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("посты по статусам: %w", err)
	}
	snapshot.StatusDistribution = statusDistribution(statuses)

	snapshot.EngagementRate = percentage(snapshot.TotalComments, snapshot.TotalPosts)
	snapshot.ApprovalRate = percentage(snapshot.ApprovedComments, snapshot.TotalComments)
	snapshot.PendingCommentsPercentage = percentage(snapshot.PendingComments, snapshot.TotalComments)

	return snapshot, nil
}

func (d *Dashboard) fillBuckets(ctx context.Context, buckets []entity.Bucket) ([]entity.Bucket, error) {
	for i := range buckets {
		count, err := d.store.CountPosts(ctx, bucketFilter(buckets[i]))
		if err != nil {
			return nil, fmt.Errorf("посты за %s: %w", buckets[i].Label, err)
		}
		buckets[i].Count = count
	}
	return buckets, nil
}

// cloneCategoryCounts копирует строки, чтобы списки снимка не делили общие элементы
func cloneCategoryCounts(counts []*entity.CategoryPostCount) []*entity.CategoryPostCount {
	cloned := make([]*entity.CategoryPostCount, len(counts))
	for i, c := range counts {
		row := *c
		cloned[i] = &row
	}
	return cloned
}

// percentage возвращает part/total в процентах, округлённых до десятых. При total == 0 - 0.
func percentage(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// rankCategories сортирует категории по убыванию числа постов, при равенстве - по имени
func rankCategories(counts []*entity.CategoryPostCount) []*entity.CategoryPostCount {
	ranked := make([]*entity.CategoryPostCount, len(counts))
	copy(ranked, counts)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PostCount != ranked[j].PostCount {
			return ranked[i].PostCount > ranked[j].PostCount
		}
		return ranked[i].Name < ranked[j].Name
	})
	return ranked
}

// rankAuthors оставляет авторов хотя бы с одним постом и берёт первых limit
func rankAuthors(counts []*entity.AuthorPostCount, limit int) []*entity.AuthorPostCount {
	ranked := make([]*entity.AuthorPostCount, 0, len(counts))
	for _, author := range counts {
		if author.PostCount > 0 {
			ranked = append(ranked, author)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].PostCount != ranked[j].PostCount {
			return ranked[i].PostCount > ranked[j].PostCount
		}
		return ranked[i].Username < ranked[j].Username
	})
	return ranked[:min(limit, len(ranked))]
}

// statusDistribution возвращает количество постов по каждому статусу, включая нулевые
func statusDistribution(counts []*entity.StatusCount) []*entity.StatusCount {
	byStatus := make(map[entity.PostStatus]int, len(counts))
	for _, c := range counts {
		byStatus[c.Status] += c.Count
	}
	return []*entity.StatusCount{
		{Status: entity.PostPublished, Count: byStatus[entity.PostPublished]},
		{Status: entity.PostDraft, Count: byStatus[entity.PostDraft]},
	}
}

// Series превращает интервалы в подписи и значения для графиков
func Series(buckets []entity.Bucket) entity.SeriesResponse {
	series := entity.SeriesResponse{
		Labels: make([]string, len(buckets)),
		Data:   make([]int, len(buckets)),
	}
	for i, b := range buckets {
		series.Labels[i] = b.Label
		series.Data[i] = b.Count
	}
	return series
}
