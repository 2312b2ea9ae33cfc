package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-backend/internal/entity"
	"cms-backend/internal/usecase"
)

var testNow = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func TestComputeSnapshotEmptyStore(t *testing.T) {
	dashboard := NewDashboard(&memoryStore{})

	snapshot, err := dashboard.ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, testNow, snapshot.GeneratedAt)
	assert.Zero(t, snapshot.TotalPosts)
	assert.Zero(t, snapshot.PublishedPosts)
	assert.Zero(t, snapshot.DraftPosts)
	assert.Zero(t, snapshot.TotalComments)
	assert.Zero(t, snapshot.PendingComments)
	assert.Zero(t, snapshot.ApprovedComments)
	assert.Zero(t, snapshot.TotalCategories)
	assert.Zero(t, snapshot.TotalPages)
	assert.Zero(t, snapshot.TotalUsers)
	assert.Zero(t, snapshot.EngagementRate)
	assert.Zero(t, snapshot.ApprovalRate)
	assert.Zero(t, snapshot.PendingCommentsPercentage)

	require.Len(t, snapshot.Weekly, WeeklyBucketCount)
	require.Len(t, snapshot.Monthly, MonthlyBucketCount)
	for _, b := range append(snapshot.Weekly, snapshot.Monthly...) {
		assert.Zero(t, b.Count)
	}
	assert.Empty(t, snapshot.RecentPosts)
	assert.Empty(t, snapshot.RecentComments)
	assert.Empty(t, snapshot.TopCategories)
	assert.Empty(t, snapshot.TopAuthors)
}

func TestComputeSnapshotScenario(t *testing.T) {
	store := &memoryStore{}
	for i := 0; i < 3; i++ {
		store.addPost(entity.PostPublished, testNow.Add(-time.Duration(i)*time.Hour), 1, nil)
	}
	for i := 0; i < 2; i++ {
		store.addPost(entity.PostDraft, testNow.Add(-time.Duration(i)*time.Minute), 1, nil)
	}
	for i := 0; i < 10; i++ {
		store.addComment(1, i < 7, testNow.Add(-time.Duration(i)*time.Minute))
	}

	snapshot, err := NewDashboard(store).ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, 5, snapshot.TotalPosts)
	assert.Equal(t, 3, snapshot.PublishedPosts)
	assert.Equal(t, 2, snapshot.DraftPosts)
	assert.Equal(t, 10, snapshot.TotalComments)
	assert.Equal(t, 7, snapshot.ApprovedComments)
	assert.Equal(t, 3, snapshot.PendingComments)
	assert.Equal(t, 200.0, snapshot.EngagementRate)
	assert.Equal(t, 70.0, snapshot.ApprovalRate)
	assert.Equal(t, 30.0, snapshot.PendingCommentsPercentage)

	assert.Equal(t, 5, snapshot.Weekly[WeeklyBucketCount-1].Count)
	assert.Equal(t, 5, snapshot.Monthly[MonthlyBucketCount-1].Count)
	assert.Equal(t, 5, snapshot.PostsThisMonth)
	assert.Equal(t, 10, snapshot.CommentsThisMonth)

	require.Len(t, snapshot.RecentPosts, DefaultRecentLimit)
	require.Len(t, snapshot.RecentComments, DefaultRecentLimit)
	for i := 1; i < len(snapshot.RecentComments); i++ {
		assert.False(t, snapshot.RecentComments[i].CreatedAt.After(snapshot.RecentComments[i-1].CreatedAt))
	}

	assert.Equal(t, []*entity.StatusCount{
		{Status: entity.PostPublished, Count: 3},
		{Status: entity.PostDraft, Count: 2},
	}, snapshot.StatusDistribution)
}

func TestComputeSnapshotTopCategories(t *testing.T) {
	store := &memoryStore{
		categories: []*entity.Category{
			{ID: 1, Name: "B", Slug: "b"},
			{ID: 2, Name: "A", Slug: "a"},
		},
	}
	store.addPost(entity.PostPublished, testNow.AddDate(0, 0, -1), 1, intPtr(1))
	for i := 0; i < 4; i++ {
		store.addPost(entity.PostPublished, testNow.AddDate(0, 0, -2), 1, intPtr(2))
	}

	snapshot, err := NewDashboard(store).ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)

	require.Len(t, snapshot.TopCategories, 2)
	assert.Equal(t, "A", snapshot.TopCategories[0].Name)
	assert.Equal(t, 4, snapshot.TopCategories[0].PostCount)
	assert.Equal(t, "B", snapshot.TopCategories[1].Name)
	assert.Equal(t, 1, snapshot.TopCategories[1].PostCount)
}

func TestComputeSnapshotTopCategoriesTruncatedWithNameTieBreak(t *testing.T) {
	store := &memoryStore{}
	for i, name := range []string{"g", "f", "e", "d", "c", "b", "a"} {
		store.categories = append(store.categories, &entity.Category{ID: i + 1, Name: name})
	}

	snapshot, err := NewDashboard(store).ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)

	require.Len(t, snapshot.TopCategories, TopCategoriesLimit)
	names := make([]string, 0, TopCategoriesLimit)
	for _, c := range snapshot.TopCategories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, names)
	assert.Len(t, snapshot.CategoryDistribution, 7)
}

func TestComputeSnapshotTopCategoriesIndependentOfDistribution(t *testing.T) {
	store := &memoryStore{}
	for i, name := range []string{"c", "b", "a"} {
		store.categories = append(store.categories, &entity.Category{ID: i + 1, Name: name})
	}

	snapshot, err := NewDashboard(store).ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)
	require.Len(t, snapshot.TopCategories, 3)

	snapshot.TopCategories[0].PostCount = 100
	snapshot.TopCategories = append(snapshot.TopCategories[:1], &entity.CategoryPostCount{Name: "x"})

	require.Len(t, snapshot.CategoryDistribution, 3)
	names := make([]string, 0, 3)
	for _, c := range snapshot.CategoryDistribution {
		names = append(names, c.Name)
		assert.Zero(t, c.PostCount)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestComputeSnapshotTopAuthors(t *testing.T) {
	store := &memoryStore{
		users: []*entity.User{
			{ID: 1, Username: "zoe"},
			{ID: 2, Username: "adam"},
			{ID: 3, Username: "nobody"},
			{ID: 4, Username: "bob"},
		},
	}
	for _, authorID := range []int{1, 1, 2, 2, 4} {
		store.addPost(entity.PostPublished, testNow.AddDate(0, -1, 0), authorID, nil)
	}

	snapshot, err := NewDashboard(store).ComputeSnapshot(context.Background(), &entity.SnapshotRequest{
		Now:             testNow,
		TopAuthorsLimit: 2,
	})
	require.NoError(t, err)

	require.Len(t, snapshot.TopAuthors, 2)
	assert.Equal(t, "adam", snapshot.TopAuthors[0].Username)
	assert.Equal(t, "zoe", snapshot.TopAuthors[1].Username)

	snapshot, err = NewDashboard(store).ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)
	require.Len(t, snapshot.TopAuthors, 3)
	for _, author := range snapshot.TopAuthors {
		assert.NotEqual(t, "nobody", author.Username)
	}
}

func TestComputeSnapshotActiveUsers(t *testing.T) {
	recent := testNow.AddDate(0, 0, -3)
	old := testNow.AddDate(0, -2, 0)
	store := &memoryStore{
		users: []*entity.User{
			{ID: 1, Username: "active", LastLogin: &recent},
			{ID: 2, Username: "idle", LastLogin: &old},
			{ID: 3, Username: "never"},
		},
	}

	snapshot, err := NewDashboard(store).ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, 3, snapshot.TotalUsers)
	assert.Equal(t, 1, snapshot.ActiveUsers)
}

func TestComputeSnapshotIdempotent(t *testing.T) {
	store := &memoryStore{categories: []*entity.Category{{ID: 1, Name: "A"}}}
	store.addPost(entity.PostPublished, testNow.AddDate(0, 0, -2), 1, intPtr(1))
	store.addPost(entity.PostDraft, testNow.AddDate(0, -3, 0), 1, nil)
	store.addComment(1, true, testNow.Add(-time.Hour))

	dashboard := NewDashboard(store)
	first, err := dashboard.ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)
	second, err := dashboard.ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeSnapshotMonotonic(t *testing.T) {
	store := &memoryStore{}
	store.addPost(entity.PostPublished, testNow.AddDate(0, 0, -3), 1, nil)
	store.addPost(entity.PostPublished, testNow.AddDate(0, -2, 0), 1, nil)

	dashboard := NewDashboard(store)
	before, err := dashboard.ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)

	store.addPost(entity.PostPublished, testNow, 1, nil)
	after, err := dashboard.ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, before.TotalPosts+1, after.TotalPosts)
	for i := range before.Weekly {
		want := before.Weekly[i].Count
		if i == WeeklyBucketCount-1 {
			want++
		}
		assert.Equal(t, want, after.Weekly[i].Count, "недельный интервал %d", i)
	}
	for i := range before.Monthly {
		want := before.Monthly[i].Count
		if i == MonthlyBucketCount-1 {
			want++
		}
		assert.Equal(t, want, after.Monthly[i].Count, "месячный интервал %d", i)
	}
}

func TestComputeSnapshotDefaultsLimits(t *testing.T) {
	store := &memoryStore{}
	for i := 0; i < 12; i++ {
		store.addPost(entity.PostPublished, testNow.Add(-time.Duration(i)*time.Minute), 1, nil)
	}

	dashboard := NewDashboard(store)
	snapshot, err := dashboard.ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow, RecentLimit: -1})
	require.NoError(t, err)
	assert.Len(t, snapshot.RecentPosts, DefaultRecentLimit)

	snapshot, err = dashboard.ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow, RecentLimit: AdminRecentLimit})
	require.NoError(t, err)
	require.Len(t, snapshot.RecentPosts, AdminRecentLimit)
	assert.Equal(t, 1, snapshot.RecentPosts[0].ID)
}

func TestComputeSnapshotPropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection refused")
	store := &memoryStore{err: storeErr}

	snapshot, err := NewDashboard(store).ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 1, store.calls)
}

func TestComputeSnapshotRequiresNow(t *testing.T) {
	store := &memoryStore{}
	dashboard := NewDashboard(store)

	for _, req := range []*entity.SnapshotRequest{nil, {}, {RecentLimit: AdminRecentLimit}} {
		snapshot, err := dashboard.ComputeSnapshot(context.Background(), req)
		assert.Nil(t, snapshot)
		assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
	}
	assert.Zero(t, store.calls)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, percentage(5, 0))
	assert.Equal(t, 33.3, percentage(1, 3))
	assert.Equal(t, 66.7, percentage(2, 3))
	assert.Equal(t, 200.0, percentage(10, 5))
}

func TestSeries(t *testing.T) {
	series := Series(MonthlyBuckets(testNow))
	assert.Equal(t, []string{"Oct", "Nov", "Dec", "Jan", "Feb", "Mar"}, series.Labels)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, series.Data)
}
