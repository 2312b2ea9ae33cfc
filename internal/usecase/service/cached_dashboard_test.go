package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
)

type memoryCache struct {
	mu        sync.Mutex
	snapshots map[string]*entity.DashboardSnapshot
	ttls      map[string]time.Duration
	getErr    error
	cleared   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		snapshots: map[string]*entity.DashboardSnapshot{},
		ttls:      map[string]time.Duration{},
	}
}

func (c *memoryCache) GetSnapshot(_ context.Context, key string) (*entity.DashboardSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	snapshot, ok := c.snapshots[key]
	if !ok {
		return nil, repo.ErrSnapshotCacheMiss
	}
	return snapshot, nil
}

func (c *memoryCache) PutSnapshot(_ context.Context, key string, snapshot *entity.DashboardSnapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[key] = snapshot
	c.ttls[key] = ttl
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots = map[string]*entity.DashboardSnapshot{}
	c.cleared++
	return nil
}

func (c *memoryCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.snapshots))
	for key := range c.snapshots {
		keys = append(keys, key)
	}
	return keys
}

// countingDashboard запоминает запросы, с которыми его вызвали
type countingDashboard struct {
	mu       sync.Mutex
	requests []entity.SnapshotRequest
}

func (d *countingDashboard) ComputeSnapshot(_ context.Context, req *entity.SnapshotRequest) (*entity.DashboardSnapshot, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests = append(d.requests, *req)
	return &entity.DashboardSnapshot{GeneratedAt: req.Now, TotalPosts: len(d.requests)}, nil
}

func (d *countingDashboard) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func TestCachedDashboardReusesSnapshotWithinGranularity(t *testing.T) {
	inner := &countingDashboard{}
	cache := newMemoryCache()
	dashboard := NewCachedDashboard(inner, cache, time.Minute)
	ctx := context.Background()

	now := time.Date(2024, time.March, 15, 14, 30, 10, 0, time.UTC)
	first, err := dashboard.ComputeSnapshot(ctx, &entity.SnapshotRequest{Now: now})
	require.NoError(t, err)
	second, err := dashboard.ComputeSnapshot(ctx, &entity.SnapshotRequest{Now: now.Add(40 * time.Second)})
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls())
	assert.Same(t, first, second)

	// ключ - начало окна, снимок считается на его последний момент с нормализованными лимитами
	windowEnd := time.Date(2024, time.March, 15, 14, 30, 59, 999999999, time.UTC)
	assert.Equal(t, entity.SnapshotRequest{Now: windowEnd, RecentLimit: DefaultRecentLimit, TopAuthorsLimit: DefaultTopAuthorsLimit}, inner.requests[0])
	assert.Equal(t, []string{"1710513000:5:5"}, cache.keys())
	assert.Equal(t, time.Minute, cache.ttls["1710513000:5:5"])

	_, err = dashboard.ComputeSnapshot(ctx, &entity.SnapshotRequest{Now: now.Add(time.Minute)})
	require.NoError(t, err)
	_, err = dashboard.ComputeSnapshot(ctx, &entity.SnapshotRequest{Now: now, RecentLimit: AdminRecentLimit})
	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls())
}

func TestCachedDashboardFallsThroughOnCacheError(t *testing.T) {
	inner := &countingDashboard{}
	cache := newMemoryCache()
	cache.getErr = errors.New("redis: connection refused")
	dashboard := NewCachedDashboard(inner, cache, time.Minute)

	snapshot, err := dashboard.ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)
	assert.NotNil(t, snapshot)
	assert.Equal(t, 1, inner.calls())
}

func TestCachedDashboardInvalidate(t *testing.T) {
	inner := &countingDashboard{}
	cache := newMemoryCache()
	dashboard := NewCachedDashboard(inner, cache, time.Minute)
	ctx := context.Background()

	_, err := dashboard.ComputeSnapshot(ctx, &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)
	require.NoError(t, dashboard.Invalidate(ctx))
	_, err = dashboard.ComputeSnapshot(ctx, &entity.SnapshotRequest{Now: testNow})
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls())
	assert.Equal(t, 1, cache.cleared)
}

func TestCachedDashboardBucketsAgreeForPostInsideWindow(t *testing.T) {
	store := &memoryStore{}
	createdAt := time.Date(2024, time.March, 15, 14, 30, 45, 0, time.UTC)
	store.addPost(entity.PostPublished, createdAt, 1, nil)
	dashboard := NewCachedDashboard(NewDashboard(store), newMemoryCache(), time.Minute)

	snapshot, err := dashboard.ComputeSnapshot(context.Background(), &entity.SnapshotRequest{Now: createdAt})
	require.NoError(t, err)

	assert.Equal(t, 1, snapshot.TotalPosts)
	assert.Equal(t, 1, snapshot.PostsThisMonth)
	assert.Equal(t, 1, snapshot.Weekly[WeeklyBucketCount-1].Count)
	assert.Equal(t, snapshot.Weekly[WeeklyBucketCount-1].Count, snapshot.Monthly[MonthlyBucketCount-1].Count)
	assert.Len(t, snapshot.RecentPosts, 1)
}

func TestCachedDashboardRequiresNow(t *testing.T) {
	inner := &countingDashboard{}
	cache := newMemoryCache()
	dashboard := NewCachedDashboard(inner, cache, time.Minute)

	snapshot, err := dashboard.ComputeSnapshot(context.Background(), &entity.SnapshotRequest{})
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, usecase.ErrInvalidRequest)
	assert.Zero(t, inner.calls())
	assert.Empty(t, cache.keys())
}
