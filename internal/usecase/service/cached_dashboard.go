package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
)

// CachedDashboard хранит снимки в кэше. Время запроса округляется вниз до granularity,
// поэтому все запросы внутри одного окна получают один и тот же снимок.
// Снимок считается на последний момент окна, чтобы все счётчики и бакеты
// видели одни и те же посты, созданные внутри окна.
type CachedDashboard struct {
	dashboard   usecase.Dashboard
	cache       repo.SnapshotCache
	granularity time.Duration
}

func NewCachedDashboard(dashboard usecase.Dashboard, cache repo.SnapshotCache, granularity time.Duration) usecase.CachedDashboard {
	if granularity <= 0 {
		granularity = time.Minute
	}
	return &CachedDashboard{
		dashboard:   dashboard,
		cache:       cache,
		granularity: granularity,
	}
}

func snapshotKey(req entity.SnapshotRequest) string {
	return fmt.Sprintf("%d:%d:%d", req.Now.Unix(), req.RecentLimit, req.TopAuthorsLimit)
}

func (c *CachedDashboard) ComputeSnapshot(ctx context.Context, req *entity.SnapshotRequest) (*entity.DashboardSnapshot, error) {
	params, err := normalizeSnapshotRequest(req)
	if err != nil {
		return nil, err
	}
	params.Now = params.Now.Truncate(c.granularity)
	key := snapshotKey(params)
	params.Now = params.Now.Add(c.granularity - time.Nanosecond)

	snapshot, err := c.cache.GetSnapshot(ctx, key)
	switch {
	case err == nil:
		snapshotCacheTotal.WithLabelValues(cacheHit).Inc()
		return snapshot, nil
	case errors.Is(err, repo.ErrSnapshotCacheMiss):
		snapshotCacheTotal.WithLabelValues(cacheMiss).Inc()
	default:
		snapshotCacheTotal.WithLabelValues(cacheError).Inc()
		log.Errorf("Ошибка чтения снимка дашборда из кэша: %v", err)
	}

	snapshot, err = c.dashboard.ComputeSnapshot(ctx, &params)
	if err != nil {
		return nil, err
	}
	if err := c.cache.PutSnapshot(ctx, key, snapshot, c.granularity); err != nil {
		log.Errorf("Ошибка записи снимка дашборда в кэш: %v", err)
	}
	return snapshot, nil
}

func (c *CachedDashboard) Invalidate(ctx context.Context) error {
	return c.cache.Invalidate(ctx)
}
