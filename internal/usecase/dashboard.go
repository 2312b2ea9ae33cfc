package usecase

import (
	"context"

	"cms-backend/internal/entity"
)

type Dashboard interface {
	// ComputeSnapshot считает снимок аналитики на момент req.Now. Хранилище только читается.
	ComputeSnapshot(ctx context.Context, req *entity.SnapshotRequest) (*entity.DashboardSnapshot, error)
}

type CachedDashboard interface {
	Dashboard
	// Invalidate сбрасывает все закэшированные снимки
	Invalidate(ctx context.Context) error
}
