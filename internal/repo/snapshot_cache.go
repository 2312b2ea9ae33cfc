package repo

import (
	"context"
	"errors"
	"time"

	"cms-backend/internal/entity"
)

type SnapshotCache interface {
	// GetSnapshot возвращает снимок по ключу или ErrSnapshotCacheMiss
	GetSnapshot(ctx context.Context, key string) (*entity.DashboardSnapshot, error)
	// PutSnapshot сохраняет снимок на ttl
	PutSnapshot(ctx context.Context, key string, snapshot *entity.DashboardSnapshot, ttl time.Duration) error
	// Invalidate удаляет все сохранённые снимки
	Invalidate(ctx context.Context) error
}

var (
	ErrSnapshotCacheMiss = errors.New("snapshot cache miss")
)
