package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
)

const (
	KeyPrefix = "dashboard:"
	scanBatch = 100
)

type SnapshotCache struct {
	client *redis.Client
}

func NewSnapshotCache(client *redis.Client) repo.SnapshotCache {
	return &SnapshotCache{client: client}
}

func (c *SnapshotCache) GetSnapshot(ctx context.Context, key string) (*entity.DashboardSnapshot, error) {
	raw, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, repo.ErrSnapshotCacheMiss
	}
	if err != nil {
		return nil, err
	}
	var snapshot entity.DashboardSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (c *SnapshotCache) PutSnapshot(ctx context.Context, key string, snapshot *entity.DashboardSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, KeyPrefix+key, raw, ttl).Err()
}

func (c *SnapshotCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", scanBatch).Iterator()
	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}
