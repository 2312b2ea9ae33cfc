package connector

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// GetRedisConnector принимает адрес вида redis://[:password@]host:port/db
func GetRedisConnector(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
