package repo

import (
	"context"

	"cms-backend/internal/entity"
)

type ContentEventRepository interface {
	PublishContentEvent(ctx context.Context, event *entity.ContentEvent) error
	// SubscribeContentEvents возвращает канал событий, который закрывается при отмене ctx
	SubscribeContentEvents(ctx context.Context, groupID string) (<-chan *entity.ContentEvent, error)
	Close() error
}
