package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/pkg/retry"
)

const publishTimeout = 10 * time.Second

// EventPublisher отправляет события изменения контента в фоне, не задерживая ответ клиенту.
// Один экземпляр разделяется всеми сервисами, Close дожидается недоотправленных событий.
// Если репозиторий событий не задан, события не отправляются.
type EventPublisher struct {
	repo    repo.ContentEventRepository
	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

func NewEventPublisher(eventRepo repo.ContentEventRepository) *EventPublisher {
	return &EventPublisher{repo: eventRepo}
}

func (e *EventPublisher) publish(ctx context.Context, eventType entity.ContentEventType, entityID int) {
	if e == nil || e.repo == nil {
		return
	}
	event := &entity.ContentEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: time.Now(),
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		log.Warnf("Событие %s для %d не отправлено: публикация остановлена", eventType, entityID)
		return
	}
	e.pending.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.pending.Done()

		// запрос может завершиться раньше, чем событие уйдёт в Kafka
		publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()

		err := retry.RetryContext(publishCtx, func() error {
			return e.repo.PublishContentEvent(publishCtx, event)
		})
		if err != nil {
			log.Errorf("Не удалось отправить событие %s для %d: %v", eventType, entityID, err)
			return
		}
		contentEventsPublished.WithLabelValues(string(eventType)).Inc()
	}()
}

// wait дожидается отправки всех событий
func (e *EventPublisher) wait() {
	if e == nil {
		return
	}
	e.pending.Wait()
}

// Close перестаёт принимать новые события и ждёт отправки уже начатых.
// Репозиторий событий закрывается вызывающей стороной после Close.
func (e *EventPublisher) Close() {
	if e == nil {
		return
	}
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
	e.wait()
}
