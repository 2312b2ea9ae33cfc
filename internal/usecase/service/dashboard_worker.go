package service

import (
	"context"
	"time"

	"github.com/labstack/gommon/log"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
)

const dashboardWorkerGroup = "dashboard-worker"

// DashboardWorker сбрасывает кэш снимков при изменении контента и периодически прогревает его
type DashboardWorker struct {
	dashboard            usecase.CachedDashboard
	events               repo.ContentEventRepository
	workerID             string
	workerUpdateInterval time.Duration
	now                  func() time.Time
}

func NewDashboardWorker(
	dashboard usecase.CachedDashboard,
	events repo.ContentEventRepository,
	workerID string,
	workerUpdateInterval time.Duration,
) *DashboardWorker {
	return &DashboardWorker{
		dashboard:            dashboard,
		events:               events,
		workerID:             workerID,
		workerUpdateInterval: workerUpdateInterval,
		now:                  time.Now,
	}
}

// warmRequests - параметры, с которыми дашборд запрашивают обработчики
func warmRequests(now time.Time) []*entity.SnapshotRequest {
	return []*entity.SnapshotRequest{
		{Now: now, RecentLimit: DefaultRecentLimit, TopAuthorsLimit: DefaultTopAuthorsLimit},
		{Now: now, RecentLimit: AdminRecentLimit, TopAuthorsLimit: DefaultTopAuthorsLimit},
	}
}

func (w *DashboardWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.workerUpdateInterval)
	defer ticker.Stop()

	var events <-chan *entity.ContentEvent
	if w.events != nil {
		ch, err := w.events.SubscribeContentEvents(ctx, dashboardWorkerGroup)
		if err != nil {
			log.Errorf("Не удалось подписаться на события контента, работаем только по таймеру: %v", err)
		} else {
			events = ch
		}
	}

	log.Infof("Запущен воркер дашборда: %s", w.workerID)
	w.warm(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Infof("Остановка воркера дашборда: %s", w.workerID)
			return
		case event, ok := <-events:
			if !ok {
				log.Warnf("Поток событий контента закрыт: %s", w.workerID)
				events = nil
				continue
			}
			w.handleEvent(ctx, event)
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *DashboardWorker) handleEvent(ctx context.Context, event *entity.ContentEvent) {
	log.Debugf("Событие %s (%d), сбрасываем кэш дашборда", event.Type, event.EntityID)
	if err := w.dashboard.Invalidate(ctx); err != nil {
		log.Errorf("Ошибка сброса кэша дашборда: %v", err)
	}
}

func (w *DashboardWorker) warm(ctx context.Context) {
	for _, req := range warmRequests(w.now()) {
		if _, err := w.dashboard.ComputeSnapshot(ctx, req); err != nil {
			log.Errorf("Ошибка прогрева кэша дашборда: %v", err)
			return
		}
	}
}
