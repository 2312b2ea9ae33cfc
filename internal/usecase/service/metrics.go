package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cms",
		Subsystem: "dashboard",
		Name:      "snapshot_duration_seconds",
		Help:      "Время вычисления снимка дашборда.",
		Buckets:   prometheus.DefBuckets,
	})
	snapshotCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cms",
		Subsystem: "dashboard",
		Name:      "snapshot_cache_total",
		Help:      "Обращения к кэшу снимков дашборда по результату.",
	}, []string{"result"})
	contentEventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cms",
		Name:      "content_events_published_total",
		Help:      "Опубликованные события изменения контента.",
	}, []string{"type"})
)

const (
	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)
