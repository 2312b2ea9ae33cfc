package service

import (
	"time"

	"cms-backend/internal/entity"
)

const (
	WeeklyBucketCount  = 7
	MonthlyBucketCount = 6
)

// WeeklyBuckets возвращает 7 суточных интервалов, последний из которых - текущие сутки.
// Границы суток считаются в часовом поясе now.
func WeeklyBuckets(now time.Time) []entity.Bucket {
	y, m, d := now.Date()
	loc := now.Location()

	buckets := make([]entity.Bucket, WeeklyBucketCount)
	for i := range buckets {
		offset := WeeklyBucketCount - 1 - i
		start := time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
		buckets[i] = entity.Bucket{
			Label: start.Format("Mon"),
			Start: start,
			End:   time.Date(y, m, d-offset+1, 0, 0, 0, 0, loc),
		}
	}
	return buckets
}

// MonthlyBuckets возвращает 6 календарных месяцев, последний из которых - текущий.
// Текущий месяц обрезается по now включительно, чтобы незаконченный месяц не считался полным.
func MonthlyBuckets(now time.Time) []entity.Bucket {
	y, m, _ := now.Date()
	loc := now.Location()

	buckets := make([]entity.Bucket, MonthlyBucketCount)
	for i := range buckets {
		// time.Date сама переносит месяц через границу года
		offset := time.Month(MonthlyBucketCount - 1 - i)
		start := time.Date(y, m-offset, 1, 0, 0, 0, 0, loc)
		buckets[i] = entity.Bucket{
			Label: start.Format("Jan"),
			Start: start,
			End:   time.Date(y, m-offset+1, 1, 0, 0, 0, 0, loc),
		}
	}
	last := &buckets[len(buckets)-1]
	last.End = now
	last.EndInclusive = true
	return buckets
}

// bucketFilter возвращает фильтр постов, созданных внутри интервала
func bucketFilter(b entity.Bucket) entity.PostFilter {
	start, end := b.Start, b.End
	filter := entity.PostFilter{CreatedFrom: &start}
	if b.EndInclusive {
		filter.CreatedUntil = &end
	} else {
		filter.CreatedBefore = &end
	}
	return filter
}
