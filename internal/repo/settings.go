package repo

import (
	"context"

	"cms-backend/internal/entity"
)

type Settings interface {
	// GetSettings возвращает настройки сайта или значения по умолчанию, если их ещё нет
	GetSettings(ctx context.Context) (*entity.SiteSettings, error)
	// PutSettings сохраняет единственную запись настроек
	PutSettings(ctx context.Context, settings *entity.SiteSettings) error
}
