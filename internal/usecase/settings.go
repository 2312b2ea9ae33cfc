package usecase

import (
	"context"

	"cms-backend/internal/entity"
)

type Settings interface {
	GetSettings(ctx context.Context) (*entity.SiteSettings, error)
	UpdateSettings(ctx context.Context, userID int, settings *entity.SiteSettings) (*entity.SiteSettings, error)
}
