package service

import (
	"context"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
)

type Settings struct {
	settingsRepo repo.Settings
	events       *EventPublisher
}

func NewSettings(settingsRepo repo.Settings, events *EventPublisher) usecase.Settings {
	return &Settings{
		settingsRepo: settingsRepo,
		events:       events,
	}
}

func (s *Settings) GetSettings(ctx context.Context) (*entity.SiteSettings, error) {
	return s.settingsRepo.GetSettings(ctx)
}

func (s *Settings) UpdateSettings(ctx context.Context, userID int, settings *entity.SiteSettings) (*entity.SiteSettings, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.PutSettings(ctx, settings); err != nil {
		return nil, err
	}
	s.events.publish(ctx, entity.SettingsModified, 1)
	return s.settingsRepo.GetSettings(ctx)
}
