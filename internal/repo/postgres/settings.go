package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
)

type Settings struct {
	db *sqlx.DB
}

func NewSettings(db *sqlx.DB) repo.Settings {
	return &Settings{db: db}
}

func (s *Settings) GetSettings(ctx context.Context) (*entity.SiteSettings, error) {
	query := `
		SELECT site_title, site_description, contact_email, social_facebook, social_twitter,
		       social_instagram, social_linkedin, footer_text, logo, favicon
		FROM site_settings
		WHERE id = 1
	`
	var settings entity.SiteSettings
	err := s.db.GetContext(ctx, &settings, query)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.DefaultSiteSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Settings) PutSettings(ctx context.Context, settings *entity.SiteSettings) error {
	// запись всегда одна: при повторном сохранении обновляем существующую
	query := `
		INSERT INTO site_settings (id, site_title, site_description, contact_email, social_facebook,
		                           social_twitter, social_instagram, social_linkedin, footer_text, logo, favicon)
		VALUES (1, :site_title, :site_description, :contact_email, :social_facebook,
		        :social_twitter, :social_instagram, :social_linkedin, :footer_text, :logo, :favicon)
		ON CONFLICT (id) DO UPDATE SET
			site_title = EXCLUDED.site_title,
			site_description = EXCLUDED.site_description,
			contact_email = EXCLUDED.contact_email,
			social_facebook = EXCLUDED.social_facebook,
			social_twitter = EXCLUDED.social_twitter,
			social_instagram = EXCLUDED.social_instagram,
			social_linkedin = EXCLUDED.social_linkedin,
			footer_text = EXCLUDED.footer_text,
			logo = EXCLUDED.logo,
			favicon = EXCLUDED.favicon
	`
	_, err := s.db.NamedExecContext(ctx, query, settings)
	return err
}
