package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cms-backend/internal/delivery/http/utils"
	"cms-backend/internal/entity"
	"cms-backend/internal/usecase"
)

type Settings struct {
	settingsUseCase usecase.Settings
	authManager     utils.Auth
}

func NewSettings(settingsUseCase usecase.Settings, authManager utils.Auth) *Settings {
	return &Settings{
		settingsUseCase: settingsUseCase,
		authManager:     authManager,
	}
}

func (s *Settings) Configure(server *echo.Group) {
	server.GET("", s.GetSettings)
	server.PUT("", s.UpdateSettings)
}

func (s *Settings) GetSettings(c echo.Context) error {
	settings, err := s.settingsUseCase.GetSettings(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (s *Settings) UpdateSettings(c echo.Context) error {
	userID, err := s.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}
	var request entity.SiteSettings
	if err := utils.ReadValidJSON(c, &request); err != nil {
		return badRequest(c, err)
	}
	settings, err := s.settingsUseCase.UpdateSettings(c.Request().Context(), userID, &request)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}
