package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cms-backend/internal/delivery/http/utils"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
)

// respondError переводит ошибки сервисов в JSON-ответ с подходящим статусом
func respondError(c echo.Context, err error) error {
	status, message := http.StatusInternalServerError, "Произошла непредвиденная ошибка"
	switch {
	case errors.Is(err, utils.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Пользователь не авторизован"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Неверный логин или пароль"
	case errors.Is(err, usecase.ErrUserForbidden):
		status, message = http.StatusForbidden, "Недостаточно прав для выполнения действия"
	case errors.Is(err, usecase.ErrInvalidRequest):
		status, message = http.StatusBadRequest, "Неверный формат запроса"
	case errors.Is(err, usecase.ErrUnsupportedMediaType):
		status, message = http.StatusUnsupportedMediaType, "Можно загружать только изображения"
	case errors.Is(err, repo.ErrPostNotFound):
		status, message = http.StatusNotFound, "Пост не найден"
	case errors.Is(err, repo.ErrCategoryNotFound):
		status, message = http.StatusNotFound, "Категория не найдена"
	case errors.Is(err, repo.ErrPageNotFound):
		status, message = http.StatusNotFound, "Страница не найдена"
	case errors.Is(err, repo.ErrCommentNotFound):
		status, message = http.StatusNotFound, "Комментарий не найден"
	case errors.Is(err, repo.ErrUserNotFound):
		status, message = http.StatusNotFound, "Пользователь не найден"
	case errors.Is(err, repo.ErrUploadNotFound):
		status, message = http.StatusNotFound, "Файл не найден"
	case errors.Is(err, repo.ErrSlugExists):
		status, message = http.StatusConflict, "Запись с таким slug уже существует"
	case errors.Is(err, repo.ErrCategoryExists):
		status, message = http.StatusConflict, "Категория с таким именем уже существует"
	case errors.Is(err, repo.ErrUsernameExists):
		status, message = http.StatusConflict, "Пользователь с таким логином уже существует"
	default:
		c.Logger().Errorf("Ошибка обработки запроса %s %s: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(status, echo.Map{
		"error": message,
	})
}

// badRequest отвечает 400. Для ошибок валидации в ответ попадают поля, которые её не прошли
func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error": utils.ValidationMessage(err),
	})
}

func paramID(c echo.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
