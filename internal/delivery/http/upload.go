package http

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cms-backend/internal/delivery/http/utils"
	"cms-backend/internal/entity"
	"cms-backend/internal/usecase"
)

type Upload struct {
	uploadUseCase usecase.Upload
	authManager   utils.Auth
}

func NewUpload(uploadUseCase usecase.Upload, authManager utils.Auth) *Upload {
	return &Upload{
		uploadUseCase: uploadUseCase,
		authManager:   authManager,
	}
}

func (u *Upload) Configure(server *echo.Group) {
	server.POST("", u.Upload)
}

func (u *Upload) ConfigureMedia(server *echo.Group) {
	server.GET("/:id", u.GetMedia)
}

func (u *Upload) Upload(c echo.Context) error {
	userID, err := u.authManager.CheckAuthFromContext(c)
	if err != nil {
		return respondError(c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Файл не найден: " + err.Error(),
		})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Ошибка чтения файла: " + err.Error(),
		})
	}
	defer func() { _ = src.Close() }()

	fileID, err := u.uploadUseCase.UploadImage(c.Request().Context(), &entity.Upload{
		UserID:   userID,
		FilePath: file.Filename,
		RawBytes: src,
		Size:     file.Size,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"file_id": fileID,
		"url":     "/media/" + strconv.Itoa(fileID),
	})
}

func (u *Upload) GetMedia(c echo.Context) error {
	fileID, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Неверный идентификатор файла",
		})
	}
	upload, err := u.uploadUseCase.GetUpload(c.Request().Context(), fileID)
	if err != nil {
		return respondError(c, err)
	}
	if closer, ok := upload.RawBytes.(io.Closer); ok {
		defer func() { _ = closer.Close() }()
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Stream(http.StatusOK, upload.FileType, upload.RawBytes)
}
