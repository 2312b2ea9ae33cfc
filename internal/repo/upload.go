package repo

import (
	"context"
	"errors"

	"cms-backend/internal/entity"
)

type Upload interface {
	// GetUpload возвращает загрузку по ID, включая файл
	GetUpload(ctx context.Context, id int) (*entity.Upload, error)
	// GetUploadInfo возвращает информацию о загрузке по ID, не включая файл
	GetUploadInfo(ctx context.Context, id int) (*entity.Upload, error)
	// UploadFile загружает файл
	UploadFile(ctx context.Context, upload *entity.Upload) (int, error)
}

var (
	ErrUploadNotFound = errors.New("upload not found")
)
