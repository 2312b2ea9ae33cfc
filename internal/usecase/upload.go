package usecase

import (
	"context"

	"cms-backend/internal/entity"
)

type Upload interface {
	// UploadImage сохраняет изображение и возвращает его айди. Файлы других типов отклоняются
	UploadImage(ctx context.Context, upload *entity.Upload) (int, error)
	// GetUpload возвращает файл по его айди
	GetUpload(ctx context.Context, id int) (*entity.Upload, error)
}
