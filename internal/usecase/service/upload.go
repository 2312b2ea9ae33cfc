package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
	"cms-backend/internal/usecase"
)

type Upload struct {
	uploadRepo repo.Upload
}

func NewUpload(uploadRepo repo.Upload) usecase.Upload {
	return &Upload{
		uploadRepo: uploadRepo,
	}
}

func (u *Upload) UploadImage(ctx context.Context, upload *entity.Upload) (int, error) {
	if err := requireUser(upload.UserID); err != nil {
		return 0, err
	}
	raw, err := io.ReadAll(upload.RawBytes)
	if err != nil {
		return 0, err
	}

	// тип берём из содержимого файла, заголовкам клиента не доверяем
	mtype := mimetype.Detect(raw)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return 0, usecase.ErrUnsupportedMediaType
	}

	// переводим название файла в base64 (без учета расширения файла) и добавляем к нему префикс uuid,
	// чтобы избежать проблем с кириллицей и пробелами
	name := strings.TrimSuffix(filepath.Base(upload.FilePath), filepath.Ext(upload.FilePath))
	upload.FilePath = fmt.Sprintf(
		"%s_%s%s",
		uuid.New().String(),
		base64.RawURLEncoding.EncodeToString([]byte(name)),
		mtype.Extension(),
	)
	upload.FileType = mtype.String()
	upload.Size = int64(len(raw))
	upload.RawBytes = bytes.NewReader(raw)
	return u.uploadRepo.UploadFile(ctx, upload)
}

func (u *Upload) GetUpload(ctx context.Context, id int) (*entity.Upload, error) {
	return u.uploadRepo.GetUpload(ctx, id)
}
