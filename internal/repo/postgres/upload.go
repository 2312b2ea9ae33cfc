package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jmoiron/sqlx"
	"github.com/minio/minio-go/v7"

	"cms-backend/internal/entity"
	"cms-backend/internal/repo"
)

type Upload struct {
	db          *sqlx.DB
	minioClient *minio.Client
	bucket      string
}

func NewUpload(db *sqlx.DB, minioClient *minio.Client, bucket string) (repo.Upload, error) {
	// Создаем бакет для загрузок, предварительно проверив, что его нет
	ctx := context.TODO()
	exists, err := minioClient.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		err = minioClient.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, err
		}
	}
	return &Upload{
		db:          db,
		minioClient: minioClient,
		bucket:      bucket,
	}, nil
}

func (u *Upload) GetUpload(ctx context.Context, id int) (*entity.Upload, error) {
	// Получаем upload из БД, потом загружаем его из S3
	upload, err := u.GetUploadInfo(ctx, id)
	if err != nil {
		return nil, err
	}
	object, err := u.minioClient.GetObject(ctx, u.bucket, upload.FilePath, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	upload.RawBytes = object
	return upload, nil
}

func (u *Upload) GetUploadInfo(ctx context.Context, id int) (*entity.Upload, error) {
	upload := &entity.Upload{}
	query := `SELECT id, file_path, file_type, COALESCE(uploaded_by_user_id, 0) AS uploaded_by_user_id, created_at FROM mediafile WHERE id = $1`
	err := u.db.GetContext(ctx, upload, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repo.ErrUploadNotFound
	}
	if err != nil {
		return nil, err
	}
	return upload, nil
}

func (u *Upload) UploadFile(ctx context.Context, upload *entity.Upload) (int, error) {
	// Добавляем файл в S3 хранилище и создаём запись в БД
	rawBytes, err := io.ReadAll(upload.RawBytes)
	if err != nil {
		return 0, err
	}
	// тип определяем по содержимому, если сервис его ещё не определил
	if upload.FileType == "" {
		upload.FileType = mimetype.Detect(rawBytes).String()
	}
	_, err = u.minioClient.PutObject(
		ctx,
		u.bucket,
		upload.FilePath,
		bytes.NewReader(rawBytes),
		int64(len(rawBytes)),
		minio.PutObjectOptions{
			ContentType: upload.FileType,
		},
	)
	if err != nil {
		return 0, err
	}

	var uploadID int
	if upload.UserID == 0 {
		query := `INSERT INTO mediafile (file_path, file_type) VALUES ($1, $2) RETURNING id`
		err = u.db.QueryRowxContext(ctx, query, upload.FilePath, upload.FileType).Scan(&uploadID)
	} else {
		query := `INSERT INTO mediafile (file_path, file_type, uploaded_by_user_id) VALUES ($1, $2, $3) RETURNING id`
		err = u.db.QueryRowxContext(ctx, query, upload.FilePath, upload.FileType, upload.UserID).Scan(&uploadID)
	}
	if err != nil {
		return 0, err
	}
	return uploadID, nil
}
