package connector

import (
	"context"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// GetMinioConnector создает клиент и проверяет, что хранилище отвечает
func GetMinioConnector(ctx context.Context, endpoint string, accessKey string, secretKey string, useSSL bool) (*minio.Client, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if _, err := minioClient.ListBuckets(pingCtx); err != nil {
		return nil, err
	}
	return minioClient, nil
}
