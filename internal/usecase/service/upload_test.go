package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cms-backend/internal/entity"
	"cms-backend/internal/usecase"
)

type memoryUploads struct {
	uploads []*entity.Upload
	content [][]byte
}

func (m *memoryUploads) GetUpload(_ context.Context, id int) (*entity.Upload, error) {
	upload := m.uploads[id-1]
	upload.RawBytes = bytes.NewReader(m.content[id-1])
	return upload, nil
}

func (m *memoryUploads) GetUploadInfo(_ context.Context, id int) (*entity.Upload, error) {
	return m.uploads[id-1], nil
}

func (m *memoryUploads) UploadFile(_ context.Context, upload *entity.Upload) (int, error) {
	raw, err := io.ReadAll(upload.RawBytes)
	if err != nil {
		return 0, err
	}
	m.uploads = append(m.uploads, upload)
	m.content = append(m.content, raw)
	upload.ID = len(m.uploads)
	return upload.ID, nil
}

// минимальный заголовок PNG, по которому определяется тип
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestUploadImageDetectsType(t *testing.T) {
	uploads := &memoryUploads{}
	service := NewUpload(uploads)

	id, err := service.UploadImage(context.Background(), &entity.Upload{
		UserID:   1,
		FilePath: "обложка поста.jpg",
		FileType: "image/jpeg",
		RawBytes: bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)

	stored := uploads.uploads[id-1]
	assert.Equal(t, "image/png", stored.FileType)
	assert.True(t, strings.HasSuffix(stored.FilePath, ".png"))
	assert.NotContains(t, stored.FilePath, " ")
	assert.Equal(t, int64(len(pngHeader)), stored.Size)
	assert.Equal(t, pngHeader, uploads.content[id-1])
}

func TestUploadImageRejectsNonImages(t *testing.T) {
	service := NewUpload(&memoryUploads{})

	_, err := service.UploadImage(context.Background(), &entity.Upload{
		UserID:   1,
		FilePath: "evil.png",
		RawBytes: strings.NewReader("#!/bin/sh\nrm -rf /\n"),
	})
	assert.ErrorIs(t, err, usecase.ErrUnsupportedMediaType)

	_, err = service.UploadImage(context.Background(), &entity.Upload{FilePath: "a.png", RawBytes: bytes.NewReader(pngHeader)})
	assert.ErrorIs(t, err, usecase.ErrUserForbidden)
}
