package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"blogfront/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// CoverUpload is a cover image whose type was detected from its bytes
type CoverUpload struct {
	FileName    string
	ContentType string
	Extension   string
	Size        int64
	Body        io.Reader
}

type Storage interface {
	UploadCover(ctx context.Context, upload CoverUpload) (string, string, error)
	DeleteCover(ctx context.Context, objectName string) error
}

type MinIOClient struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания клиента MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки бакета %s: %w", cfg.BucketName, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("ошибка создания бакета %s: %w", cfg.BucketName, err)
		}
	}

	return &MinIOClient{
		client:    client,
		bucket:    cfg.BucketName,
		publicURL: PublicBaseURL(cfg),
	}, nil
}

// PublicBaseURL is where covers are served from: MINIO_PUBLIC_URL or the endpoint itself
func PublicBaseURL(cfg config.MinIO) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + cfg.Endpoint
}

// CoverObjectName builds covers/<yyyy>/<mm>/<id><ext>; ext comes from the detected type, never the file name
func CoverObjectName(ext string, now time.Time, id string) string {
	return fmt.Sprintf("covers/%d/%02d/%s%s",
		now.Year(),
		now.Month(),
		id,
		strings.ToLower(ext))
}

func CoverURL(baseURL, bucket, objectName string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), bucket, objectName)
}

func (m *MinIOClient) UploadCover(ctx context.Context, upload CoverUpload) (string, string, error) {
	now := time.Now().UTC()
	objectName := CoverObjectName(upload.Extension, now, uuid.New().String())

	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := m.client.PutObject(ctx, m.bucket, objectName, upload.Body, upload.Size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": upload.FileName,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("ошибка загрузки в MinIO: %w", err)
	}

	return objectName, CoverURL(m.publicURL, m.bucket, objectName), nil
}

func (m *MinIOClient) DeleteCover(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("ошибка удаления из MinIO: %w", err)
	}
	return nil
}

var _ Storage = (*MinIOClient)(nil)
