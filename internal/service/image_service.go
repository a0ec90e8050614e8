package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogfront/internal/models"
	"blogfront/internal/storage"
)

var (
	ErrStorageDisabled = errors.New("хранилище обложек не настроено")
	ErrInvalidObject   = errors.New("неверное имя объекта")
)

type ImageService interface {
	UploadCover(ctx context.Context, upload storage.CoverUpload) (*models.Cover, error)
	DeleteCover(ctx context.Context, objectName string) error
}

type imageService struct {
	storage storage.Storage
}

func NewImageService(store storage.Storage) ImageService {
	return &imageService{storage: store}
}

func (s *imageService) UploadCover(ctx context.Context, upload storage.CoverUpload) (*models.Cover, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	objectName, url, err := s.storage.UploadCover(ctx, upload)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки обложки: %w", err)
	}

	return &models.Cover{ObjectName: objectName, URL: url}, nil
}

// DeleteCover removes an uploaded cover that was discarded before the post was created
func (s *imageService) DeleteCover(ctx context.Context, objectName string) error {
	if s.storage == nil {
		return ErrStorageDisabled
	}

	if !strings.HasPrefix(objectName, "covers/") || strings.Contains(objectName, "..") {
		return ErrInvalidObject
	}

	if err := s.storage.DeleteCover(ctx, objectName); err != nil {
		return fmt.Errorf("ошибка удаления обложки: %w", err)
	}

	return nil
}
