package repository

import (
	"context"
	"errors"

	"blogfront/internal/models"

	"github.com/jmoiron/sqlx"
)

var ErrBlogNotFound = errors.New("блог не найден")

type BlogRepository interface {
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
}

type Repository struct {
	Blog BlogRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Blog: NewBlogRepository(db),
	}
}

func NewMemoryRepository() *Repository {
	return &Repository{
		Blog: NewMemoryBlogRepository(),
	}
}
