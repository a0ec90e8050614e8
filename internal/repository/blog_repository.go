package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogfront/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type BlogRepositoryImpl struct {
	DB *sqlx.DB
}

type blogRow struct {
	ID          string         `db:"id"`
	Title       string         `db:"title"`
	Category    pq.StringArray `db:"category"`
	Description string         `db:"description"`
	Date        string         `db:"date"`
	CoverImage  string         `db:"cover_image"`
	Content     string         `db:"content"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r blogRow) toModel() models.Post {
	return models.Post{
		ID:          r.ID,
		Title:       r.Title,
		Category:    models.CloneCategory(r.Category),
		Description: r.Description,
		Date:        r.Date,
		CoverImage:  r.CoverImage,
		Content:     r.Content,
	}
}

func NewBlogRepository(db *sqlx.DB) *BlogRepositoryImpl {
	return &BlogRepositoryImpl{DB: db}
}

func (r *BlogRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO blogs (id, title, category, description, date, cover_image, content, created_at)
		VALUES (:id, :title, :category, :description, :date, :cover_image, :content, :created_at)
	`

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	post.Category = models.CloneCategory(post.Category)

	row := blogRow{
		ID:          post.ID,
		Title:       post.Title,
		Category:    pq.StringArray(post.Category),
		Description: post.Description,
		Date:        post.Date,
		CoverImage:  post.CoverImage,
		Content:     post.Content,
		CreatedAt:   time.Now(),
	}

	_, err := r.DB.NamedExecContext(ctx, query, row)
	if err != nil {
		return fmt.Errorf("ошибка при создании блога: %w", err)
	}

	return nil
}

func (r *BlogRepositoryImpl) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := `SELECT id, title, category, description, date, cover_image, content, created_at FROM blogs WHERE id = $1`

	var row blogRow
	err := r.DB.GetContext(ctx, &row, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("блог с ID %s: %w", id, ErrBlogNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении блога: %w", err)
	}

	post := row.toModel()
	return &post, nil
}

func (r *BlogRepositoryImpl) List(ctx context.Context) ([]models.Post, error) {
	query := `SELECT id, title, category, description, date, cover_image, content, created_at FROM blogs ORDER BY seq`

	var rows []blogRow
	err := r.DB.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении блогов: %w", err)
	}

	posts := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}

	return posts, nil
}
