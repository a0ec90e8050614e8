package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"blogfront/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	insertBlogQuery = `
		INSERT INTO blogs (id, title, category, description, date, cover_image, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectBlogQuery  = `SELECT id, title, category, description, date, cover_image, content, created_at FROM blogs WHERE id = $1`
	selectBlogsQuery = `SELECT id, title, category, description, date, cover_image, content, created_at FROM blogs ORDER BY seq`
)

var blogColumns = []string{"id", "title", "category", "description", "date", "cover_image", "content", "created_at"}

func newMockRepo(t *testing.T) (*BlogRepositoryImpl, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewBlogRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestBlogRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Успешное создание блога", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		post := &models.Post{
			Title:       "Заголовок",
			Category:    []string{"go", "db"},
			Description: "описание",
			Date:        "2024-03-05T07:20:30.123Z",
			CoverImage:  "https://img.example/c.png",
			Content:     "текст",
		}

		mock.ExpectExec(insertBlogQuery).
			WithArgs(
				sqlmock.AnyArg(), // id генерируется в репозитории
				"Заголовок",
				pq.StringArray{"go", "db"},
				"описание",
				"2024-03-05T07:20:30.123Z",
				"https://img.example/c.png",
				"текст",
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, post)

		assert.NoError(t, err)
		assert.NotEmpty(t, post.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пустые категории сохраняются как пустой массив", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		post := &models.Post{ID: "fixed", Title: "t"}

		mock.ExpectExec(insertBlogQuery).
			WithArgs("fixed", "t", pq.StringArray{}, "", "", "", "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.Create(ctx, post)

		assert.NoError(t, err)
		assert.Equal(t, "fixed", post.ID)
		assert.Equal(t, []string{}, post.Category)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectExec(insertBlogQuery).
			WillReturnError(errors.New("duplicate key"))

		err := repo.Create(ctx, &models.Post{Title: "t"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка при создании блога")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBlogRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, 3, 5, 7, 20, 30, 0, time.UTC)

	t.Run("Блог найден", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := sqlmock.NewRows(blogColumns).
			AddRow("42", "Заголовок", "{go,db}", "описание", "2024-03-05T07:20:30.123Z", "https://img.example/c.png", "текст", createdAt)
		mock.ExpectQuery(selectBlogQuery).WithArgs("42").WillReturnRows(rows)

		post, err := repo.GetByID(ctx, "42")

		require.NoError(t, err)
		assert.Equal(t, &models.Post{
			ID:          "42",
			Title:       "Заголовок",
			Category:    []string{"go", "db"},
			Description: "описание",
			Date:        "2024-03-05T07:20:30.123Z",
			CoverImage:  "https://img.example/c.png",
			Content:     "текст",
		}, post)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Блог не найден", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(selectBlogQuery).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		post, err := repo.GetByID(ctx, "missing")

		assert.Nil(t, post)
		assert.ErrorIs(t, err, ErrBlogNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(selectBlogQuery).WithArgs("42").WillReturnError(errors.New("connection reset"))

		post, err := repo.GetByID(ctx, "42")

		assert.Nil(t, post)
		assert.NotErrorIs(t, err, ErrBlogNotFound)
		assert.Contains(t, err.Error(), "ошибка при получении блога")
	})
}

func TestBlogRepository_List(t *testing.T) {
	ctx := context.Background()
	createdAt := time.Date(2024, 3, 5, 7, 20, 30, 0, time.UTC)

	t.Run("Список в порядке вставки", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		rows := sqlmock.NewRows(blogColumns).
			AddRow("1", "first", "{go}", "d", "2024-03-05T07:20:30.123Z", "https://img.example/1.png", "c", createdAt).
			AddRow("2", "second", "{}", "d", "2024-03-06T07:20:30.123Z", "https://img.example/2.png", "c", createdAt)
		mock.ExpectQuery(selectBlogsQuery).WillReturnRows(rows)

		posts, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "1", posts[0].ID)
		assert.Equal(t, []string{"go"}, posts[0].Category)
		assert.Equal(t, "2", posts[1].ID)
		assert.Equal(t, []string{}, posts[1].Category)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пустая таблица", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(selectBlogsQuery).WillReturnRows(sqlmock.NewRows(blogColumns))

		posts, err := repo.List(ctx)

		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		repo, mock := newMockRepo(t)

		mock.ExpectQuery(selectBlogsQuery).WillReturnError(errors.New("connection reset"))

		posts, err := repo.List(ctx)

		assert.Nil(t, posts)
		assert.Contains(t, err.Error(), "ошибка при получении блогов")
	})
}
