package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"blogfront/internal/models"
	"blogfront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingRepo fails every call
type failingRepo struct{}

func (failingRepo) List(ctx context.Context) ([]models.Post, error) {
	return nil, errors.New("db down")
}

func (failingRepo) GetByID(ctx context.Context, id string) (*models.Post, error) {
	return nil, errors.New("db down")
}

func (failingRepo) Create(ctx context.Context, post *models.Post) error {
	return errors.New("db down")
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const validPost = `{"title":"t","category":["go"],"description":"d","date":"2024-03-05T07:20:30.123Z","coverImage":"https://img.example/c.png","content":"c"}`

func TestBackend_CreateThenRead(t *testing.T) {
	router := NewRouter(repository.NewMemoryBlogRepository())

	rec := serve(router, http.MethodPost, "/blogs", validPost)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2024-03-05T07:20:30.123Z", created.Date)

	rec = serve(router, http.MethodGet, "/blogs/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created, got)

	rec = serve(router, http.MethodGet, "/blogs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []models.Post{created}, list)
}

func TestBackend_EmptyList(t *testing.T) {
	rec := serve(NewRouter(repository.NewMemoryBlogRepository()), http.MethodGet, "/blogs", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestBackend_Errors(t *testing.T) {
	t.Run("блог не найден", func(t *testing.T) {
		rec := serve(NewRouter(repository.NewMemoryBlogRepository()), http.MethodGet, "/blogs/missing", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Блог не найден")
	})

	t.Run("битый JSON", func(t *testing.T) {
		rec := serve(NewRouter(repository.NewMemoryBlogRepository()), http.MethodPost, "/blogs", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("нет обязательных полей", func(t *testing.T) {
		rec := serve(NewRouter(repository.NewMemoryBlogRepository()), http.MethodPost, "/blogs", `{"title":"t"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("клиентский id игнорируется", func(t *testing.T) {
		router := NewRouter(repository.NewMemoryBlogRepository())
		body := `{"id":"mine","title":"t","description":"d","coverImage":"https://img.example/c.png","content":"c"}`

		rec := serve(router, http.MethodPost, "/blogs", body)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created models.Post
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.NotEqual(t, "mine", created.ID)
		assert.Equal(t, []string{}, created.Category)
	})

	t.Run("ошибки хранилища", func(t *testing.T) {
		router := NewRouter(failingRepo{})

		assert.Equal(t, http.StatusInternalServerError, serve(router, http.MethodGet, "/blogs", "").Code)
		assert.Equal(t, http.StatusInternalServerError, serve(router, http.MethodGet, "/blogs/1", "").Code)
		assert.Equal(t, http.StatusInternalServerError, serve(router, http.MethodPost, "/blogs", validPost).Code)
	})
}

func TestBackend_JSONFallbacks(t *testing.T) {
	router := NewRouter(repository.NewMemoryBlogRepository())

	t.Run("неизвестный путь", func(t *testing.T) {
		rec := serve(router, http.MethodGet, "/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `"error"`)
	})

	t.Run("неверный метод", func(t *testing.T) {
		rec := serve(router, http.MethodDelete, "/blogs", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), `"error"`)
	})
}
