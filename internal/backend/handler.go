// Package backend is a development stand-in for the content service.
// It serves GET /blogs, GET /blogs/{id} and POST /blogs.
package backend

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	handlers "blogfront/internal/handler"
	"blogfront/internal/models"
	"blogfront/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type Handler struct {
	Repo     repository.BlogRepository
	Validate *validator.Validate
}

func NewHandler(repo repository.BlogRepository) *Handler {
	return &Handler{
		Repo:     repo,
		Validate: validator.New(),
	}
}

func NewRouter(repo repository.BlogRepository) *mux.Router {
	h := NewHandler(repo)

	router := mux.NewRouter()
	router.HandleFunc("/blogs", h.ListBlogs).Methods(http.MethodGet)
	router.HandleFunc("/blogs", h.CreateBlog).Methods(http.MethodPost)
	router.HandleFunc("/blogs/{id}", h.GetBlog).Methods(http.MethodGet)

	handlers.SetJSONFallbacks(router)
	return router
}

func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Repo.List(r.Context())
	if err != nil {
		log.Printf("list blogs: %v", err)
		handlers.WriteError(w, "Ошибка при получении блогов", http.StatusInternalServerError)
		return
	}

	handlers.WriteJSON(w, posts, http.StatusOK)
}

func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrBlogNotFound) {
			handlers.WriteError(w, "Блог не найден", http.StatusNotFound)
			return
		}
		log.Printf("get blog %s: %v", id, err)
		handlers.WriteError(w, "Ошибка при получении блога", http.StatusInternalServerError)
		return
	}

	handlers.WriteJSON(w, post, http.StatusOK)
}

func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req models.NewPost
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		handlers.WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	// id is always assigned here
	post := req.WithID("")
	if err := h.Repo.Create(r.Context(), &post); err != nil {
		log.Printf("create blog: %v", err)
		handlers.WriteError(w, "Ошибка при создании блога", http.StatusInternalServerError)
		return
	}

	handlers.WriteJSON(w, post, http.StatusCreated)
}
