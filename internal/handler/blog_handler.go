package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"blogfront/internal/client"
	"blogfront/internal/models"

	"github.com/gorilla/mux"
)

type CreateBlogRequest struct {
	Title       string   `json:"title" validate:"required"`
	Category    []string `json:"category" validate:"dive,max=64"`
	Description string   `json:"description" validate:"required"`
	CoverImage  string   `json:"coverImage" validate:"required,uri"`
	Content     string   `json:"content" validate:"required"`
}

func (h *Handlers) GetBlogs(w http.ResponseWriter, r *http.Request) {
	posts, err := h.BlogService.ListBlogs(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, posts, http.StatusOK)
}

func (h *Handlers) GetBlog(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	post, err := h.BlogService.GetBlog(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteError(w, "Неверные данные: "+err.Error(), http.StatusBadRequest)
		return
	}

	// date is stamped by the client at submission
	post, err := h.BlogService.CreateBlog(r.Context(), models.NewPost{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Content:     req.Content,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

// writeServiceError maps client error kinds to gateway statuses
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, client.ErrNotFound):
		WriteError(w, "Блог не найден", http.StatusNotFound)
	case errors.Is(err, client.ErrInvalidPayload), errors.Is(err, client.ErrInvalidArgument):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, client.ErrTransport), errors.Is(err, client.ErrServiceUnavailable):
		log.Printf("content service unavailable: %v", err)
		WriteError(w, "Сервис контента недоступен, попробуйте позже", http.StatusServiceUnavailable)
	case errors.Is(err, client.ErrDecode), errors.Is(err, client.ErrUnexpectedStatus):
		log.Printf("content service bad response: %v", err)
		WriteError(w, "Некорректный ответ сервиса контента", http.StatusBadGateway)
	default:
		log.Printf("internal error: %v", err)
		WriteError(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
