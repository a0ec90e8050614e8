package handlers

import (
	"net/http"

	"blogfront/internal/config"
	"blogfront/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type Handlers struct {
	BlogService  service.BlogService
	ImageService service.ImageService
	Cfg          *config.Config
	Validate     *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		BlogService:  service.Blog,
		ImageService: service.Image,
		Cfg:          config,
		Validate:     validator.New(),
	}
}

// NewRouter registers the gateway routes
func NewRouter(h *Handlers) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/", HomeHandler).Methods(http.MethodGet)
	router.HandleFunc("/health", HealthHandler).Methods(http.MethodGet)

	// registered on the root router so a method mismatch reaches MethodNotAllowedHandler
	router.HandleFunc("/api/blogs", h.GetBlogs).Methods(http.MethodGet)
	router.HandleFunc("/api/blogs", h.CreateBlog).Methods(http.MethodPost)
	router.HandleFunc("/api/blogs/{id}", h.GetBlog).Methods(http.MethodGet)
	router.HandleFunc("/api/covers", h.UploadCover).Methods(http.MethodPost)
	router.HandleFunc("/api/covers/{object:.+}", h.DeleteCover).Methods(http.MethodDelete)

	SetJSONFallbacks(router)
	return router
}

// SetJSONFallbacks answers unknown paths and wrong methods with the JSON error body
func SetJSONFallbacks(router *mux.Router) {
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Метод не поддерживается", http.StatusMethodNotAllowed)
	})
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Не найдено", http.StatusNotFound)
	})
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, MessageResponse{Message: "blogfront API"}, http.StatusOK)
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
