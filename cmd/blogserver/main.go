package main

import (
	"fmt"
	"log"

	"blogfront/cmd/app"
	"blogfront/internal/backend"
	"blogfront/internal/config"
	"blogfront/internal/middleware"
)

func main() {
	cfg := config.LoadConfig()

	repo, cleanup := app.Backend(cfg)
	defer cleanup()

	handlerChain := middleware.Chain(
		backend.NewRouter(repo),
		middleware.LoggingMiddleware,
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg.CORSOrigin),
	)

	addr := fmt.Sprintf(":%d", cfg.Backend.Port)
	log.Printf("Сервис контента запущен на %s (хранилище: %s)", addr, cfg.Backend.Storage)

	if err := app.Serve(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
