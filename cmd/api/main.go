package main

import (
	"context"
	"fmt"
	"log"

	"blogfront/cmd/app"
	"blogfront/internal/config"
	handlers "blogfront/internal/handler"
	"blogfront/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	services, cleanup := app.App(context.Background(), cfg)
	defer cleanup()

	handler := handlers.NewHandlers(services, cfg)
	router := handlers.NewRouter(handler)

	handlerChain := middleware.Chain(
		router,
		middleware.LoggingMiddleware,
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware(cfg.CORSOrigin),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	log.Printf("Сервер запущен на %s", addr)
	log.Printf("Сервис контента: %s", cfg.ServiceBaseURL)

	if err := app.Serve(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
