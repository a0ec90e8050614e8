package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"blogfront/internal/cache"
	"blogfront/internal/client"
	"blogfront/internal/config"
	"blogfront/internal/database"
	"blogfront/internal/repository"
	"blogfront/internal/service"
	"blogfront/internal/storage"
)

const contentTimeout = 10 * time.Second

// App wires the gateway; the returned func releases external connections
func App(ctx context.Context, cfg *config.Config) (*service.Service, func()) {
	// content service client
	contentClient, err := client.New(cfg.ServiceBaseURL,
		client.WithHTTPClient(&http.Client{Timeout: contentTimeout}))
	if err != nil {
		log.Fatalf("Неверный адрес сервиса контента: %v", err)
	}

	var closers []func() error

	// query cache
	var queryCache cache.QueryCache = cache.NewMemoryCache(cfg.Redis.TTL)
	if cfg.Redis.URL != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Printf("Warning: Redis недоступен (%v), используем кэш в памяти", err)
		} else {
			redisCache := cache.NewRedisCache(redisClient, cfg.Redis.TTL)
			queryCache = redisCache
			closers = append(closers, redisCache.Close)
		}
	}

	// connection MinIO
	var store storage.Storage
	if cfg.MinIO.Enabled {
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			log.Fatalf("Не удалось инициализировать MinIO: %v", err)
		}
		store = minioClient
	}

	services := service.NewService(contentClient, queryCache, store)

	return services, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.Printf("close: %v", err)
			}
		}
	}
}

// Backend opens the storage of the development content service
func Backend(cfg *config.Config) (repository.BlogRepository, func()) {
	if cfg.Backend.Storage != config.StoragePostgres {
		return repository.NewMemoryRepository().Blog, func() {}
	}

	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	repo := repository.NewRepository(db.DB)

	return repo.Blog, func() {
		if err := db.CloseDB(); err != nil {
			log.Printf("close db: %v", err)
		}
	}
}
