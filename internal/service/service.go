package service

import (
	"blogfront/internal/cache"
	"blogfront/internal/client"
	"blogfront/internal/storage"
)

type Service struct {
	Blog  BlogService
	Image ImageService
}

// NewService wires the gateway use-cases; queryCache and store may be nil
func NewService(contentClient client.ContentService, queryCache cache.QueryCache, store storage.Storage) *Service {
	return &Service{
		Blog:  NewBlogService(contentClient, queryCache),
		Image: NewImageService(store),
	}
}
