package service

import (
	"context"
	"errors"
	"log"
	"strings"

	"blogfront/internal/cache"
	"blogfront/internal/client"
	"blogfront/internal/models"
)

type BlogService interface {
	ListBlogs(ctx context.Context) ([]models.Post, error)
	GetBlog(ctx context.Context, id string) (*models.Post, error)
	CreateBlog(ctx context.Context, req models.NewPost) (*models.Post, error)
}

type blogService struct {
	client client.ContentService
	cache  cache.QueryCache
}

func NewBlogService(contentClient client.ContentService, queryCache cache.QueryCache) BlogService {
	return &blogService{
		client: contentClient,
		cache:  queryCache,
	}
}

func (s *blogService) ListBlogs(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if s.cached(ctx, cache.ListKey, &posts) {
		return posts, nil
	}

	posts, err := s.client.List(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, cache.ListKey, posts)
	return posts, nil
}

func (s *blogService) GetBlog(ctx context.Context, id string) (*models.Post, error) {
	key := cache.PostKey(id)

	var post models.Post
	if id != "" && s.cached(ctx, key, &post) {
		return &post, nil
	}

	fetched, err := s.client.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.store(ctx, key, fetched)
	return fetched, nil
}

// CreateBlog creates the post and drops the cached listing so the next
// ListBlogs refetches it. Cached single posts stay as they are.
func (s *blogService) CreateBlog(ctx context.Context, req models.NewPost) (*models.Post, error) {
	req.Category = NormalizeCategories(req.Category)

	post, err := s.client.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, cache.ListKey); err != nil {
			log.Printf("Предупреждение: не удалось сбросить кэш списка: %v", err)
		}
	}

	return post, nil
}

// NormalizeCategories trims tags and drops empty ones; order and duplicates are kept
func NormalizeCategories(category []string) []string {
	out := make([]string, 0, len(category))
	for _, c := range category {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (s *blogService) cached(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}

	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Printf("Предупреждение: ошибка чтения кэша, идем в сервис: %v", err)
		return false
	}
	return found
}

func (s *blogService) store(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, key, value); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Предупреждение: ошибка записи кэша: %v", err)
	}
}
