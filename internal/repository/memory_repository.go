package repository

import (
	"context"
	"fmt"
	"sync"

	"blogfront/internal/models"

	"github.com/google/uuid"
)

// MemoryBlogRepository keeps blogs in insertion order for the lifetime of the process.
type MemoryBlogRepository struct {
	mu    sync.RWMutex
	posts []models.Post
	index map[string]int
}

func NewMemoryBlogRepository() *MemoryBlogRepository {
	return &MemoryBlogRepository{
		posts: []models.Post{},
		index: map[string]int{},
	}
}

func (r *MemoryBlogRepository) Create(ctx context.Context, post *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if _, exists := r.index[post.ID]; exists {
		return fmt.Errorf("блог с ID %s уже существует", post.ID)
	}

	post.Category = models.CloneCategory(post.Category)
	r.index[post.ID] = len(r.posts)
	r.posts = append(r.posts, post.Clone())

	return nil
}

func (r *MemoryBlogRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("блог с ID %s: %w", id, ErrBlogNotFound)
	}

	post := r.posts[i].Clone()
	return &post, nil
}

func (r *MemoryBlogRepository) List(ctx context.Context) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, p.Clone())
	}

	return posts, nil
}
