package storage

import (
	"context"

	"github.com/ikolcov/masterblog/internal/models"
)

type Storage interface {
	ListPosts() []models.Post
	GetPost(postId models.PostID) (models.Post, error)
	AddPost(payload models.Payload) (models.Post, error)
	UpdatePost(postId models.PostID, payload models.Payload) (models.Post, error)
	DeletePost(postId models.PostID) (models.Post, error)
	SortedPosts(key string, direction string) ([]models.Post, error)
	Search(field string, term string) ([]models.Post, error)
	Save(ctx context.Context) error
}

// Persister moves the whole post sequence to and from durable storage.
type Persister interface {
	Load(ctx context.Context) ([]models.Post, error)
	Save(ctx context.Context, posts []models.Post) error
	Close(ctx context.Context) error
}
