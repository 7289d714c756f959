package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/ikolcov/masterblog/internal/models"
)

const DefaultPostsFile = "backend/posts.json"

// FilePersister keeps posts as a pretty-printed JSON array in a single file.
type FilePersister struct {
	path   string
	logger *log.Logger
}

func NewFilePersister(path string, logger *log.Logger) *FilePersister {
	if path == "" {
		path = DefaultPostsFile
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FilePersister{path: path, logger: logger}
}

func (p *FilePersister) Path() string {
	return p.path
}

// Load returns no posts and no error when the file does not exist yet.
func (p *FilePersister) Load(_ context.Context) ([]models.Post, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Printf("storage: file %s not found, returning an empty list", p.path)
		return []models.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}

	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.path, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (p *FilePersister) Save(_ context.Context, posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.MarshalIndent(posts, "", "    ")
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", p.path, err)
	}
	if err := os.WriteFile(p.path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", p.path, err)
	}
	return nil
}

func (p *FilePersister) Close(_ context.Context) error {
	return nil
}
