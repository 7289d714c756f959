package storage

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ikolcov/masterblog/internal/models"
)

const dateLayout = time.RFC3339

type PostsStorage struct {
	posts     []models.Post
	persister Persister
	logger    *log.Logger
	now       func() time.Time
	mutex     sync.RWMutex
}

type Option func(*PostsStorage)

// WithClock overrides the time source used for date_created and date_modified.
func WithClock(now func() time.Time) Option {
	return func(s *PostsStorage) {
		s.now = now
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *PostsStorage) {
		s.logger = logger
	}
}

// WithPosts seeds the store, bypassing the persister.
func WithPosts(posts []models.Post) Option {
	return func(s *PostsStorage) {
		s.posts = append(make([]models.Post, 0, len(posts)), posts...)
	}
}

// NewPostsStorage returns an empty store. A nil persister keeps posts in
// memory only.
func NewPostsStorage(persister Persister, opts ...Option) *PostsStorage {
	s := &PostsStorage{
		posts:     make([]models.Post, 0),
		persister: persister,
		logger:    log.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PostsStorage) ListPosts() []models.Post {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.snapshot()
}

func (s *PostsStorage) GetPost(postId models.PostID) (models.Post, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	i := s.indexOf(postId)
	if i < 0 {
		return models.Post{}, fmt.Errorf("%w: id %d", models.ErrNotFound, postId)
	}
	return s.posts[i], nil
}

func (s *PostsStorage) AddPost(payload models.Payload) (models.Post, error) {
	if err := payload.CheckRequired(); err != nil {
		return models.Post{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	var post models.Post
	payload.Apply(&post)
	post.Id = s.nextId()
	post.DateCreated = s.now().UTC().Format(dateLayout)
	s.posts = append(s.posts, post)

	return post, nil
}

func (s *PostsStorage) UpdatePost(postId models.PostID, payload models.Payload) (models.Post, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(postId)
	if i < 0 {
		return models.Post{}, fmt.Errorf("%w: id %d", models.ErrNotFound, postId)
	}
	if err := payload.CheckAllowed(); err != nil {
		return models.Post{}, err
	}

	post := s.posts[i]
	payload.Apply(&post)
	post.DateModified = s.now().UTC().Format(dateLayout)
	s.posts[i] = post

	return post, nil
}

func (s *PostsStorage) DeletePost(postId models.PostID) (models.Post, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(postId)
	if i < 0 {
		return models.Post{}, fmt.Errorf("%w: id %d", models.ErrNotFound, postId)
	}
	post := s.posts[i]
	s.posts = append(s.posts[:i], s.posts[i+1:]...)

	return post, nil
}

func (s *PostsStorage) SortedPosts(key string, direction string) ([]models.Post, error) {
	return SortPosts(s.ListPosts(), key, direction)
}

func (s *PostsStorage) Search(field string, term string) ([]models.Post, error) {
	return SearchPosts(s.ListPosts(), field, term)
}

// Load replaces the stored posts with the persisted ones. Persister errors
// are logged and leave the store empty.
func (s *PostsStorage) Load(ctx context.Context) {
	if s.persister == nil {
		return
	}
	posts, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Printf("storage: load failed, starting empty: %v", err)
		posts = nil
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.posts = append(make([]models.Post, 0, len(posts)), posts...)
	s.logger.Printf("storage: loaded %d posts", len(s.posts))
}

// Save flushes the current posts to the persister.
func (s *PostsStorage) Save(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	posts := s.ListPosts()
	if err := s.persister.Save(ctx, posts); err != nil {
		s.logger.Printf("storage: save failed: %v", err)
		return err
	}
	s.logger.Printf("storage: saved %d posts", len(posts))
	return nil
}

func (s *PostsStorage) snapshot() []models.Post {
	return append(make([]models.Post, 0, len(s.posts)), s.posts...)
}

func (s *PostsStorage) indexOf(postId models.PostID) int {
	for i, post := range s.posts {
		if post.Id == postId {
			return i
		}
	}
	return -1
}

func (s *PostsStorage) nextId() models.PostID {
	var maxId models.PostID
	for _, post := range s.posts {
		if post.Id > maxId {
			maxId = post.Id
		}
	}
	return maxId + 1
}
