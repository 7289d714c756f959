package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ikolcov/masterblog/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisPersister stores the whole post sequence as one JSON value.
type RedisPersister struct {
	client *redis.Client
	key    string
}

func (p *RedisPersister) Load(ctx context.Context) ([]models.Post, error) {
	result, err := p.client.Get(ctx, p.key).Result()
	if errors.Is(err, redis.Nil) {
		return []models.Post{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", p.key, err)
	}

	var posts []models.Post
	if err := json.Unmarshal([]byte(result), &posts); err != nil {
		return nil, fmt.Errorf("decode redis value %s: %w", p.key, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}

func (p *RedisPersister) Save(ctx context.Context, posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}
	value, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode posts: %w", err)
	}
	if err := p.client.Set(ctx, p.key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", p.key, err)
	}
	return nil
}

func (p *RedisPersister) Close(_ context.Context) error {
	return p.client.Close()
}

func redisKey(key string) string {
	// add a prefix not to collide with other data stored in the same redis
	return "masterblog:" + key
}

func NewRedisPersister(redisUrl string, key string) *RedisPersister {
	client := redis.NewClient(&redis.Options{Addr: redisUrl})
	return &RedisPersister{
		client: client,
		key:    redisKey(key),
	}
}
