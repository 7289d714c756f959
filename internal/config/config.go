package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

type Config struct {
	Port               uint16        `envconfig:"SERVER_PORT" default:"5002"`
	Backend            string        `envconfig:"STORAGE_BACKEND" default:"file"`
	PostsFile          string        `envconfig:"POSTS_FILE" default:"backend/posts.json"`
	RedisURL           string        `envconfig:"REDIS_URL" default:"localhost:6379"`
	RedisKey           string        `envconfig:"REDIS_KEY" default:"posts"`
	MongoURL           string        `envconfig:"MONGO_URL" default:"mongodb://localhost:27017"`
	MongoDB            string        `envconfig:"MONGO_DB" default:"masterblog"`
	CorsAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	switch cfg.Backend {
	case BackendFile, BackendRedis, BackendMongo, BackendMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Backend)
	}
	cfg.CorsAllowedOrigins = trimList(cfg.CorsAllowedOrigins)
	if len(cfg.CorsAllowedOrigins) == 0 {
		cfg.CorsAllowedOrigins = []string{"*"}
	}
	return cfg, nil
}

func trimList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if item := strings.TrimSpace(value); item != "" {
			out = append(out, item)
		}
	}
	return out
}
