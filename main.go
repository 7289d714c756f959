package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikolcov/masterblog/internal/app"
	"github.com/ikolcov/masterblog/internal/config"
	"github.com/ikolcov/masterblog/internal/storage"
)

func newPersister(ctx context.Context, cfg config.Config, logger *log.Logger) (storage.Persister, error) {
	switch cfg.Backend {
	case config.BackendRedis:
		return storage.NewRedisPersister(cfg.RedisURL, cfg.RedisKey), nil
	case config.BackendMongo:
		return storage.NewMongoPersister(ctx, cfg.MongoURL, cfg.MongoDB)
	case config.BackendMemory:
		return nil, nil
	default:
		return storage.NewFilePersister(cfg.PostsFile, logger), nil
	}
}

func main() {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	persister, err := newPersister(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("storage backend %s: %v", cfg.Backend, err)
	}

	s := storage.NewPostsStorage(persister, storage.WithLogger(logger))
	s.Load(ctx)

	a := app.New(app.AppConfig{
		Port:               cfg.Port,
		CorsAllowedOrigins: cfg.CorsAllowedOrigins,
	}, s, logger)

	go func() {
		if err := a.Start(); err != nil {
			logger.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := a.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown error: %v", err)
	}
	_ = s.Save(shutdownCtx)
	if persister != nil {
		if err := persister.Close(shutdownCtx); err != nil {
			logger.Printf("storage close error: %v", err)
		}
	}
}
