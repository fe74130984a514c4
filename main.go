// Package main is the entry point for the resourcehub API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/redis/go-redis/v9"

	"resourcehub/src/app/server"
	"resourcehub/src/core/ports"
	"resourcehub/src/core/usecase"
	"resourcehub/src/infra/cache"
	"resourcehub/src/infra/config"
	"resourcehub/src/infra/db"
	"resourcehub/src/infra/logger"
	"resourcehub/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from the settings file and environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
		"storage", cfg.Storage.Driver,
	)

	ctx := context.Background()
	health := usecase.NewHealthService(log)

	store, closeStore, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var resources ports.ResourceRepository = store
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		cached := cache.NewResourceCache(store, client, cfg.Redis.TTL, logger.WithComponent(log, "cache"))
		health.Register("cache", usecase.CheckFunc(cached.Ping))
		resources = cached
		log.Info("redis cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}
	health.Register("storage", store)

	pages := usecase.PageSettings{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	}
	resourceService := usecase.NewResourceService(resources, pages, log)

	// Create and run HTTP server
	srv := server.New(cfg, log, resourceService, health)

	// Run blocks until shutdown signal is received
	return srv.Run()
}

// openStorage builds the configured storage adapter and returns its cleanup func.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (ports.ResourceRepository, func(), error) {
	repoLog := logger.WithComponent(log, "repo")

	switch strings.ToLower(cfg.Storage.Driver) {
	case config.DriverPostgres:
		pg, err := db.New(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		pgRepo := repo.NewPostgresRepository(pg, repoLog)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return pgRepo, pg.Close, nil
	default:
		return repo.NewMemoryRepository(repoLog), func() {}, nil
	}
}
