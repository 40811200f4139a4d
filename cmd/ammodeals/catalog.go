package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/ammodeals-service/config"
	"github.com/fekuna/ammodeals-service/internal/listing/repository"
	"github.com/fekuna/ammodeals-service/internal/listing/seed"
	"github.com/fekuna/ammodeals-service/internal/model"
	"github.com/fekuna/ammodeals-service/pkg/cache"
	"github.com/fekuna/ammodeals-service/pkg/database"
	"github.com/fekuna/ammodeals-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func openDB(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	return database.NewDB(ctx, &database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second,
	})
}

func connectRedis(ctx context.Context, cfg *config.Config) (*cache.RedisClient, error) {
	return cache.NewRedisClient(ctx, &cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   "ammodeals:",
		TTL:      cfg.Redis.TTL,
	})
}

func loadSeed(path string, log logger.ZapLogger) ([]model.Listing, error) {
	if path == "" {
		return seed.Default(log)
	}
	return seed.LoadFile(path, log)
}

// loadCatalog builds the immutable catalog for this process from the
// configured source.
func loadCatalog(ctx context.Context, cfg *config.Config, log logger.ZapLogger) (*repository.MemoryRepository, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceSeed:
		listings, err := loadSeed(cfg.Catalog.SeedFile, log)
		if err != nil {
			return nil, err
		}
		return repository.NewMemoryRepository(listings), nil

	case config.CatalogSourceSQL:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		sqlRepo := repository.NewSQLRepository(db)
		if err := sqlRepo.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate listings: %w", err)
		}
		repo, err := sqlRepo.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		log.Info("Loaded catalog from database",
			zap.String("driver", cfg.Database.Driver),
			zap.Int("listings", repo.Len()))
		return repo, nil
	}

	return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
}
