package main

import (
	"fmt"

	"github.com/fekuna/ammodeals-service/internal/listing/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Import a seed file into the listings table",
	Long: `Validates a YAML seed file (or the built-in sample catalog) and
replaces the contents of the listings table with it in one transaction.
Cached views are dropped when Redis is enabled.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed YAML file (default: built-in sample catalog)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	path := seedFile
	if path == "" {
		path = cfg.Catalog.SeedFile
	}
	listings, err := loadSeed(path, appLogger)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sqlRepo := repository.NewSQLRepository(db)
	if err := sqlRepo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate listings: %w", err)
	}
	if err := sqlRepo.ReplaceAll(ctx, listings); err != nil {
		return err
	}
	appLogger.Info("Seeded listings", zap.Int("listings", len(listings)), zap.String("driver", cfg.Database.Driver))

	if cfg.Redis.Enabled {
		redisClient, err := connectRedis(ctx, cfg)
		if err != nil {
			appLogger.Warn("Could not connect to Redis, cached views kept", zap.Error(err))
		} else {
			defer redisClient.Close()
			n, err := redisClient.DeletePattern(ctx, "listings:view:*")
			if err != nil {
				appLogger.Warn("Failed to drop cached views", zap.Error(err))
			} else {
				appLogger.Info("Dropped cached views", zap.Int("keys", n))
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d listings\n", len(listings))
	return nil
}
