package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fekuna/ammodeals-service/config"
	"github.com/fekuna/ammodeals-service/internal/listing/handler"
	"github.com/fekuna/ammodeals-service/internal/listing/usecase"
	"github.com/fekuna/ammodeals-service/pkg/cache"
	"github.com/fekuna/ammodeals-service/pkg/logger"
	"github.com/fekuna/ammodeals-service/pkg/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ListingServiceName is the service name reported through grpc.health.v1.
const ListingServiceName = "ammodeals.listing.v1.ListingService"

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the comparison page, JSON API and gRPC health",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		httpLis, err := net.Listen("tcp", config.NormalizePort(cfg.Server.HTTPPort))
		if err != nil {
			appLogger.Fatal("failed to listen", zap.String("port", cfg.Server.HTTPPort), zap.Error(err))
		}
		grpcLis, err := net.Listen("tcp", config.NormalizePort(cfg.Server.GRPCPort))
		if err != nil {
			appLogger.Fatal("failed to listen", zap.String("port", cfg.Server.GRPCPort), zap.Error(err))
		}

		return serve(ctx, cfg, appLogger, httpLis, grpcLis)
	},
}

func newGRPCServer(log logger.ZapLogger) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(middleware.ContextInterceptor(log)),
	)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return grpcServer, healthServer
}

// serve runs both listeners until ctx is cancelled, then drains them.
func serve(ctx context.Context, cfg *config.Config, log logger.ZapLogger, httpLis, grpcLis net.Listener) error {
	// 1. Load Catalog
	repo, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		log.Fatal("Could not load catalog", zap.String("source", cfg.Catalog.Source), zap.Error(err))
	}
	log.Info("Catalog loaded", zap.Int("listings", repo.Len()), zap.String("version", repo.Version()))

	// 2. Initialize Redis
	var viewCache usecase.ViewCache
	var redisClient *cache.RedisClient
	if cfg.Redis.Enabled {
		redisClient, err = connectRedis(ctx, cfg)
		if err != nil {
			log.Warn("Could not connect to Redis, serving without view cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			viewCache = redisClient
			log.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 3. Initialize UseCase and Handler
	listingUC := usecase.NewListingUseCase(repo, viewCache, cfg.Catalog.Calibers, log)
	listingHandler := handler.NewListingHandler(listingUC, log)

	// 4. Start gRPC Server
	grpcServer, healthServer := newGRPCServer(log)
	healthServer.SetServingStatus(ListingServiceName, healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	errCh := make(chan error, 2)
	go func() {
		log.Info("Starting gRPC server", zap.String("addr", grpcLis.Addr().String()))
		if err := grpcServer.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
	}()

	// 5. Start HTTP Server
	app := handler.NewFiberApp(listingHandler, log)
	go func() {
		log.Info("Starting HTTP server", zap.String("addr", httpLis.Addr().String()))
		if err := app.Listener(httpLis); err != nil {
			errCh <- err
		}
	}()

	// 6. Graceful Shutdown
	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		log.Error("server failed", zap.Error(serveErr))
	}

	log.Info("Shutting down server...")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("HTTP shutdown failed", zap.Error(err))
	}
	grpcServer.GracefulStop()

	if redisClient != nil {
		stats := redisClient.Stats()
		log.Info("View cache stats",
			zap.Uint64("hits", stats.Hits),
			zap.Uint64("misses", stats.Misses),
			zap.Float64("hit_rate", stats.HitRate))
	}

	log.Info("Server stopped")
	return serveErr
}
