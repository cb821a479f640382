package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Anilrajput6441/Gema-Assignment/internal/cache"
	"github.com/Anilrajput6441/Gema-Assignment/internal/config"
	"github.com/Anilrajput6441/Gema-Assignment/internal/handlers"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories/jsonfile"
	mongostore "github.com/Anilrajput6441/Gema-Assignment/internal/repositories/mongo"
	"github.com/Anilrajput6441/Gema-Assignment/internal/repositories/postgres"
	"github.com/Anilrajput6441/Gema-Assignment/internal/services"
	"github.com/Anilrajput6441/Gema-Assignment/internal/utils"
	"github.com/Anilrajput6441/Gema-Assignment/internal/validator"
	"github.com/Anilrajput6441/Gema-Assignment/pkg"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "Port to listen on (overrides PORT)")
}

func runServer(ctx context.Context, cfg *config.Config) error {
	logger := utils.NewLogger(cfg.Environment)
	slogger := logger.Slog()

	repo, err := openRepository(ctx, cfg, slogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return fmt.Errorf("create event publisher: %w", err)
	}
	defer publisher.Close()

	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	cacheService := cache.NewNoopCache()
	if redisClient != nil {
		defer redisClient.Close()
		cacheService = cache.NewRedisCache(redisClient, slogger, "report:")
		logger.Info("Redis cache enabled", "ttl", cfg.CacheTTL.String())
	}

	manager := services.NewServiceManager(
		repo,
		publisher,
		cacheService,
		validator.New(),
		slogger,
		serviceOptions(cfg),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	hm := handlers.NewHandlerManager(manager, repo, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.WithCORS(hm.NewEngine(), cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port, "storage", cfg.StorageDriver, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openRepository connects the backend named by STORAGE_DRIVER and prepares its schema
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.Repository, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		store := postgres.NewStore(db)
		if err := store.AutoMigrate(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		logger.Info("Using postgres storage")
		return store, nil

	case config.StorageMongo:
		client, err := pkg.NewMongoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		store := mongostore.NewStore(client, cfg.MongoDatabase)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		logger.Info("Using mongo storage", "database", cfg.MongoDatabase)
		return store, nil

	default:
		store, err := jsonfile.New(cfg.DataDir, logger)
		if err != nil {
			return nil, fmt.Errorf("open data dir: %w", err)
		}
		logger.Info("Using JSON file storage", "dir", cfg.DataDir)
		return store, nil
	}
}
