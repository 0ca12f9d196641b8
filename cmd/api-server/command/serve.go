package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"giphyexplorer/database"
	"giphyexplorer/internal/catalog"
	"giphyexplorer/internal/logging"
	"giphyexplorer/internal/microservices/http-api/middleware"
	"giphyexplorer/internal/microservices/http-api/repository"
	"giphyexplorer/internal/microservices/http-api/router"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Setup structured logging
	logger := logging.New(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database and apply migrations
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("database_close_failed", "error", err.Error())
		}
	}()

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access connection pool: %w", err)
	}

	// Redis is optional, the catalog is queried directly without it
	rdb, err := catalog.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("redis_unavailable_cache_disabled", "error", err.Error())
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}

	gifCatalog := catalog.NewCachedCatalog(catalog.NewClient(cfg, logger), rdb, cfg.CacheDuration(), logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go limiter.Run(ctx, time.Minute)

	engine := router.New(router.Deps{
		Config:   cfg,
		Logger:   logger,
		Users:    repository.NewUserRepository(db),
		Ratings:  repository.NewRatingRepository(db),
		Comments: repository.NewCommentRepository(db),
		Catalog:  gifCatalog,
		DB:       sqlDB,
		Limiter:  limiter,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		logger.Info("starting_http_server", "addr", server.Addr, "env", cfg.GoEnv, "cache", rdb != nil)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err.Error())
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server_stopped_gracefully")
	return nil
}
