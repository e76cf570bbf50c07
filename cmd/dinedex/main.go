package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/dinedex/internal/app"
	"github.com/kailas-cloud/dinedex/internal/config"
	logpkg "github.com/kailas-cloud/dinedex/internal/logger"
	"github.com/kailas-cloud/dinedex/internal/metrics"
	chiTransport "github.com/kailas-cloud/dinedex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/dinedex/internal/usecase/health"
	"github.com/kailas-cloud/dinedex/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting dinedex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("key_prefix", cfg.Storage.KeyPrefix),
	)

	if err := run(&cfg, logger); err != nil {
		logger.Error("Server exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// run owns the store handle so every exit path closes it.
func run(cfg *config.Config, logger *zap.Logger) error {
	handle := app.LazyStore(cfg.Database)
	defer handle.Close()

	store, err := handle.Get(context.Background())
	if err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	metrics.RegisterHTTPMetrics()
	metrics.RegisterDirectoryMetrics()

	svc, err := app.Build(store, app.Options{
		KeyPrefix:       cfg.Storage.KeyPrefix,
		CacheTTL:        cfg.Cache.RestaurantTTL(),
		DefaultPageSize: cfg.Pagination.DefaultLimit,
		MaxPageSize:     cfg.Pagination.MaxLimit,
		Logger:          logger,
		Instrumented:    true,
	})
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}

	if report := svc.Health.Check(context.Background()); report.Status != healthuc.Healthy {
		logger.Warn("Store is not fully provisioned, run the provision command",
			zap.String("status", string(report.Status)),
			zap.Any("checks", report.Checks),
		)
	}

	server := chiTransport.NewServer(svc.Restaurants, svc.Ratings, svc.Reviews, svc.Cuisines, svc.Health, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
