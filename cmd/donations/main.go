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

	"github.com/donation-inventory/api/internal/config"
	"github.com/donation-inventory/api/internal/database"
	"github.com/donation-inventory/api/internal/donation/handler"
	"github.com/donation-inventory/api/internal/donation/repository"
	"github.com/donation-inventory/api/internal/donation/service"
	"github.com/donation-inventory/api/internal/storage"
	"github.com/donation-inventory/api/pkg/logger"
	"github.com/donation-inventory/api/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	// initialize logging early; LOG_LEVEL is re-applied once config is loaded
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	if cfg.Server.Environment == "development" {
		logger.SetConsole()
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Infof("config loaded: storage=%s redis=%v rate_limit=%v snapshots=%v", cfg.Storage.Driver, cfg.Redis.Host != "", cfg.RateLimit.Enabled, cfg.MinIO.Enabled())

	logger.Debugf("rate limit: rps=%v burst=%d window=%ds redis=%v", cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.WindowSeconds, cfg.RateLimit.UseRedis)

	ctx := context.Background()
	store, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open %s store: %v", cfg.Storage.Driver, err)
	}
	svc := service.New(store)

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	var snaps handler.Snapshotter
	if cfg.MinIO.Enabled() {
		s, err := storage.NewMinIOStorage(ctx, &cfg.MinIO)
		if err != nil {
			logger.Warnf("snapshot export disabled: %v", err)
		} else {
			snaps = s
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r := newRouter(cfg, svc, rdb, snaps)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("donation API listening on %s (store=%s)", srv.Addr, store.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Infof("received %s, shutting down", sig)
	case err := <-errCh:
		logger.Errorf("server failed: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Errorf("closing %s store: %v", store.Name(), err)
	}
	logger.Info("bye")
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQL:
		db, err := database.OpenSQL(cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return repository.NewSQLRepo(ctx, db)
	case config.DriverMongo:
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, func(attempt int, err error) {
			logger.Warnf("attempt %d/5: failed to connect to MongoDB: %v", attempt, err)
		})
		if err != nil {
			return nil, err
		}
		return repository.NewMongoRepo(ctx, client, cfg.MongoDB.Database)
	case config.DriverMemory:
		logger.Warn("using in-memory donation store; data is lost on restart")
		return repository.NewMemoryRepo(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
