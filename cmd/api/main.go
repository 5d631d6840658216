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

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/autoschema/internal/config"
	"github.com/octobees/autoschema/internal/database"
	"github.com/octobees/autoschema/internal/handler"
	"github.com/octobees/autoschema/internal/logger"
	middlewarepkg "github.com/octobees/autoschema/internal/middleware"
	"github.com/octobees/autoschema/internal/repository"
	"github.com/octobees/autoschema/internal/router"
	"github.com/octobees/autoschema/internal/schema"
	"github.com/octobees/autoschema/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer closeStore()

	savedRepo := repository.NewKVSavedSchemasRepository(store, repository.WithStoreKey(cfg.StoreKey))

	schemaService := service.NewSchemaService(schema.NewValidator(cfg.DefaultPhoneRegion), log)
	savedService := service.NewSavedSchemaService(savedRepo, schemaService, log)

	if _, err := savedService.Initialize(ctx, cfg.SeedSamples); err != nil {
		log.Fatal("failed to initialize saved schemas", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, router.Handlers{
		Schema: handler.NewSchemaHandler(schemaService),
		Saved:  handler.NewSavedSchemasHandler(savedService),
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("port", cfg.Port), zap.String("store", cfg.StoreBackend))
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

// openStore connects the configured key-value backend and returns a matching close function.
func openStore(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		client, err := database.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisKeyValueStore(client), func() { _ = client.Close() }, nil
	case config.BackendPostgres:
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewPGXKeyValueStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	default:
		return repository.NewMemoryKeyValueStore(), func() {}, nil
	}
}
