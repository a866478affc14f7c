package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/petition/internal/config"
	"github.com/JonMunkholm/petition/internal/core"
	"github.com/JonMunkholm/petition/internal/logging"
	"github.com/JonMunkholm/petition/internal/store"
	"github.com/JonMunkholm/petition/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"env", cfg.App.Env,
		"db_max_conns", cfg.Database.MaxConns,
	)

	poolConfig, err := store.PoolConfig(cfg.Database, cfg.App)
	if err != nil {
		slog.Error("invalid database configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := store.Open(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	slog.Info("connected to database",
		"name", store.DatabaseName(cfg.Database.URL),
		"tls", !cfg.App.IsDevelopment(),
	)

	service := core.NewService(store.New(pool))

	server, err := web.NewServer(service, cfg)
	if err != nil {
		slog.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	go store.Watch(watchCtx, pool, cfg.Database.WatchInterval, func(err error) {
		slog.Error("database pool fault, exiting", "error", err)
		pool.Close()
		os.Exit(1)
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		stopWatch()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		stopWatch()
		pool.Close()
		os.Exit(1)
	}
	slog.Info("server stopped")
}
