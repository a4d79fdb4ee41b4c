package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library/backend/internal/config"
	"library/backend/internal/httpserver"
	"library/backend/internal/infrastructure/postgres"
	"library/backend/internal/infrastructure/token"
	authusecase "library/backend/internal/usecase/auth"
	bookusecase "library/backend/internal/usecase/book"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rootCtx := context.Background()
	db, err := postgres.New(rootCtx, cfg.DatabaseURL, postgres.PoolSettings{
		MaxConns:        int32(cfg.DBMaxConns),
		MaxConnLifetime: cfg.DBConnLifetime,
		MaxConnIdleTime: cfg.DBConnIdleTime,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	applied, err := db.Migrate(rootCtx)
	if err != nil {
		logger.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}
	logger.Info("database schema ensured", "statements", applied)

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)

	authService := authusecase.NewService(postgres.NewUserRepository(db.Pool), tokenManager)
	bookService := bookusecase.NewService(postgres.NewBookRepository(db.Pool))

	server := httpserver.NewServer(cfg, authService, bookService, logger)
	logger.Info("HTTP server listening", "host", cfg.Host, "addr", server.Addr())
	logger.Info("API docs available", "path", "/api-docs")

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logger.Info("HTTP server closed")
				return
			}
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("graceful shutdown completed")
	}
}
