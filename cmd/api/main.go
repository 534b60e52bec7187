package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/olegk/users-api/internal/adapter/handler"
	"github.com/olegk/users-api/internal/adapter/repository/postgres"
	"github.com/olegk/users-api/internal/infrastructure/config"
	"github.com/olegk/users-api/internal/infrastructure/database"
	"github.com/olegk/users-api/internal/infrastructure/middleware"
	"github.com/olegk/users-api/internal/infrastructure/observability"
	"github.com/olegk/users-api/internal/infrastructure/server"
	"github.com/olegk/users-api/internal/infrastructure/storage"
	"github.com/olegk/users-api/internal/usecase/avatar"
	"github.com/olegk/users-api/internal/usecase/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, cfg.Database.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Repositories
	userRepo := postgres.NewUserRepo(pool)

	// Infrastructure services
	s3Storage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Fatal("failed to create s3 storage", zap.Error(err))
	}
	avatarProcessor := storage.NewAvatarProcessor()

	// Use cases
	userSvc := user.NewService(userRepo)
	avatarSvc := avatar.NewService(userRepo, s3Storage, avatarProcessor)

	// Handlers
	userHandler := handler.NewUserHandler(userSvc)
	avatarHandler := handler.NewAvatarHandler(avatarSvc)

	// Middleware
	apiKey := middleware.NewAPIKeyMiddleware(cfg.Auth.Token)

	// Router
	router := server.NewRouter(server.RouterConfig{
		UserHandler:   userHandler,
		AvatarHandler: avatarHandler,
		APIKey:        apiKey,
		Logger:        logger,
		Environment:   cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.Engine(),
		Logger:       logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
