package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Nabin-web/startrace/internal/api"
	"github.com/Nabin-web/startrace/internal/core/domain"
	"github.com/Nabin-web/startrace/internal/core/service"
	mongodb "github.com/Nabin-web/startrace/internal/infrastructure/db/mongo"
	redisdb "github.com/Nabin-web/startrace/internal/infrastructure/db/redis"
	"github.com/Nabin-web/startrace/internal/infrastructure/storage"
	"github.com/Nabin-web/startrace/internal/pkg/config"
	"github.com/Nabin-web/startrace/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "csv-manager",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := storage.NewLocalStore(cfg.UploadDir).EnsureDir(); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("upload directory unavailable")
	}

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	// Provisioning failures are contained: a startup without the default
	// admin is degraded, not dead.
	seedAdmin(ctx, userRepo, cfg, log)

	e := api.NewRouter(db, rdb, cfg, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}

// seedAdmin creates the default administrator account when it does not
// exist yet.
func seedAdmin(ctx context.Context, repo *mongodb.MongoUserRepository, cfg *config.Config, log zerolog.Logger) {
	if _, err := repo.FindByUsername(ctx, cfg.AdminUsername); err == nil {
		return
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		log.Error().Err(err).Msg("admin seed lookup failed")
		return
	}

	hash, err := service.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Error().Err(err).Msg("admin seed hashing failed")
		return
	}

	_, err = repo.Create(ctx, &domain.User{
		Username:     cfg.AdminUsername,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		// Lost race against a concurrent replica is fine.
		if errors.Is(err, domain.ErrUserExists) {
			return
		}
		log.Error().Err(err).Msg("admin seed failed")
		return
	}

	log.Info().Str("username", cfg.AdminUsername).Msg("default admin created")
}
