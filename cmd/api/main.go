package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bookmanager/catalog-api/internal/api"
	"github.com/bookmanager/catalog-api/internal/core/service"
	"github.com/bookmanager/catalog-api/internal/infrastructure/config"
	mongodb "github.com/bookmanager/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookmanager/catalog-api/internal/infrastructure/db/redis"
	"github.com/bookmanager/catalog-api/internal/infrastructure/queue"
	"github.com/bookmanager/catalog-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create user indexes")
	}
	bookRepo := mongodb.NewBookRepository(db)
	if err := bookRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create book indexes")
	}

	var limiter service.LoginLimiter = service.NoLimit{}
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		limiter = redisdb.NewLoginThrottle(rdb, cfg.LoginMaxFailures, cfg.LoginFailureWindow)
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttle disabled")
	}

	auditRepo := mongodb.NewAuditRepository(db)
	audit := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	audit.Start(ctx)

	e := api.NewRouter(api.Deps{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		Limiter: limiter,
		Audit:   audit,
		Log:     log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
