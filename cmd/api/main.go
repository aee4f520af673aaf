package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/talenthub/jobboard-api/docs"
	"github.com/talenthub/jobboard-api/internal/api"
	"github.com/talenthub/jobboard-api/internal/core/service"
	"github.com/talenthub/jobboard-api/internal/infrastructure/config"
	mongodb "github.com/talenthub/jobboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/talenthub/jobboard-api/internal/infrastructure/db/redis"
	"github.com/talenthub/jobboard-api/internal/infrastructure/queue"
	"github.com/talenthub/jobboard-api/internal/infrastructure/storage"
	"github.com/talenthub/jobboard-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title TalentHub Job Board API
// @version 1.0
// @description Job postings and applications with role-based access control.
// @BasePath /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	authRepo := mongodb.NewAuthRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	appRepo := mongodb.NewApplicationRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":              authRepo.EnsureIndexes,
		"jobs":               jobRepo.EnsureIndexes,
		"applications":       appRepo.EnsureIndexes,
		"jobseeker_profiles": profileRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	resumeStore, err := storage.NewResumeStore(db)
	if err != nil {
		log.Fatal().Err(err).Msg("resume storage init failed")
	}

	auditSink := queue.NewDispatcher(cfg.AuditWorkers, auditRepo, log)
	auditSink.Start(ctx)

	guard := redisdb.NewRequestGuard(rdb)

	svcs := api.Services{
		Auth:        service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL),
		Job:         service.NewJobService(jobRepo, appRepo, guard, auditSink, log),
		Application: service.NewApplicationService(appRepo, jobRepo, resumeStore, auditSink, log),
		Profile:     service.NewProfileService(profileRepo, log),
	}

	e := api.NewRouter(svcs, db, rdb, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
		os.Exit(1)
	}
}
