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

	"github.com/varunrevoori/harmony/internal/api"
	"github.com/varunrevoori/harmony/internal/appointment"
	"github.com/varunrevoori/harmony/internal/audit"
	"github.com/varunrevoori/harmony/internal/availability"
	"github.com/varunrevoori/harmony/internal/config"
	"github.com/varunrevoori/harmony/internal/db"
	"github.com/varunrevoori/harmony/internal/notify"
	redisclient "github.com/varunrevoori/harmony/internal/redis"
)

const version = "1.0.0"

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "api-server").Logger()
	log.Info().Msg("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}
	if cfg.Env == "dev" {
		log = log.Level(zerolog.DebugLevel)
	}

	log.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("configured")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect Postgres
	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	log.Info().Msg("connected to Postgres")

	// Connect Redis
	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis")
		}
	}()
	log.Info().Msg("connected to Redis")

	auditor := audit.NewDispatcher(pgPool, 256, log.With().Str("component", "audit").Logger())
	defer auditor.Close()

	queue := notify.NewRedisQueue(rdb, cfg.NotifyQueueKey)
	locker := redisclient.NewRedisLocker(rdb, cfg.LockTTL)

	rules := availability.NewService(availability.NewPgRepository(pgPool), log.With().Str("component", "availability").Logger())
	appts := appointment.NewService(
		appointment.NewPgRepository(pgPool),
		rules,
		locker,
		queue,
		auditor,
		cfg,
		log.With().Str("component", "appointment").Logger(),
	)

	router := api.NewRouter(api.RouterConfig{
		Appointments: appts,
		Availability: rules,
		PgPool:       pgPool,
		Redis:        rdb,
		JWTSecret:    cfg.JWTSecret,
		Env:          cfg.Env,
		Version:      version,
		Log:          log.With().Str("component", "http").Logger(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
