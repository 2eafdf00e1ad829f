package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/varunrevoori/harmony/internal/config"
	"github.com/varunrevoori/harmony/internal/notify"
	redisclient "github.com/varunrevoori/harmony/internal/redis"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "email-worker").Logger()
	log.Info().Msg("email-worker starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load error")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("queue", cfg.NotifyQueueKey).
		Str("smtp_host", cfg.SMTPHost).
		Msg("configured")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	consumer := notify.NewConsumer(
		rdb,
		cfg.NotifyQueueKey,
		cfg.NotifyDeadLetterKey,
		cfg.NotifyMaxAttempts,
		cfg.NotifyRetryBackoff,
		mailer,
		log.With().Str("component", "consumer").Logger(),
	)

	if err := consumer.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("consumer stopped")
	}

	log.Info().Msg("email-worker stopped")
}
