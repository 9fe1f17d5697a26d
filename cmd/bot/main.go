package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/om1ji/appointment-booking-backend/internal/bookingapi"
	"github.com/om1ji/appointment-booking-backend/internal/bot"
	"github.com/om1ji/appointment-booking-backend/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.LoadBot()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	apiClient := bookingapi.NewClient(cfg.APIBaseURL, cfg.APIToken)

	// Redis is optional; without it the client just skips caching.
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, caching disabled")
		} else {
			apiClient.UseRedisCache(redisClient, cfg.CacheTTL)
		}
	}

	if err := apiClient.HealthCheck(ctx); err != nil {
		logger.Warn().Err(err).Msg("booking api unreachable at startup")
	}

	b, err := bot.New(cfg.BotToken, apiClient, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init bot")
	}

	logger.Info().Msg("bot starting")
	b.Start(ctx)
	logger.Info().Msg("bot stopped")
}
