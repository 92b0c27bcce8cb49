package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"events/clock"
	"events/config"
	"events/db"
	"events/pubsub"
	"events/service"
	"events/tracing"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		logrus.WithError(err).Error("Service stopped")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if err := config.LoadEnvFile(); err != nil {
		return fmt.Errorf("could not load .env file: %w", err)
	}

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	log.Init(cfg.Level())
	logger := log.FromContext(ctx)

	tracerProvider, err := tracing.ConfigureTraceProvider(cfg.JaegerEndpoint)
	if err != nil {
		return err
	}

	// the API still serves without a database, answering 500 on data endpoints
	var store db.Store
	if cfg.DatabaseURL != "" {
		mongoStore, err := db.Connect(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			logger.WithError(err).Error("Database not available")
		} else {
			defer func() {
				if err := mongoStore.Close(context.Background()); err != nil {
					logger.WithError(err).Error("Could not disconnect from the database")
				}
			}()
			store = mongoStore
		}
	} else {
		logger.Warn("DATABASE_URL not set, running without a database")
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = pubsub.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()
	}

	svc, err := service.New(
		cfg.Addr(),
		store,
		cfg.DatabaseURL != "",
		redisClient,
		tracerProvider,
		clock.NewSystem(),
	)
	if err != nil {
		return err
	}

	return svc.Run(ctx)
}
