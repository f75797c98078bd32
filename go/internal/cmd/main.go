package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/go/clients/anthropic"
	"github.com/mcdev12/draftroom/go/internal/draft/gateway"
	"github.com/mcdev12/draftroom/go/internal/draft/outbox"
	_ "github.com/mcdev12/draftroom/go/internal/sports/mlb"
	_ "github.com/mcdev12/draftroom/go/internal/sports/nba"
	_ "github.com/mcdev12/draftroom/go/internal/sports/nfl"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded")
	}
	setupLogger()

	config, err := loadConfig(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := setupSports(config); err != nil {
		log.Fatal().Err(err).Msg("failed to set up sports profiles")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, databaseURL, err := setupDatabase(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up database")
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_ADDR", "localhost:6379"),
	})
	defer redisClient.Close()

	var provider *anthropic.Client
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		provider = anthropic.NewClient(anthropic.Config{
			APIKey: apiKey,
			Model:  os.Getenv("ANTHROPIC_MODEL"),
		})
	} else {
		log.Warn().Msg("ANTHROPIC_API_KEY not set, recommendations run on the ADP fallback")
	}

	// Outbox relay: Postgres LISTEN/NOTIFY in, JetStream out.
	jetstreamConfig := outbox.DefaultJetStreamConfig()
	if url := os.Getenv("NATS_URL"); url != "" {
		jetstreamConfig.URL = url
	}
	publisher, err := outbox.NewJetStreamPublisher(jetstreamConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create jetstream publisher")
	}
	defer publisher.Close()

	listenerConfig := outbox.DefaultListenerConfig()
	listenerConfig.DatabaseURL = databaseURL
	listener, err := outbox.NewListener(outbox.NewRepository(pool), publisher, listenerConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create outbox listener")
	}
	go func() {
		if err := listener.Start(ctx); err != nil {
			log.Error().Err(err).Msg("outbox listener stopped")
		}
	}()
	defer listener.Stop()

	// Gateway: fan JetStream events out to WebSocket clients.
	manager := gateway.NewConnectionManager(gateway.DefaultConnectionConfig())
	go manager.Start(ctx)

	consumerConfig := gateway.DefaultConsumerConfig()
	if url := os.Getenv("NATS_URL"); url != "" {
		consumerConfig.URL = url
	}
	consumer, err := gateway.NewEventConsumer(manager, consumerConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create event consumer")
	}
	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("event consumer stopped")
		}
	}()
	defer consumer.Stop()

	services := setupServices(pool, redisClient, provider, manager, config)

	janitor := cron.New()
	if _, err := janitor.AddFunc(config.Janitor.Schedule, func() {
		runCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := services.DraftApp.AbandonIdleDrafts(runCtx, config.IdleWindow()); err != nil {
			log.Error().Err(err).Msg("janitor run failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule janitor")
	}
	janitor.Start()
	defer janitor.Stop()

	srv := setupServer(services, pool, provider)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}

func setupLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if getEnv("LOG_FORMAT", "json") == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
