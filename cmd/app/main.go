package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ordering/cmd"
	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/in/http/idempotency"
	"ordering/internal/adapters/out/inventory"
	"ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/postgres/migrations"
	"ordering/internal/core/ports"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	if err := migrations.Up(configs.MigrationsURL()); err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	publisher, closePublisher := newEventPublisher(configs, logger)
	defer closePublisher()

	app, err := cmd.NewCompositionRoot(configs, gormDB, publisher, newStockChecker(configs, logger), logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		log.Fatalf("Error creating jobs: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	store, closeStore := newIdempotencyStore(configs, logger)
	defer closeStore()

	router, err := httpin.NewRouter(httpin.RouterConfig{
		Server:      httpin.NewServer(app.HTTPHandlers(), logger),
		Idempotency: store,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("Error building router: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("HTTP server listening", "port", configs.HTTPPort)
		if err := router.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return router.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		router.Logger.Error(err)
	}
	logger.Info("HTTP server stopped")
}

func newEventPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if len(configs.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_HOST is not set, domain events will not be published")
		return nil, func() {}
	}

	publisher, err := kafka.NewEventPublisher(kafka.NewWriter(configs.KafkaBrokers), configs.KafkaOrderEventsTopic, logger)
	if err != nil {
		log.Fatalf("Error creating event publisher: %v", err)
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("failed to close kafka writer", "error", err)
		}
	}
}

func newStockChecker(configs cmd.Config, logger *slog.Logger) ports.StockChecker {
	if configs.InventoryBaseURL == "" {
		return nil
	}

	cfg := inventory.DefaultConfig(configs.InventoryBaseURL)
	cfg.Timeout = configs.InventoryTimeout
	cfg.ConsecutiveFailures = configs.InventoryBreakerFailures
	cfg.OpenTimeout = configs.InventoryBreakerOpenTimeout

	client, err := inventory.NewStockClient(cfg, logger)
	if err != nil {
		log.Fatalf("Error creating inventory client: %v", err)
	}
	return client
}

func newIdempotencyStore(configs cmd.Config, logger *slog.Logger) (*idempotency.Store, func()) {
	if configs.RedisAddr == "" {
		logger.Warn("REDIS_ADDR is not set, checkout retries are not deduplicated")
		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})

	store, err := idempotency.NewStore(client, configs.IdempotencyTTL, time.Minute)
	if err != nil {
		log.Fatalf("Error creating idempotency store: %v", err)
	}
	return store, func() { _ = client.Close() }
}
