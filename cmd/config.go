package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"ordering/internal/core/domain/services"
	"ordering/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort   string
	LogLevel   slog.Level
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// KafkaBrokers empty disables event publishing.
	KafkaBrokers          []string
	KafkaOrderEventsTopic string

	// RedisAddr empty disables checkout idempotency.
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	IdempotencyTTL time.Duration

	// InventoryBaseURL empty lets every non-empty cart check out.
	InventoryBaseURL            string
	InventoryTimeout            time.Duration
	InventoryBreakerFailures    uint32
	InventoryBreakerOpenTimeout time.Duration

	TransportPolicy services.TransportPolicy

	StaleCartTTL       time.Duration
	StaleCartSchedule  string
	StaleCartBatchSize int
}

// DSN builds the lib/pq style connection string, also accepted by pgx.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// MigrationsURL is the postgres:// form golang-migrate expects.
func (c Config) MigrationsURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after loading envFile when it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	r := envReader{}
	defaults := services.DefaultTransportPolicy()

	cfg := Config{
		HTTPPort:   r.str("HTTP_PORT", "8080"),
		LogLevel:   r.level("LOG_LEVEL", slog.LevelInfo),
		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", "postgres"),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.str("DB_NAME", "ordering"),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		KafkaBrokers:          r.list("KAFKA_HOST"),
		KafkaOrderEventsTopic: r.str("KAFKA_ORDER_EVENTS_TOPIC", "order.events"),

		RedisAddr:      r.str("REDIS_ADDR", ""),
		RedisPassword:  r.str("REDIS_PASSWORD", ""),
		RedisDB:        r.integer("REDIS_DB", 0),
		IdempotencyTTL: r.duration("IDEMPOTENCY_TTL", 24*time.Hour),

		InventoryBaseURL:            r.str("INVENTORY_BASE_URL", ""),
		InventoryTimeout:            r.duration("INVENTORY_TIMEOUT", 2*time.Second),
		InventoryBreakerOpenTimeout: r.duration("INVENTORY_BREAKER_OPEN_TIMEOUT", 30*time.Second),

		TransportPolicy: services.TransportPolicy{
			BikeMaxWeight: r.dec("TRANSPORT_BIKE_MAX_WEIGHT_KG", defaults.BikeMaxWeight),
			CarMaxWeight:  r.dec("TRANSPORT_CAR_MAX_WEIGHT_KG", defaults.CarMaxWeight),
			BikeDuration:  r.duration("TRANSPORT_BIKE_DURATION", defaults.BikeDuration),
			CarDuration:   r.duration("TRANSPORT_CAR_DURATION", defaults.CarDuration),
			TruckDuration: r.duration("TRANSPORT_TRUCK_DURATION", defaults.TruckDuration),
		},

		StaleCartTTL:       r.duration("STALE_CART_TTL", 72*time.Hour),
		StaleCartSchedule:  r.str("STALE_CART_SCHEDULE", jobs.DefaultStaleCartSchedule),
		StaleCartBatchSize: r.integer("STALE_CART_BATCH_SIZE", 100),
	}

	if failures := r.integer("INVENTORY_BREAKER_FAILURES", 5); failures > 0 {
		cfg.InventoryBreakerFailures = uint32(failures) //nolint:gosec // positive, config sized
	} else {
		r.errs = append(r.errs, errors.New("INVENTORY_BREAKER_FAILURES must be positive"))
	}
	if err := cfg.TransportPolicy.Validate(); err != nil {
		r.errs = append(r.errs, err)
	}

	if err := errors.Join(r.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envReader collects parse failures so every bad variable is reported at once.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (r *envReader) list(key string) []string {
	raw := r.str(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (r *envReader) integer(key string, fallback int) int {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (r *envReader) dec(key string, fallback decimal.Decimal) decimal.Decimal {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (r *envReader) level(key string, fallback slog.Level) slog.Level {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return lvl
}
