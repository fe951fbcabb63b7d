// Package inventory asks the inventory context whether cart lines can be
// fulfilled. Calls go through a circuit breaker so a failing inventory
// service rejects checkouts quickly instead of piling up requests.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const availabilityPath = "/api/v1/stock/availability"

var _ ports.StockChecker = (*StockClient)(nil)

type Config struct {
	BaseURL string
	Timeout time.Duration

	// ConsecutiveFailures opens the breaker; OpenTimeout is how long it stays open.
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:             baseURL,
		Timeout:             2 * time.Second,
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
	}
}

type StockClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[bool]
	logger     *slog.Logger
}

type availabilityItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type availabilityRequest struct {
	Items []availabilityItem `json:"items"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

func NewStockClient(cfg Config, logger *slog.Logger) (*StockClient, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("inventory base url")
	}
	if cfg.Timeout <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("inventory timeout", cfg.Timeout, "1ns", "unbounded")
	}
	if cfg.ConsecutiveFailures == 0 {
		return nil, errs.NewValueIsOutOfRangeError("consecutive failures", cfg.ConsecutiveFailures, 1, "unbounded")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "inventory_client"))

	settings := gobreaker.Settings{
		Name:    "inventory",
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &StockClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[bool](settings),
		logger:  logger,
	}, nil
}

// CheckAvailability reports whether every line is in stock. An empty list is
// trivially available and makes no call.
func (c *StockClient) CheckAvailability(ctx context.Context, items []kernel.LineItem) (bool, error) {
	if len(items) == 0 {
		return true, nil
	}

	req := availabilityRequest{Items: make([]availabilityItem, 0, len(items))}
	for _, item := range items {
		req.Items = append(req.Items, availabilityItem{
			ProductID: item.ProductID().String(),
			Quantity:  item.Quantity().Int(),
		})
	}

	available, err := c.breaker.Execute(func() (bool, error) {
		return c.call(ctx, req)
	})
	if err != nil {
		return false, fmt.Errorf("check stock availability: %w", err)
	}
	return available, nil
}

func (c *StockClient) call(ctx context.Context, payload availabilityRequest) (bool, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+availabilityPath, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("inventory call: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("inventory error %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out availabilityResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return out.Available, nil
}
