package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"ordering/internal/adapters/in/http/api"
	"ordering/internal/adapters/in/http/idempotency"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "ordering"

// RouterConfig carries everything NewRouter wires into the echo instance.
// Idempotency is optional; without it checkout retries are not deduplicated.
type RouterConfig struct {
	Server      *Server
	Idempotency *idempotency.Store
	Logger      *slog.Logger
}

// swaggerDoc feeds echo-swagger from the embedded OpenAPI document.
type swaggerDoc struct {
	json string
}

func (d swaggerDoc) ReadDoc() string {
	return d.json
}

var registerDocOnce sync.Once

func registerSwaggerDoc(doc string) {
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{json: doc})
	})
}

func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	if cfg.Server == nil {
		return nil, fmt.Errorf("router: server is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "http"))

	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}
	docJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	registerSwaggerDoc(string(docJSON))

	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(otelhttp.NewMiddleware(serviceName)))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request", attrs...)
			return nil
		},
	}))
	e.Use(validator)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/api/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", api.RawSpec())
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	extra := api.RouteMiddlewares{}
	if cfg.Idempotency != nil {
		extra["CheckoutCart"] = []echo.MiddlewareFunc{idempotency.Middleware(cfg.Idempotency, "checkout", logger)}
	}
	api.RegisterHandlers(e, cfg.Server, extra)

	return e, nil
}
