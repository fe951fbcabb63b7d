package idempotency

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	HeaderKey      = "Idempotency-Key"
	HeaderReplayed = "Idempotent-Replayed"

	maxKeyLength = 255
)

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type recordingWriter struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware replays the stored response for a repeated Idempotency-Key.
// Requests without the header pass through untouched. Responses with a 5xx
// status are not stored so the client can retry. When Redis is unreachable
// the request runs without protection.
func Middleware(store *Store, scope string, logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "idempotency"), slog.String("scope", scope))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idemKey := c.Request().Header.Get(HeaderKey)
			if idemKey == "" {
				return next(c)
			}
			if len(idemKey) > maxKeyLength {
				return c.JSON(http.StatusBadRequest, errorBody{
					Code:    http.StatusBadRequest,
					Message: "Idempotency-Key is too long",
				})
			}

			ctx := c.Request().Context()
			key := store.Key(scope, c.Request().URL.Path+":"+idemKey)

			record, err := store.Reserve(ctx, key)
			switch {
			case errors.Is(err, ErrRequestInFlight):
				return c.JSON(http.StatusConflict, errorBody{
					Code:    http.StatusConflict,
					Message: err.Error(),
				})
			case err != nil:
				logger.WarnContext(ctx, "idempotency store unavailable", slog.Any("error", err))
				return next(c)
			case record != nil:
				c.Response().Header().Set(HeaderReplayed, "true")
				return c.Blob(record.Status, record.ContentType, record.Body)
			}

			rec := &recordingWriter{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				releaseKey(c, store, key, logger)
				return err
			}

			status := c.Response().Status
			if status >= http.StatusInternalServerError {
				releaseKey(c, store, key, logger)
				return nil
			}

			if err := store.Complete(ctx, key, Record{
				Status:      status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        rec.body.Bytes(),
			}); err != nil {
				logger.ErrorContext(ctx, "failed to store idempotent response", slog.Any("error", err))
			}
			return nil
		}
	}
}

func releaseKey(c echo.Context, store *Store, key string, logger *slog.Logger) {
	if err := store.Release(c.Request().Context(), key); err != nil {
		logger.ErrorContext(c.Request().Context(), "failed to release idempotency key", slog.Any("error", err))
	}
}
