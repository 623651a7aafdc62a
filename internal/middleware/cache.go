package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nashcab/car-rental-service/internal/config"
)

// bodyRecorder duplicates the response body so it can be stored after
// the handler finishes.
type bodyRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *bodyRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache returns a middleware that serves repeated GET requests from
// Redis.  Only status-200 JSON bodies up to MaxBodyBytes are stored, for
// cfg.TTL, keyed by request path and query.  With a nil client or the
// feature disabled the middleware passes everything through.
func Cache(rdb *redis.Client, cfg config.CacheConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !cfg.Enabled || c.Request().Method != http.MethodGet {
				return next(c)
			}

			key := cfg.Prefix + ":" + c.Request().URL.RequestURI()
			ctx, cancel := context.WithTimeout(c.Request().Context(), 200*time.Millisecond)
			defer cancel()

			if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
				c.Response().Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				c.Response().Header().Set("X-Cache", "HIT")
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				return err
			}

			if rec.status == http.StatusOK && rec.buf.Len() > 0 && rec.buf.Len() <= cfg.MaxBodyBytes {
				storeCtx, storeCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
				defer storeCancel()
				rdb.Set(storeCtx, key, rec.buf.Bytes(), cfg.TTL)
			}
			return nil
		}
	}
}
