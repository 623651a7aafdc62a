package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/nashcab/car-rental-service/internal/config"
)

// RateLimit returns a fixed-window request limiter keyed by user id
// (falling back to client IP for unauthenticated requests).  The counter
// lives in Redis so the limit holds across replicas.  When Redis is nil
// or the feature is disabled the middleware is a no-op; limiting is
// protection, not a correctness requirement.
func RateLimit(rdb *redis.Client, cfg config.RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rdb == nil || !cfg.Enabled || cfg.Limit <= 0 {
				return next(c)
			}

			who := UserID(c)
			if who == "" {
				who = c.RealIP()
			}
			window := time.Now().Unix() / int64(cfg.Window.Seconds())
			key := cfg.Prefix + ":" + who + ":" + strconv.FormatInt(window, 10)

			ctx, cancel := context.WithTimeout(c.Request().Context(), 200*time.Millisecond)
			defer cancel()

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				// Redis trouble must not take the API down.
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, cfg.Window)
			}
			if n > int64(cfg.Limit) {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "rate limit exceeded"})
			}
			return next(c)
		}
	}
}
