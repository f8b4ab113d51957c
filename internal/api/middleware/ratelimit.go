package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const defaultLoginRate = 20

// LoginRateLimiter caps requests per client IP to perMinute, with a burst of
// perMinute/4 (at least 1).
func LoginRateLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		perMinute = defaultLoginRate
	}
	window := time.Minute
	burst := perMinute / 4
	if burst < 1 {
		burst = 1
	}
	retryAfter := strconv.Itoa(int((window / time.Duration(perMinute)).Seconds()) + 1)

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Every(window / time.Duration(perMinute)),
			Burst:     burst,
			ExpiresIn: window * 2,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			c.Response().Header().Set("Retry-After", retryAfter)
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
		},
	})
}
