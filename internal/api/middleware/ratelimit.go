package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// Login attempts per client IP. The boundary is the real gatekeeper; this
// keeps one client from hammering it with credential guesses through us.
const (
	loginRate  = rate.Limit(1)
	loginBurst = 5
)

type ipLimiter struct {
	limiter *rate.Limiter
	seen    time.Time
}

// LoginRateLimit limits login attempts per client IP using a token bucket.
// Idle entries are evicted lazily so the map does not grow without bound.
func LoginRateLimit() echo.MiddlewareFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*ipLimiter)
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			mu.Lock()
			l, ok := limiters[ip]
			if !ok {
				l = &ipLimiter{limiter: rate.NewLimiter(loginRate, loginBurst)}
				limiters[ip] = l
			}
			l.seen = time.Now()
			if len(limiters) > 10_000 {
				for key, entry := range limiters {
					if time.Since(entry.seen) > 10*time.Minute {
						delete(limiters, key)
					}
				}
			}
			mu.Unlock()

			if !l.limiter.Allow() {
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}
			return next(c)
		}
	}
}
