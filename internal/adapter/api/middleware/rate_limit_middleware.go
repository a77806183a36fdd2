package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"passr/internal/infrastructure/ratelimit"
	"passr/pkg/errors"
	"passr/pkg/response"
)

// RateLimitMiddleware throttles write-heavy endpoints per caller. The key is
// the authenticated uid when present, the client IP otherwise.
type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware() *RateLimitMiddleware {
	m := &RateLimitMiddleware{
		limiter: ratelimit.NewRateLimiter(),
	}

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			m.limiter.Cleanup(2 * time.Hour)
		}
	}()

	return m
}

// Limit allows maxTokens actions per caller, refilled at refillRate tokens
// every refillTime. The action name keeps buckets separate per endpoint.
func (m *RateLimitMiddleware) Limit(action string, maxTokens, refillRate int, refillTime time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := action + ":"
			if uid, ok := c.Get("uid").(string); ok && uid != "" {
				key += uid
			} else {
				key += c.RealIP()
			}

			if allowed, _ := m.limiter.Allow(key, maxTokens, refillRate, refillTime); !allowed {
				return response.Error(c, errors.TooManyRequests("Too many requests, slow down"))
			}

			return next(c)
		}
	}
}
