package middleware

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"job-portal/internal/pkg/metrics"

	"github.com/gofiber/fiber/v3"
)

type Counter interface {
	IncrWithExpire(ctx context.Context, key string, expiration time.Duration) (int64, error)
}

// RateLimiter is a fixed one-minute window per client IP and scope. When the
// counter store fails the request is let through and a single warning logged.
type RateLimiter struct {
	counter Counter
	limit   int
	window  time.Duration
	logger  *log.Logger
	now     func() time.Time

	warned atomic.Bool
}

func NewRateLimiter(counter Counter, requestsPerMinute int, logger *log.Logger) *RateLimiter {
	if logger == nil {
		logger = log.Default()
	}
	return &RateLimiter{
		counter: counter,
		limit:   requestsPerMinute,
		window:  time.Minute,
		logger:  logger,
		now:     time.Now,
	}
}

func (l *RateLimiter) Limit(scope string) fiber.Handler {
	return func(c fiber.Ctx) error {
		if l == nil || l.counter == nil || l.limit <= 0 {
			return c.Next()
		}

		now := l.now()
		windowStart := now.Truncate(l.window)
		key := fmt.Sprintf("ratelimit:%s:%s:%d", scope, c.IP(), windowStart.Unix())

		count, err := l.counter.IncrWithExpire(c.Context(), key, l.window)
		if err != nil {
			if l.warned.CompareAndSwap(false, true) {
				l.logger.Printf("[RateLimit] counter unavailable, bypassing | scope=%s err=%v", scope, err)
			}
			return c.Next()
		}

		remaining := l.limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		reset := windowStart.Add(l.window)
		c.Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if int(count) > l.limit {
			metrics.IncrementRateLimited(scope)
			retry := int(reset.Sub(now).Seconds()) + 1
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retry))
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil, nil)
		}
		return c.Next()
	}
}
