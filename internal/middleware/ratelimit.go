package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/progressclasses/classes-backend/internal/config"
	"github.com/progressclasses/classes-backend/internal/response"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimiter is a fixed-window per-IP limiter whose counters live in Redis,
// so every server instance shares the same budget. While Redis is unreachable
// each instance enforces the same budget locally with a token bucket per IP.
type RateLimiter struct {
	rdb    redis.Cmdable
	scope  string
	limit  int
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time

	local sync.Map // client IP -> *rate.Limiter
}

// NewRateLimiter allows limit requests per window for each client IP.
// A limit <= 0 disables the limiter.
func NewRateLimiter(rdb redis.Cmdable, scope string, limit int, window time.Duration, log zerolog.Logger) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		rdb:    rdb,
		scope:  scope,
		limit:  limit,
		window: window,
		log:    log.With().Str("component", "rate_limiter").Str("scope", scope).Logger(),
		now:    time.Now,
	}
}

// Allow counts one request for clientIP and reports whether it fits in the
// current window, along with the remaining budget.
func (rl *RateLimiter) Allow(ctx context.Context, clientIP string) (bool, int, error) {
	windowIdx := rl.now().UnixNano() / int64(rl.window)
	key := config.CacheKey.RateLimitKey(rl.scope, clientIP, windowIdx)

	pipe := rl.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, rl.limit, err
	}

	count := int(incr.Val())
	remaining := rl.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.limit, remaining, nil
}

// Middleware rejects requests over budget with 429. Redis failures are
// absorbed by the local bucket.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		allowed, remaining, err := rl.Allow(c.Request.Context(), ip)
		if err != nil {
			rl.log.Warn().Err(err).Str("ip", ip).Msg("redis rate limiter unavailable, using local bucket")
			allowed = rl.localLimiter(ip).Allow()
			remaining = -1
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		if remaining >= 0 {
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		}

		if !allowed {
			rl.log.Warn().Str("ip", ip).Str("path", c.FullPath()).Msg("rate limit exceeded")
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) localLimiter(ip string) *rate.Limiter {
	if l, ok := rl.local.Load(ip); ok {
		return l.(*rate.Limiter)
	}
	l, _ := rl.local.LoadOrStore(ip, rate.NewLimiter(rate.Every(rl.window/time.Duration(rl.limit)), rl.limit))
	return l.(*rate.Limiter)
}
