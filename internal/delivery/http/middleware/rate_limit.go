package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/internal/domain"
	"go-staffing-backend/pkg/logger"
	"go-staffing-backend/pkg/redis"
	"go-staffing-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

type RateLimitConfig struct {
	Limit     int
	Window    time.Duration
	KeyPrefix string
	// Default: client IP
	KeyFunc func(*gin.Context) string
	// Reject with 503 instead of falling back to memory when Redis errors
	FailClosed bool
	// Defaults to the shared Redis client
	Client func() *goredis.Client
}

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// memoryLimiter is the per-process fallback used when Redis is absent.
type memoryLimiter struct {
	entries sync.Map
}

func (m *memoryLimiter) hit(key string, window time.Duration, now time.Time) (int, time.Time) {
	v, _ := m.entries.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
	entry := v.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if !now.Before(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++
	return entry.count, entry.resetAt
}

func (m *memoryLimiter) sweep(now time.Time) {
	m.entries.Range(func(key, value any) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		expired := !now.Before(entry.resetAt)
		entry.mu.Unlock()
		if expired {
			m.entries.Delete(key)
		}
		return true
	})
}

var (
	fallbackStore = &memoryLimiter{}
	sweepOnce     sync.Once
)

// Fixed window: INCR, EXPIRE on first hit, report TTL
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

func startSweeper() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for now := range ticker.C {
			fallbackStore.sweep(now)
		}
	}()
}

// GlobalRateLimitConfig applies to every route; fails open.
func GlobalRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Limit: limit, Window: window, KeyPrefix: "rl:ip:"}
}

// AuthRateLimitConfig guards account sync and role changes; fails closed.
func AuthRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{Limit: limit, Window: window, KeyPrefix: "rl:auth:", FailClosed: true}
}

// RateLimitMiddleware counts requests per key in Redis, or in memory without Redis.
func RateLimitMiddleware(cfg RateLimitConfig) gin.HandlerFunc {
	sweepOnce.Do(startSweeper)
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}
	if cfg.Client == nil {
		cfg.Client = redis.Client
	}

	return func(c *gin.Context) {
		key := cfg.KeyPrefix + cfg.KeyFunc(c)
		now := time.Now()

		var (
			count   int
			resetAt time.Time
		)
		if client := cfg.Client(); client != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, key, cfg.Window, now)
			if err != nil {
				logger.Log.Warn("rate limit redis error", "key_prefix", cfg.KeyPrefix, "error", err)
				if cfg.FailClosed {
					response.Abort(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
					return
				}
				count, resetAt = fallbackStore.hit(key, cfg.Window, now)
			}
		} else {
			count, resetAt = fallbackStore.hit(key, cfg.Window, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if count > cfg.Limit {
			retryAfter := int(resetAt.Sub(now).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logRateLimitTriggered(c)
			response.Abort(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(cfg.Limit-count))
		c.Next()
	}
}

// UploadLimitMiddleware applies the per-IP and per-user resume upload limits.
// A missing or failing Redis lets uploads through.
func UploadLimitMiddleware(limiter *security.UploadLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := limiter.AllowUpload(c.Request.Context(), c.ClientIP(), c.GetString(string(domain.KeyUserID)))
		if err != nil {
			if !errors.Is(err, security.ErrLimiterUnavailable) {
				logger.Log.Warn("upload limiter error", "error", err)
			}
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			logRateLimitTriggered(c)
			response.Abort(c, http.StatusTooManyRequests, "Too many uploads. Please try again later.")
			return
		}
		c.Next()
	}
}

func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, window time.Duration, now time.Time) (int, time.Time, error) {
	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, int(window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("rate limit eval: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, errors.New("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), now.Add(time.Duration(ttl) * time.Second), nil
}

func logRateLimitTriggered(c *gin.Context) {
	security.DefaultLogger().LogRateLimitTriggered(
		c.Request.Context(),
		c.ClientIP(),
		c.Request.UserAgent(),
		c.GetString(string(domain.KeyRequestID)),
		c.FullPath(),
	)
}
