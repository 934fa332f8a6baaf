package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"quantumworks-backend/internal/delivery/http/response"
	"quantumworks-backend/pkg/logger"
	"quantumworks-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix, also namespaces the in-memory store
	KeyPrefix string
	// Whether to reject requests when Redis errors instead of falling back
	FailClosed bool
	// Redis returns the client to use, nil means in-memory only
	Redis func() *goredis.Client
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	removed bool
	mu      sync.Mutex
}

// memoryStore is the per-middleware fallback used without Redis.
// Expired entries are swept at most once per window, from check.
type memoryStore struct {
	entries sync.Map

	sweepMu   sync.Mutex
	nextSweep time.Time
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

var rateLimitScript = goredis.NewScript(rateLimitLuaScript)

// ContactRateLimitConfig limits form submissions per client IP
func ContactRateLimitConfig(limit int, window time.Duration, redis func() *goredis.Client) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contact:",
		FailClosed: false,
		Redis:      redis,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// GlobalRateLimitConfig applies a generous per-IP budget to every route
func GlobalRateLimitConfig(limit int, window time.Duration, redis func() *goredis.Client) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		Redis:     redis,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when available, falls back to in-memory when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	store := &memoryStore{}

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var count int
		var resetAt time.Time

		var redisClient *goredis.Client
		if config.Redis != nil {
			redisClient = config.Redis()
		}

		if redisClient != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), redisClient, fullKey, config)
			if err != nil {
				if config.FailClosed {
					logger.Log.Error("Rate limit backend unavailable", "error", err)
					response.Error(c, http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.")
					c.Abort()
					return
				}
				count, resetAt = store.check(fullKey, config.Window, now)
			}
		} else {
			count, resetAt = store.check(fullKey, config.Window, now)
		}

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}

			c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			security.DefaultLogger().LogRateLimitTriggered(
				c.Request.Context(),
				c.ClientIP(),
				c.GetHeader("User-Agent"),
				requestIDFrom(c),
				c.FullPath(),
			)

			response.Error(c, http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			c.Abort()
			return
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		c.Next()
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := rateLimitScript.Run(ctx, client, []string{key}, ttlSeconds).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	if len(result) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	resetAt := time.Now().Add(time.Duration(result[1]) * time.Second)
	return int(result[0]), resetAt, nil
}

// check increments the fixed-window counter for key.
func (s *memoryStore) check(key string, window time.Duration, now time.Time) (int, time.Time) {
	s.sweepIfDue(window, now)

	for {
		entryI, _ := s.entries.LoadOrStore(key, &rateLimitEntry{
			resetAt: now.Add(window),
		})
		entry := entryI.(*rateLimitEntry)

		entry.mu.Lock()
		if entry.removed {
			// Lost a race with sweep; the key now maps to a new entry
			entry.mu.Unlock()
			continue
		}
		if now.After(entry.resetAt) {
			entry.count = 0
			entry.resetAt = now.Add(window)
		}
		entry.count++
		count, resetAt := entry.count, entry.resetAt
		entry.mu.Unlock()

		return count, resetAt
	}
}

// sweepIfDue deletes every entry whose window ended before now.
func (s *memoryStore) sweepIfDue(window time.Duration, now time.Time) {
	s.sweepMu.Lock()
	if now.Before(s.nextSweep) {
		s.sweepMu.Unlock()
		return
	}
	s.nextSweep = now.Add(window)
	s.sweepMu.Unlock()

	s.entries.Range(func(key, value any) bool {
		entry := value.(*rateLimitEntry)
		entry.mu.Lock()
		if now.After(entry.resetAt) {
			entry.removed = true
			s.entries.Delete(key)
		}
		entry.mu.Unlock()
		return true
	})
}
