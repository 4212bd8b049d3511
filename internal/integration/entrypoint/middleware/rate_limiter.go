// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	// DefaultMaxAttempts is the default number of allowed attempts per window.
	DefaultMaxAttempts = 5
	// DefaultWindowDuration is the default time window for rate limiting.
	DefaultWindowDuration = 1 * time.Minute

	redisKeyPrefix = "ratelimit:"

	// memorySweepThreshold is the entry count above which Hit drops expired entries.
	memorySweepThreshold = 1024
)

// RateLimitStore counts hits per key within a fixed window.
type RateLimitStore interface {
	// Hit records one attempt for key and returns the attempt count in the current window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateLimiter provides IP-based rate limiting functionality.
type RateLimiter struct {
	store       RateLimitStore
	maxAttempts int
	window      time.Duration
	enabled     bool
}

// NewRateLimiter creates a rate limiter over the given store.
// A disabled limiter lets every request through.
func NewRateLimiter(store RateLimitStore, maxAttempts int, window time.Duration, enabled bool) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if window <= 0 {
		window = DefaultWindowDuration
	}
	return &RateLimiter{
		store:       store,
		maxAttempts: maxAttempts,
		window:      window,
		enabled:     enabled,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting per client IP and route.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}
		key := c.FullPath() + ":" + clientIP

		count, retryAfter, err := rl.store.Hit(c.Request.Context(), key, rl.window)
		if err != nil {
			// A broken store must not lock users out.
			slog.WarnContext(c.Request.Context(), "rate limit store unavailable", "error", err)
			c.Next()
			return
		}

		if count > int64(rl.maxAttempts) {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// memoryEntry tracks rate limit data for a single key.
type memoryEntry struct {
	attempts  int64
	resetTime time.Time
}

// MemoryStore is an in-process RateLimitStore.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

// Hit implements RateLimitStore.
func (s *MemoryStore) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		if len(s.entries) >= memorySweepThreshold {
			s.removeExpired(now)
		}
		entry = &memoryEntry{resetTime: now.Add(window)}
		s.entries[key] = entry
	}
	entry.attempts++

	return entry.attempts, entry.resetTime.Sub(now), nil
}

func (s *MemoryStore) removeExpired(now time.Time) {
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}

// RedisStore is a RateLimitStore shared across instances through Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Hit implements RateLimitStore with INCR and a PEXPIRE set on the first hit of a window.
func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	redisKey := redisKeyPrefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to record rate limit hit: %w", err)
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("failed to set rate limit window: %w", err)
		}
		return count, window, nil
	}

	ttl, err := s.client.PTTL(ctx, redisKey).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read rate limit window: %w", err)
	}
	if ttl < 0 {
		// Key lost its expiry; this hit opens a fresh window.
		if err := s.client.Set(ctx, redisKey, 1, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("failed to reset rate limit window: %w", err)
		}
		return 1, window, nil
	}

	return count, ttl, nil
}
