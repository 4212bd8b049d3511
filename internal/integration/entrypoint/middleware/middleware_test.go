package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokenService struct {
	adapter.TokenService
	claims *adapter.TokenClaims
	err    error
}

func (s *stubTokenService) ValidateAccessToken(_ context.Context, _ string) (*adapter.TokenClaims, error) {
	return s.claims, s.err
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration) (int64, time.Duration, error) {
	return 0, 0, errors.New("connection refused")
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		service    *stubTokenService
		wantStatus int
		wantCode   domainerror.AuthErrorCode
	}{
		{
			name:       "missing header",
			service:    &stubTokenService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   domainerror.ErrCodeMissingToken,
		},
		{
			name:       "not a bearer header",
			header:     "Basic abc",
			service:    &stubTokenService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   domainerror.ErrCodeInvalidToken,
		},
		{
			name:       "empty bearer token",
			header:     "Bearer   ",
			service:    &stubTokenService{},
			wantStatus: http.StatusUnauthorized,
			wantCode:   domainerror.ErrCodeMissingToken,
		},
		{
			name:       "expired token",
			header:     "Bearer old",
			service:    &stubTokenService{err: domainerror.ErrExpiredToken},
			wantStatus: http.StatusUnauthorized,
			wantCode:   domainerror.ErrCodeExpiredToken,
		},
		{
			name:       "invalid token",
			header:     "Bearer bad",
			service:    &stubTokenService{err: domainerror.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
			wantCode:   domainerror.ErrCodeInvalidToken,
		},
		{
			name:       "valid token",
			header:     "Bearer good",
			service:    &stubTokenService{claims: &adapter.TokenClaims{UserID: userID, Email: "a@b.com"}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/me", NewAuthMiddleware(tt.service).Authenticate(), func(c *gin.Context) {
				id, ok := GetUserIDFromContext(c)
				if !ok {
					c.Status(http.StatusInternalServerError)
					return
				}
				c.String(http.StatusOK, id.String())
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.wantStatus == http.StatusOK {
				if rec.Body.String() != userID.String() {
					t.Errorf("expected user id %s in context, got %s", userID, rec.Body.String())
				}
				return
			}
			if got := decodeError(t, rec).Code; got != string(tt.wantCode) {
				t.Errorf("expected code %s, got %s", tt.wantCode, got)
			}
		})
	}
}

func TestMemoryStore(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, _, err := store.Hit(ctx, "login:1.2.3.4", time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != want {
			t.Fatalf("expected count %d, got %d", want, count)
		}
	}

	if count, _, _ := store.Hit(ctx, "login:5.6.7.8", time.Minute); count != 1 {
		t.Errorf("keys should be counted independently, got %d", count)
	}

	now = now.Add(30 * time.Second)
	_, retryAfter, _ := store.Hit(ctx, "login:1.2.3.4", time.Minute)
	if retryAfter != 30*time.Second {
		t.Errorf("expected 30s left in window, got %v", retryAfter)
	}

	now = now.Add(31 * time.Second)
	if count, _, _ := store.Hit(ctx, "login:1.2.3.4", time.Minute); count != 1 {
		t.Errorf("expected a fresh window, got count %d", count)
	}
}

func TestMemoryStoreSweepsExpiredEntries(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < memorySweepThreshold; i++ {
		_, _, _ = store.Hit(ctx, fmt.Sprintf("login:10.0.%d.%d", i/256, i%256), time.Minute)
	}
	if len(store.entries) != memorySweepThreshold {
		t.Fatalf("expected %d entries, got %d", memorySweepThreshold, len(store.entries))
	}

	now = now.Add(2 * time.Minute)
	if count, _, _ := store.Hit(ctx, "login:192.168.0.1", time.Minute); count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
	if len(store.entries) != 1 {
		t.Errorf("expected expired entries to be swept, %d left", len(store.entries))
	}
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client)
	ctx := context.Background()

	t.Run("counts within the window", func(t *testing.T) {
		mr.FlushAll()
		for want := int64(1); want <= 3; want++ {
			count, ttl, err := store.Hit(ctx, "k", time.Minute)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if count != want {
				t.Fatalf("expected count %d, got %d", want, count)
			}
			if ttl <= 0 || ttl > time.Minute {
				t.Errorf("unexpected ttl %v", ttl)
			}
		}
	})

	t.Run("window expiry resets the count", func(t *testing.T) {
		mr.FlushAll()
		_, _, _ = store.Hit(ctx, "k", time.Minute)
		_, _, _ = store.Hit(ctx, "k", time.Minute)
		mr.FastForward(time.Minute + time.Second)

		count, _, err := store.Hit(ctx, "k", time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("expected count 1 after expiry, got %d", count)
		}
	})

	t.Run("key without expiry gets a new window", func(t *testing.T) {
		mr.FlushAll()
		if err := mr.Set(redisKeyPrefix+"k", "3"); err != nil {
			t.Fatalf("failed to seed key: %v", err)
		}

		count, ttl, err := store.Hit(ctx, "k", time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 1 {
			t.Errorf("expected the count to restart at 1, got %d", count)
		}
		if ttl != time.Minute {
			t.Errorf("expected ttl reset to window, got %v", ttl)
		}
		if mr.TTL(redisKeyPrefix+"k") != time.Minute {
			t.Errorf("expected key expiry to be set, got %v", mr.TTL(redisKeyPrefix+"k"))
		}
		if got, _ := mr.Get(redisKeyPrefix + "k"); got != "1" {
			t.Errorf("expected stored count 1, got %q", got)
		}

		count, _, _ = store.Hit(ctx, "k", time.Minute)
		if count != 2 {
			t.Errorf("expected count 2 within the new window, got %d", count)
		}
	})

	t.Run("unreachable redis returns an error", func(t *testing.T) {
		broken := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
		defer broken.Close()

		if _, _, err := NewRedisStore(broken).Hit(ctx, "k", time.Minute); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestRateLimiterMiddleware(t *testing.T) {
	newRouter := func(rl *RateLimiter) *gin.Engine {
		router := gin.New()
		router.POST("/login", rl.Middleware(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}
	send := func(router *gin.Engine) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("blocks after max attempts", func(t *testing.T) {
		router := newRouter(NewRateLimiter(NewMemoryStore(), 2, time.Minute, true))

		for i := 0; i < 2; i++ {
			if rec := send(router); rec.Code != http.StatusOK {
				t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
			}
		}

		rec := send(router)
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", rec.Code)
		}
		if rec.Header().Get("Retry-After") != "60" {
			t.Errorf("expected Retry-After 60, got %q", rec.Header().Get("Retry-After"))
		}
		if got := decodeError(t, rec).Code; got != string(domainerror.ErrCodeRateLimited) {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeRateLimited, got)
		}
	})

	t.Run("disabled limiter lets everything through", func(t *testing.T) {
		router := newRouter(NewRateLimiter(NewMemoryStore(), 1, time.Minute, false))
		for i := 0; i < 5; i++ {
			if rec := send(router); rec.Code != http.StatusOK {
				t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
			}
		}
	})

	t.Run("store failure lets the request through", func(t *testing.T) {
		router := newRouter(NewRateLimiter(failingStore{}, 1, time.Minute, true))
		for i := 0; i < 3; i++ {
			if rec := send(router); rec.Code != http.StatusOK {
				t.Fatalf("attempt %d: expected 200, got %d", i+1, rec.Code)
			}
		}
	})

	t.Run("non-positive settings fall back to defaults", func(t *testing.T) {
		rl := NewRateLimiter(NewMemoryStore(), 0, 0, true)
		if rl.maxAttempts != DefaultMaxAttempts || rl.window != DefaultWindowDuration {
			t.Errorf("unexpected defaults: %d, %v", rl.maxAttempts, rl.window)
		}
	})
}
