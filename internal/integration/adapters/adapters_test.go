package adapters

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

type movableClock struct{ now time.Time }

func (c *movableClock) Now() time.Time { return c.now }

func newTokenRepository(t *testing.T) persistence.TokenRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&model.RefreshTokenModel{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return persistence.NewTokenRepository(db)
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	clock := &movableClock{now: time.Now().UTC().Truncate(time.Second)}
	svc := NewTokenService(TokenConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	}, newTokenRepository(t), clock)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(ctx, userID, "a@b.io", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.ExpiresIn != 900 {
		t.Errorf("expected 900 seconds, got %d", pair.ExpiresIn)
	}

	t.Run("access token round trip", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != userID || claims.Email != "a@b.io" {
			t.Errorf("unexpected claims: %+v", claims)
		}
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken(ctx, pair.RefreshToken); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected invalid token, got %v", err)
		}
		if _, err := svc.ValidateRefreshToken(ctx, pair.AccessToken); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected invalid token, got %v", err)
		}
	})

	t.Run("pairs issued in the same instant differ", func(t *testing.T) {
		other, err := svc.GenerateTokenPair(ctx, userID, "a@b.io", false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if other.RefreshToken == pair.RefreshToken {
			t.Error("expected distinct refresh tokens")
		}
	})

	t.Run("revoked refresh token is rejected", func(t *testing.T) {
		if _, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := svc.InvalidateRefreshToken(ctx, pair.RefreshToken); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected invalid token, got %v", err)
		}
	})

	t.Run("expired access token is rejected", func(t *testing.T) {
		clock.now = clock.now.Add(16 * time.Minute)
		if _, err := svc.ValidateAccessToken(ctx, pair.AccessToken); !errors.Is(err, domainerror.ErrExpiredToken) {
			t.Errorf("expected expired token, got %v", err)
		}
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken(ctx, pair.AccessToken+"x"); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected invalid token, got %v", err)
		}
	})
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("password1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.VerifyPassword(hash, "password1"); err != nil {
		t.Errorf("expected password to verify: %v", err)
	}
	if err := svc.VerifyPassword(hash, "password2"); err == nil {
		t.Error("expected mismatch")
	}

	tests := []struct {
		password string
		weak     bool
	}{
		{"short1", true},
		{"onlyletters", true},
		{"12345678", true},
		{"letters123", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := svc.ValidatePasswordStrength(tt.password)
			if tt.weak && !errors.Is(err, domainerror.ErrWeakPassword) {
				t.Errorf("expected weak password error, got %v", err)
			}
			if !tt.weak && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
