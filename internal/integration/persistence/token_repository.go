// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// TokenRepository tracks issued refresh tokens so they can be revoked.
type TokenRepository interface {
	// SaveRefreshToken saves a refresh token to the database.
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// IsRefreshTokenValid reports whether the token exists, is not revoked and has not expired at now.
	IsRefreshTokenValid(ctx context.Context, token string, now time.Time) (bool, error)

	// InvalidateRefreshToken marks a refresh token as revoked.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserRefreshTokens revokes all refresh tokens for a user.
	InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error
}

// tokenRepository implements the TokenRepository interface.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

// SaveRefreshToken saves a refresh token to the database.
func (r *tokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	refreshToken := &model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(refreshToken).Error
}

// IsRefreshTokenValid checks if a refresh token is usable.
func (r *tokenRepository) IsRefreshTokenValid(ctx context.Context, token string, now time.Time) (bool, error) {
	var refreshToken model.RefreshTokenModel
	result := r.db.WithContext(ctx).
		Where("token = ? AND invalidated = ? AND expires_at > ?", token, false, now.UTC()).
		First(&refreshToken)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// InvalidateRefreshToken marks a refresh token as revoked.
func (r *tokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token = ?", token).
		Update("invalidated", true).Error
}

// InvalidateAllUserRefreshTokens revokes all refresh tokens for a user.
func (r *tokenRepository) InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ?", userID).
		Update("invalidated", true).Error
}
