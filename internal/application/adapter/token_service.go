// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenPair represents an access and refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // access token lifetime in seconds
}

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateTokenPair issues an access token and a persisted refresh token.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*TokenPair, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken validates a refresh token signature and expiry, and that it was not revoked.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken revokes a refresh token.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserTokens revokes every refresh token issued to a user.
	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error
}
