// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

const (
	// rememberMeMultiplier stretches token lifetimes when "remember me" is set.
	rememberMeMultiplier = 4

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	tokenIssuer = "expense-tracker"
)

// CustomClaims represents the custom claims for JWT tokens.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenConfig holds the signing secret and token lifetimes.
type TokenConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret          []byte
	accessExpiry    time.Duration
	refreshExpiry   time.Duration
	tokenRepository persistence.TokenRepository
	clock           adapter.Clock
}

// NewTokenService creates a new token service instance.
func NewTokenService(cfg TokenConfig, tokenRepository persistence.TokenRepository, clock adapter.Clock) adapter.TokenService {
	return &tokenService{
		secret:          []byte(cfg.Secret),
		accessExpiry:    cfg.AccessExpiry,
		refreshExpiry:   cfg.RefreshExpiry,
		tokenRepository: tokenRepository,
		clock:           clock,
	}
}

// GenerateTokenPair generates a new access and refresh token pair.
func (s *tokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*adapter.TokenPair, error) {
	accessDuration := s.accessExpiry
	refreshDuration := s.refreshExpiry
	if rememberMe {
		accessDuration *= rememberMeMultiplier
		refreshDuration *= rememberMeMultiplier
	}

	now := s.clock.Now().UTC()

	accessToken, err := s.generateJWT(userID, email, tokenTypeAccess, now, accessDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateJWT(userID, email, tokenTypeRefresh, now, refreshDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := s.tokenRepository.SaveRefreshToken(ctx, refreshToken, userID, now.Add(refreshDuration)); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &adapter.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(accessDuration.Seconds()),
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.validate(token, tokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and checks it has not been revoked.
func (s *tokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.validate(token, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	valid, err := s.tokenRepository.IsRefreshTokenValid(ctx, token, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !valid {
		return nil, domainerror.ErrInvalidToken
	}

	return claims, nil
}

// InvalidateRefreshToken revokes a refresh token.
func (s *tokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return s.tokenRepository.InvalidateRefreshToken(ctx, token)
}

// InvalidateAllUserTokens revokes every refresh token of a user.
func (s *tokenService) InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	return s.tokenRepository.InvalidateAllUserRefreshTokens(ctx, userID)
}

func (s *tokenService) validate(token, expectedType string) (*adapter.TokenClaims, error) {
	claims, err := s.parseJWT(token)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("%w: expected %s token", domainerror.ErrInvalidToken, expectedType)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad user id", domainerror.ErrInvalidToken)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// generateJWT creates a signed token. Every token gets a unique ID so that two
// tokens issued in the same second never collide.
func (s *tokenService) generateJWT(userID uuid.UUID, email, tokenType string, now time.Time, duration time.Duration) (string, error) {
	claims := CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// parseJWT parses and validates a JWT token against the injected clock.
func (s *tokenService) parseJWT(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	return claims, nil
}
