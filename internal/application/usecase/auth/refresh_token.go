// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// RefreshTokenInput represents the input for token refresh.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenUseCase rotates a refresh token into a new token pair.
type RefreshTokenUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute validates the refresh token, revokes it and issues a new pair.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*AuthOutput, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid or expired refresh token",
			domainerror.ErrInvalidToken,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid or expired refresh token",
			domainerror.ErrInvalidToken,
		)
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to invalidate old token: %w", err)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new tokens: %w", err)
	}

	return &AuthOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         user,
	}, nil
}
