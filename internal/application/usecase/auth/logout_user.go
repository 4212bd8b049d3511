// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"log/slog"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute revokes the refresh token. Logout always succeeds.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) {
	if input.RefreshToken == "" {
		return
	}
	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.DebugContext(ctx, "refresh token not revoked on logout", "error", err)
	}
}
