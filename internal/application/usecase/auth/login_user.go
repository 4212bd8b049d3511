// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user login. Unknown emails and wrong passwords
// produce the same error.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*AuthOutput, error) {
	invalid := domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)

	user, err := uc.userRepo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, invalid
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalid
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &AuthOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         user,
	}, nil
}
