// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email         string
	Name          string
	Password      string
	TermsAccepted bool
}

// AuthOutput is returned by every use case that issues tokens.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         *entity.User
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	clock           adapter.Clock
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	clock adapter.Clock,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		clock:           clock,
	}
}

// Execute registers the user and signs them in.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*AuthOutput, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)

	if email == "" || name == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"email, name and password are required",
			nil,
		)
	}

	if !input.TermsAccepted {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeTermsNotAccepted,
			"terms of service must be accepted",
			domainerror.ErrTermsNotAccepted,
		)
	}

	if !emailRegex.MatchString(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password must be at least 8 characters and contain a letter and a digit",
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(email, name, passwordHash, uc.clock.Now().UTC())

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, false)
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

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
