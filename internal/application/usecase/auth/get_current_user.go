package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetCurrentUserInput represents the input for loading the authenticated user's profile.
type GetCurrentUserInput struct {
	UserID uuid.UUID
}

// GetCurrentUserUseCase loads the profile of the authenticated user.
type GetCurrentUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetCurrentUserUseCase creates a new GetCurrentUserUseCase instance.
func NewGetCurrentUserUseCase(userRepo adapter.UserRepository) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: userRepo}
}

// Execute returns the user, or a UserNotFound AuthError when the account is gone.
func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, input GetCurrentUserInput) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
