// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required"`
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Password      string `json:"password" binding:"required"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// ToAuthResponse converts an auth use case output to an AuthResponse DTO.
func ToAuthResponse(output *auth.AuthOutput) AuthResponse {
	return AuthResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		ExpiresIn:    output.ExpiresIn,
		User:         ToUserResponse(output.User),
	}
}
