// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	registerUseCase     *auth.RegisterUserUseCase
	loginUseCase        *auth.LoginUserUseCase
	refreshTokenUseCase *auth.RefreshTokenUseCase
	logoutUseCase       *auth.LogoutUserUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	refreshTokenUseCase *auth.RefreshTokenUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:     registerUseCase,
		loginUseCase:        loginUseCase,
		refreshTokenUseCase: refreshTokenUseCase,
		logoutUseCase:       logoutUseCase,
	}
}

// Register handles POST /auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := auth.RegisterUserInput{
		Email:         req.Email,
		Name:          req.Name,
		Password:      req.Password,
		TermsAccepted: req.TermsAccepted,
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAuthResponse(output))
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAuthResponse(output))
}

// RefreshToken handles POST /auth/refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), auth.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		ExpiresIn:    output.ExpiresIn,
	})
}

// Logout handles POST /auth/logout requests. It always succeeds.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err == nil {
		c.logoutUseCase.Execute(ctx.Request.Context(), auth.LogoutUserInput{
			RefreshToken: req.RefreshToken,
		})
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{
		Message: "Successfully logged out",
	})
}

// handleAuthError handles authentication errors and returns appropriate HTTP responses.
func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		statusCode := c.getStatusCodeForAuthError(authErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "auth request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func (c *AuthController) getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeTermsNotAccepted,
		domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
