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

// UserController handles user profile endpoints.
type UserController struct {
	getCurrentUserUseCase *auth.GetCurrentUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(getCurrentUserUseCase *auth.GetCurrentUserUseCase) *UserController {
	return &UserController{
		getCurrentUserUseCase: getCurrentUserUseCase,
	}
}

// Me handles GET /users/me requests.
func (c *UserController) Me(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	user, err := c.getCurrentUserUseCase.Execute(ctx.Request.Context(), auth.GetCurrentUserInput{UserID: userID})
	if err != nil {
		var authErr *domainerror.AuthError
		if errors.As(err, &authErr) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
				Error: authErr.Message,
				Code:  string(authErr.Code),
			})
			return
		}
		slog.ErrorContext(ctx.Request.Context(), "failed to load user", "user_id", userID.String(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}
