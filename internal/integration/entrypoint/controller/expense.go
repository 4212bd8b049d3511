package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	listUseCase   *expense.ListExpensesUseCase
	getUseCase    *expense.GetExpenseUseCase
	createUseCase *expense.CreateExpenseUseCase
	updateUseCase *expense.UpdateExpenseUseCase
	deleteUseCase *expense.DeleteExpenseUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	listUseCase *expense.ListExpensesUseCase,
	getUseCase *expense.GetExpenseUseCase,
	createUseCase *expense.CreateExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
) *ExpenseController {
	return &ExpenseController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := expense.ListExpensesInput{
		UserID: userID,
	}

	if categoryStr := ctx.Query("category"); categoryStr != "" {
		category := entity.ExpenseCategory(categoryStr)
		input.Category = &category
	}

	dateFilters := []struct {
		param  string
		target **time.Time
	}{
		{"start_date", &input.StartDate},
		{"end_date", &input.EndDate},
	}
	for _, filter := range dateFilters {
		raw := ctx.Query(filter.param)
		if raw == "" {
			continue
		}
		date, err := time.Parse(dto.DateLayout, raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: filter.param + " must be in YYYY-MM-DD format",
				Code:  string(domainerror.ErrCodeInvalidExpenseDate),
			})
			return
		}
		*filter.target = &date
	}

	if pageStr := ctx.Query("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil {
			input.Page = page
		}
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}

// Get handles GET /expenses/:id requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	expenseID, ok := c.parseExpenseID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), expense.GetExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output))
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingExpenseFields),
			Details: err.Error(),
		})
		return
	}

	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "date must be in YYYY-MM-DD format",
			Code:  string(domainerror.ErrCodeInvalidExpenseDate),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), expense.CreateExpenseInput{
		UserID:   userID,
		Title:    req.Title,
		Amount:   decimal.NewFromFloat(*req.Amount),
		Date:     date,
		Category: entity.ExpenseCategory(req.Category),
		Notes:    req.Notes,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToExpenseResponse(output.Expense))
}

// Update handles PATCH /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	expenseID, ok := c.parseExpenseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingExpenseFields),
		})
		return
	}

	input := expense.UpdateExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
		Title:     req.Title,
		Notes:     req.Notes,
	}

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		input.Amount = &amount
	}

	if req.Date != nil {
		date, err := time.Parse(dto.DateLayout, *req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "date must be in YYYY-MM-DD format",
				Code:  string(domainerror.ErrCodeInvalidExpenseDate),
			})
			return
		}
		input.Date = &date
	}

	if req.Category != nil {
		category := entity.ExpenseCategory(*req.Category)
		input.Category = &category
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	expenseID, ok := c.parseExpenseID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: expenseID,
		UserID:    userID,
	})
	if err != nil {
		c.handleExpenseError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Categories handles GET /expenses/categories requests.
func (c *ExpenseController) Categories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToCategoriesResponse())
}

func (c *ExpenseController) parseExpenseID(ctx *gin.Context) (uuid.UUID, bool) {
	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid expense ID format",
			Code:  string(domainerror.ErrCodeInvalidExpenseID),
		})
		return uuid.Nil, false
	}
	return expenseID, true
}

// handleExpenseError handles expense errors and returns appropriate HTTP responses.
func (c *ExpenseController) handleExpenseError(ctx *gin.Context, err error) {
	var expenseErr *domainerror.ExpenseError
	if errors.As(err, &expenseErr) {
		statusCode := c.getStatusCodeForExpenseError(expenseErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: expenseErr.Message,
			Code:  string(expenseErr.Code),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	slog.ErrorContext(ctx.Request.Context(), "expense request failed",
		"path", ctx.FullPath(),
		"user_id", userID.String(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForExpenseError maps expense error codes to HTTP status codes.
func (c *ExpenseController) getStatusCodeForExpenseError(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidExpenseAmount,
		domainerror.ErrCodeInvalidExpenseDate,
		domainerror.ErrCodeInvalidExpenseCategory,
		domainerror.ErrCodeInvalidExpenseTitle,
		domainerror.ErrCodeExpenseNotesTooLong,
		domainerror.ErrCodeMissingExpenseFields,
		domainerror.ErrCodeInvalidExpenseID:
		return http.StatusBadRequest
	case domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// requireUserID extracts the authenticated user ID, aborting with 401 when missing.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}
