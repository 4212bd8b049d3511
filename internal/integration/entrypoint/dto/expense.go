package dto

import (
	"time"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// CreateExpenseRequest represents the request body for creating an expense.
type CreateExpenseRequest struct {
	Title    string   `json:"title" binding:"required"`
	Amount   *float64 `json:"amount" binding:"required"`
	Date     string   `json:"date" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Notes    string   `json:"notes"`
}

// UpdateExpenseRequest represents the request body for a partial expense update.
type UpdateExpenseRequest struct {
	Title    *string  `json:"title"`
	Amount   *float64 `json:"amount"`
	Date     *string  `json:"date"`
	Category *string  `json:"category"`
	Notes    *string  `json:"notes"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"`
	Category  string    `json:"category"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaginationResponse represents pagination metadata.
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ExpenseListResponse represents the response for listing expenses.
type ExpenseListResponse struct {
	Expenses   []ExpenseResponse  `json:"expenses"`
	Pagination PaginationResponse `json:"pagination"`
}

// CategoriesResponse lists the accepted expense categories.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ToExpenseResponse converts an expense use case output to an ExpenseResponse DTO.
func ToExpenseResponse(output *expense.ExpenseOutput) ExpenseResponse {
	return ExpenseResponse{
		ID:        output.ID.String(),
		Title:     output.Title,
		Amount:    valueobject.ToFloat(output.Amount),
		Date:      output.Date.Format(DateLayout),
		Category:  string(output.Category),
		Notes:     output.Notes,
		CreatedAt: output.CreatedAt,
		UpdatedAt: output.UpdatedAt,
	}
}

// ToExpenseListResponse converts the list use case output to an ExpenseListResponse DTO.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, 0, len(output.Expenses))
	for _, e := range output.Expenses {
		expenses = append(expenses, ToExpenseResponse(e))
	}
	return ExpenseListResponse{
		Expenses: expenses,
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}

// ToCategoriesResponse lists every category in declaration order.
func ToCategoriesResponse() CategoriesResponse {
	categories := make([]string, 0, len(entity.AllCategories))
	for _, c := range entity.AllCategories {
		categories = append(categories, string(c))
	}
	return CategoriesResponse{Categories: categories}
}
