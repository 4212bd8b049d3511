package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	UserID    uuid.UUID
	Category  *entity.ExpenseCategory
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses   []*ExpenseOutput
	Pagination PaginationOutput
}

// ListExpensesUseCase handles listing a user's expenses.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{expenseRepo: expenseRepo}
}

// Execute lists one page of expenses matching the filters.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = DefaultPageLimit
	}
	if input.Limit > MaxPageLimit {
		input.Limit = MaxPageLimit
	}

	if input.Category != nil {
		if err := validateCategory(*input.Category); err != nil {
			return nil, err
		}
	}

	if input.StartDate != nil && input.EndDate != nil && input.EndDate.Before(*input.StartDate) {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"end_date must not be before start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	result, err := uc.expenseRepo.FindByUser(ctx, input.UserID, adapter.ExpenseFilter{
		Category:  input.Category,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Page:      input.Page,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	expenses := make([]*ExpenseOutput, 0, len(result.Expenses))
	for _, e := range result.Expenses {
		expenses = append(expenses, toExpenseOutput(e))
	}

	return &ListExpensesOutput{
		Expenses: expenses,
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}
