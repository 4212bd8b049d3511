package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// GetExpenseInput represents the input for fetching one expense.
type GetExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
}

// GetExpenseUseCase returns a single expense owned by the caller.
type GetExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewGetExpenseUseCase creates a new GetExpenseUseCase instance.
func NewGetExpenseUseCase(expenseRepo adapter.ExpenseRepository) *GetExpenseUseCase {
	return &GetExpenseUseCase{expenseRepo: expenseRepo}
}

// Execute fetches the expense. Expenses of other users read as not found.
func (uc *GetExpenseUseCase) Execute(ctx context.Context, input GetExpenseInput) (*ExpenseOutput, error) {
	expense, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID, input.UserID)
	if err != nil {
		return nil, notFoundOr(err, "find expense")
	}
	return toExpenseOutput(expense), nil
}
