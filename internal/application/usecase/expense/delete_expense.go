package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DeleteExpenseInput represents the input for expense deletion.
type DeleteExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
}

// DeleteExpenseUseCase handles expense deletion logic.
type DeleteExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewDeleteExpenseUseCase creates a new DeleteExpenseUseCase instance.
func NewDeleteExpenseUseCase(expenseRepo adapter.ExpenseRepository) *DeleteExpenseUseCase {
	return &DeleteExpenseUseCase{expenseRepo: expenseRepo}
}

// Execute soft-deletes the expense.
func (uc *DeleteExpenseUseCase) Execute(ctx context.Context, input DeleteExpenseInput) error {
	if err := uc.expenseRepo.Delete(ctx, input.ExpenseID, input.UserID); err != nil {
		return notFoundOr(err, "delete expense")
	}
	return nil
}
