package expense

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UpdateExpenseInput represents the input for expense update. Nil fields are left unchanged.
type UpdateExpenseInput struct {
	ExpenseID uuid.UUID
	UserID    uuid.UUID
	Title     *string
	Amount    *decimal.Decimal
	Date      *time.Time
	Category  *entity.ExpenseCategory
	Notes     *string
}

// UpdateExpenseUseCase handles partial expense updates.
type UpdateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	clock       adapter.Clock
}

// NewUpdateExpenseUseCase creates a new UpdateExpenseUseCase instance.
func NewUpdateExpenseUseCase(expenseRepo adapter.ExpenseRepository, clock adapter.Clock) *UpdateExpenseUseCase {
	return &UpdateExpenseUseCase{
		expenseRepo: expenseRepo,
		clock:       clock,
	}
}

// Execute performs the expense update.
func (uc *UpdateExpenseUseCase) Execute(ctx context.Context, input UpdateExpenseInput) (*ExpenseOutput, error) {
	expense, err := uc.expenseRepo.FindByID(ctx, input.ExpenseID, input.UserID)
	if err != nil {
		return nil, notFoundOr(err, "find expense")
	}

	now := uc.clock.Now()

	if input.Title != nil {
		title, err := validateTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		expense.Title = title
	}

	if input.Amount != nil {
		amount, err := validateAmount(*input.Amount)
		if err != nil {
			return nil, err
		}
		expense.Amount = amount
	}

	if input.Date != nil {
		date, err := validateDate(*input.Date, now)
		if err != nil {
			return nil, err
		}
		expense.Date = date
	}

	if input.Category != nil {
		if err := validateCategory(*input.Category); err != nil {
			return nil, err
		}
		expense.Category = *input.Category
	}

	if input.Notes != nil {
		if err := validateNotes(*input.Notes); err != nil {
			return nil, err
		}
		expense.Notes = *input.Notes
	}

	expense.UpdatedAt = now.UTC()

	if err := uc.expenseRepo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return toExpenseOutput(expense), nil
}
