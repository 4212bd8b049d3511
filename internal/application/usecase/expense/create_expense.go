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

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID   uuid.UUID
	Title    string
	Amount   decimal.Decimal
	Date     time.Time
	Category entity.ExpenseCategory
	Notes    string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *ExpenseOutput
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
	clock       adapter.Clock
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(expenseRepo adapter.ExpenseRepository, clock adapter.Clock) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
		clock:       clock,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	now := uc.clock.Now()

	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}

	amount, err := validateAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	date, err := validateDate(input.Date, now)
	if err != nil {
		return nil, err
	}

	if err := validateCategory(input.Category); err != nil {
		return nil, err
	}

	if err := validateNotes(input.Notes); err != nil {
		return nil, err
	}

	expense := entity.NewExpense(input.UserID, title, amount, date, input.Category, input.Notes, now)

	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return &CreateExpenseOutput{Expense: toExpenseOutput(expense)}, nil
}
