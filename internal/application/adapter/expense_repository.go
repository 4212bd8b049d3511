// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseFilter holds the optional filters for listing expenses.
// StartDate and EndDate are inclusive calendar dates.
type ExpenseFilter struct {
	Category  *entity.ExpenseCategory
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	Limit     int
}

// ExpenseRepository defines the interface for expense persistence operations.
// Every method is scoped to a single owner.
type ExpenseRepository interface {
	// Create persists a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID returns the expense with id owned by userID, or domainerror.ErrExpenseNotFound.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Expense, error)

	// FindByUser returns one page of a user's expenses, newest date first.
	FindByUser(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) (*entity.ExpenseListResult, error)

	// Update saves changes to an existing expense.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete soft-deletes the expense with id owned by userID.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
