// Package report contains the expense reporting use cases: category, monthly,
// trend and summary reports over a single user's expenses.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// CategoryAggregate is a store-side grouped total for one category.
type CategoryAggregate struct {
	Category entity.ExpenseCategory
	Total    decimal.Decimal
	Count    int64
}

// ReportRepository defines the read primitives the reports are computed from.
// Every method filters by exactly one user.
type ReportRepository interface {
	// FindByUserAndDateRange returns the user's expenses whose date is in [start, end).
	FindByUserAndDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error)

	// AggregateByCategory groups the user's expenses by category, optionally restricted to a date range.
	// Results are not ordered.
	AggregateByCategory(ctx context.Context, userID uuid.UUID, window *TimeRange) ([]CategoryAggregate, error)

	// FindRecentByUser returns the user's most recently created expenses, newest first.
	FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Expense, error)

	// FindAllByUser returns every expense the user owns.
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error)
}
