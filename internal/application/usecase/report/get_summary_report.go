package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetSummaryReportInput represents the input for the summary report.
type GetSummaryReportInput struct {
	UserID uuid.UUID
}

// SummaryOverview holds statistics over every expense the user owns.
type SummaryOverview struct {
	TotalAmount decimal.Decimal
	Count       int64
	AvgAmount   decimal.Decimal
	MinAmount   decimal.Decimal
	MaxAmount   decimal.Decimal
}

// SummaryCurrentMonth holds totals for the current calendar month.
type SummaryCurrentMonth struct {
	Month       time.Time
	TotalAmount decimal.Decimal
	Count       int64
}

// RecentExpense is the reduced projection of an expense shown in the summary.
type RecentExpense struct {
	Title    string
	Amount   decimal.Decimal
	Date     time.Time
	Category entity.ExpenseCategory
}

// GetSummaryReportOutput represents the summary report.
type GetSummaryReportOutput struct {
	Overview       SummaryOverview
	CurrentMonth   SummaryCurrentMonth
	TopCategories  []CategoryTotal
	RecentExpenses []RecentExpense
}

// GetSummaryReportUseCase builds the global snapshot of a user's spending.
type GetSummaryReportUseCase struct {
	reportRepo ReportRepository
	clock      adapter.Clock
}

// NewGetSummaryReportUseCase creates a new GetSummaryReportUseCase instance.
func NewGetSummaryReportUseCase(reportRepo ReportRepository, clock adapter.Clock) *GetSummaryReportUseCase {
	return &GetSummaryReportUseCase{
		reportRepo: reportRepo,
		clock:      clock,
	}
}

// Execute runs the four independent aggregations concurrently. The first
// failure cancels the others and is returned.
func (uc *GetSummaryReportUseCase) Execute(
	ctx context.Context,
	input GetSummaryReportInput,
) (*GetSummaryReportOutput, error) {
	month := MonthRange(uc.clock.Now())

	var (
		overview     SummaryOverview
		currentMonth SummaryCurrentMonth
		top          []CategoryTotal
		recent       []RecentExpense
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		expenses, err := uc.reportRepo.FindAllByUser(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to get overview: %w", err)
		}
		overview = buildOverview(expenses)
		return nil
	})

	g.Go(func() error {
		expenses, err := uc.reportRepo.FindByUserAndDateRange(gctx, input.UserID, month.Start, month.End)
		if err != nil {
			return fmt.Errorf("failed to get current month: %w", err)
		}
		total, count := totals(expenses)
		currentMonth = SummaryCurrentMonth{
			Month:       month.Start,
			TotalAmount: valueobject.RoundMoney(total),
			Count:       count,
		}
		return nil
	})

	g.Go(func() error {
		aggregates, err := uc.reportRepo.AggregateByCategory(gctx, input.UserID, nil)
		if err != nil {
			return fmt.Errorf("failed to get top categories: %w", err)
		}
		top = topCategories(aggregates, TopCategoriesLimit)
		return nil
	})

	g.Go(func() error {
		expenses, err := uc.reportRepo.FindRecentByUser(gctx, input.UserID, RecentExpensesLimit)
		if err != nil {
			return fmt.Errorf("failed to get recent expenses: %w", err)
		}
		recent = make([]RecentExpense, 0, len(expenses))
		for _, e := range expenses {
			recent = append(recent, RecentExpense{
				Title:    e.Title,
				Amount:   valueobject.RoundMoney(e.Amount),
				Date:     StartOfDay(e.Date),
				Category: e.Category,
			})
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GetSummaryReportOutput{
		Overview:       overview,
		CurrentMonth:   currentMonth,
		TopCategories:  top,
		RecentExpenses: recent,
	}, nil
}

func buildOverview(expenses []*entity.Expense) SummaryOverview {
	if len(expenses) == 0 {
		return SummaryOverview{
			TotalAmount: decimal.Zero,
			AvgAmount:   decimal.Zero,
			MinAmount:   decimal.Zero,
			MaxAmount:   decimal.Zero,
		}
	}

	total, count := totals(expenses)
	minAmount, maxAmount := expenses[0].Amount, expenses[0].Amount
	for _, e := range expenses[1:] {
		minAmount = decimal.Min(minAmount, e.Amount)
		maxAmount = decimal.Max(maxAmount, e.Amount)
	}

	return SummaryOverview{
		TotalAmount: valueobject.RoundMoney(total),
		Count:       count,
		AvgAmount:   valueobject.Average(total, count),
		MinAmount:   valueobject.RoundMoney(minAmount),
		MaxAmount:   valueobject.RoundMoney(maxAmount),
	}
}
