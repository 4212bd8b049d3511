package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

var monthsPerYear = decimal.NewFromInt(12)

// GetMonthlyReportInput represents the input for the monthly report.
// A zero Year means the current year.
type GetMonthlyReportInput struct {
	UserID uuid.UUID
	Year   int
}

// MonthBucket is one calendar month of the breakdown.
type MonthBucket struct {
	Month       int
	MonthName   string
	TotalAmount decimal.Decimal
	Count       int64
	AvgAmount   decimal.Decimal
}

// MonthlyReportSummary holds the yearly totals.
type MonthlyReportSummary struct {
	YearlyTotal    decimal.Decimal
	YearlyCount    int64
	MonthlyAverage decimal.Decimal
	ActiveMonths   int
}

// GetMonthlyReportOutput represents the monthly report. Months always holds 12 entries.
type GetMonthlyReportOutput struct {
	Year    int
	Summary MonthlyReportSummary
	Months  []MonthBucket
}

// GetMonthlyReportUseCase builds the month-by-month breakdown of a calendar year.
type GetMonthlyReportUseCase struct {
	reportRepo ReportRepository
	clock      adapter.Clock
}

// NewGetMonthlyReportUseCase creates a new GetMonthlyReportUseCase instance.
func NewGetMonthlyReportUseCase(reportRepo ReportRepository, clock adapter.Clock) *GetMonthlyReportUseCase {
	return &GetMonthlyReportUseCase{
		reportRepo: reportRepo,
		clock:      clock,
	}
}

// Execute computes the monthly report. The monthly average divides by 12
// regardless of how many months had activity.
func (uc *GetMonthlyReportUseCase) Execute(
	ctx context.Context,
	input GetMonthlyReportInput,
) (*GetMonthlyReportOutput, error) {
	year := input.Year
	if year == 0 {
		year = uc.clock.Now().UTC().Year()
	}
	if year < minYear || year > maxYear {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeInvalidYear,
			"year must be an integer between 1900 and 9999",
			domainerror.ErrInvalidYear,
		)
	}

	window := YearRange(year)
	expenses, err := uc.reportRepo.FindByUserAndDateRange(ctx, input.UserID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses for monthly report: %w", err)
	}

	grouped := groupByMonth(expenses)

	months := make([]MonthBucket, 0, len(grouped))
	yearlyTotal := decimal.Zero
	var yearlyCount int64
	activeMonths := 0
	for i, acc := range grouped {
		month := time.Month(i + 1)
		months = append(months, MonthBucket{
			Month:       int(month),
			MonthName:   month.String(),
			TotalAmount: valueobject.RoundMoney(acc.total),
			Count:       acc.count,
			AvgAmount:   valueobject.Average(acc.total, acc.count),
		})

		yearlyTotal = yearlyTotal.Add(acc.total)
		yearlyCount += acc.count
		if acc.count > 0 {
			activeMonths++
		}
	}

	return &GetMonthlyReportOutput{
		Year: year,
		Summary: MonthlyReportSummary{
			YearlyTotal:    valueobject.RoundMoney(yearlyTotal),
			YearlyCount:    yearlyCount,
			MonthlyAverage: valueobject.RoundMoney(valueobject.DivideOrZero(yearlyTotal, monthsPerYear)),
			ActiveMonths:   activeMonths,
		},
		Months: months,
	}, nil
}
