package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetTrendReportInput represents the input for the trend report.
// Days not greater than zero falls back to DefaultTrendDays.
type GetTrendReportInput struct {
	UserID uuid.UUID
	Days   int
}

// DayBucket is one active day of the trend.
type DayBucket struct {
	Date            time.Time
	TotalAmount     decimal.Decimal
	Count           int64
	CategoriesCount int
}

// TrendReportSummary holds the totals for the window.
type TrendReportSummary struct {
	PeriodTotal  decimal.Decimal
	PeriodCount  int64
	DailyAverage decimal.Decimal
	ActiveDays   int
}

// GetTrendReportOutput represents the trend report.
type GetTrendReportOutput struct {
	Days          int
	StartDate     time.Time
	EndDate       time.Time
	Summary       TrendReportSummary
	DailyTrends   []DayBucket
	TopCategories []CategoryTotal
}

// GetTrendReportUseCase builds the rolling-window daily trend.
type GetTrendReportUseCase struct {
	reportRepo ReportRepository
	clock      adapter.Clock
}

// NewGetTrendReportUseCase creates a new GetTrendReportUseCase instance.
func NewGetTrendReportUseCase(reportRepo ReportRepository, clock adapter.Clock) *GetTrendReportUseCase {
	return &GetTrendReportUseCase{
		reportRepo: reportRepo,
		clock:      clock,
	}
}

// Execute computes the trend report over the trailing window.
// The window starts exactly Days calendar days before now (not at midnight)
// and runs through the end of today. When that start falls on a midnight the
// day it opens is excluded, so the window never spans more than Days dates.
// Days without expenses are omitted, and the daily average divides by the
// number of active days.
func (uc *GetTrendReportUseCase) Execute(
	ctx context.Context,
	input GetTrendReportInput,
) (*GetTrendReportOutput, error) {
	days := input.Days
	if days <= 0 {
		days = DefaultTrendDays
	}

	now := uc.clock.Now().UTC()
	start := now.AddDate(0, 0, -days)
	if start.Equal(StartOfDay(start)) {
		start = start.AddDate(0, 0, 1)
	}
	end := StartOfDay(now).AddDate(0, 0, 1)

	expenses, err := uc.reportRepo.FindByUserAndDateRange(ctx, input.UserID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses for trend report: %w", err)
	}

	grouped := groupByDay(expenses)

	dailyTrends := make([]DayBucket, 0, len(grouped))
	periodTotal := decimal.Zero
	var periodCount int64
	for _, acc := range grouped {
		dailyTrends = append(dailyTrends, DayBucket{
			Date:            acc.day,
			TotalAmount:     valueobject.RoundMoney(acc.total),
			Count:           acc.count,
			CategoriesCount: len(acc.categories),
		})
		periodTotal = periodTotal.Add(acc.total)
		periodCount += acc.count
	}

	activeDays := len(dailyTrends)

	return &GetTrendReportOutput{
		Days:      days,
		StartDate: start,
		EndDate:   now,
		Summary: TrendReportSummary{
			PeriodTotal:  valueobject.RoundMoney(periodTotal),
			PeriodCount:  periodCount,
			DailyAverage: valueobject.Average(periodTotal, int64(activeDays)),
			ActiveDays:   activeDays,
		},
		DailyTrends:   dailyTrends,
		TopCategories: topCategories(groupByCategory(expenses), TopCategoriesLimit),
	}, nil
}
