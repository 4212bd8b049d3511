package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetCategoryReportInput represents the input for the category report.
// StartDate and EndDate are inclusive calendar dates.
type GetCategoryReportInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// CategoryBucket is one category of the breakdown.
type CategoryBucket struct {
	Category    entity.ExpenseCategory
	TotalAmount decimal.Decimal
	Count       int64
	AvgAmount   decimal.Decimal
	Percentage  decimal.Decimal
}

// CategoryReportSummary holds the totals across all categories.
type CategoryReportSummary struct {
	GrandTotal      decimal.Decimal
	TotalCount      int64
	AvgExpense      decimal.Decimal
	CategoriesCount int
}

// GetCategoryReportOutput represents the category report.
type GetCategoryReportOutput struct {
	StartDate  time.Time
	EndDate    time.Time
	Summary    CategoryReportSummary
	Categories []CategoryBucket
}

// GetCategoryReportUseCase builds the spending breakdown by category for a date range.
type GetCategoryReportUseCase struct {
	reportRepo ReportRepository
}

// NewGetCategoryReportUseCase creates a new GetCategoryReportUseCase instance.
func NewGetCategoryReportUseCase(reportRepo ReportRepository) *GetCategoryReportUseCase {
	return &GetCategoryReportUseCase{
		reportRepo: reportRepo,
	}
}

// Execute computes the category report. Categories are ordered by total
// descending, ties by category name ascending.
func (uc *GetCategoryReportUseCase) Execute(
	ctx context.Context,
	input GetCategoryReportInput,
) (*GetCategoryReportOutput, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	window := InclusiveDateRange(input.StartDate, input.EndDate)
	expenses, err := uc.reportRepo.FindByUserAndDateRange(ctx, input.UserID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses for category report: %w", err)
	}

	grandTotal, totalCount := totals(expenses)

	categories := make([]CategoryBucket, 0)
	if !grandTotal.IsZero() {
		for _, agg := range groupByCategory(expenses) {
			categories = append(categories, CategoryBucket{
				Category:    agg.Category,
				TotalAmount: valueobject.RoundMoney(agg.Total),
				Count:       agg.Count,
				AvgAmount:   valueobject.Average(agg.Total, agg.Count),
				Percentage:  valueobject.Percentage(agg.Total, grandTotal),
			})
		}
	}

	return &GetCategoryReportOutput{
		StartDate: StartOfDay(input.StartDate),
		EndDate:   StartOfDay(input.EndDate),
		Summary: CategoryReportSummary{
			GrandTotal:      valueobject.RoundMoney(grandTotal),
			TotalCount:      totalCount,
			AvgExpense:      valueobject.Average(grandTotal, totalCount),
			CategoriesCount: len(categories),
		},
		Categories: categories,
	}, nil
}

// validateInput validates the input parameters.
func (uc *GetCategoryReportUseCase) validateInput(input GetCategoryReportInput) error {
	if input.StartDate.IsZero() {
		return domainerror.NewReportError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required",
			domainerror.ErrMissingStartDate,
		)
	}

	if input.EndDate.IsZero() {
		return domainerror.NewReportError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required",
			domainerror.ErrMissingEndDate,
		)
	}

	if StartOfDay(input.EndDate).Before(StartOfDay(input.StartDate)) {
		return domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must not be before start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return nil
}
