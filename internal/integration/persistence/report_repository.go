// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// reportRepository implements the report.ReportRepository interface.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance.
func NewReportRepository(db *gorm.DB) report.ReportRepository {
	return &reportRepository{
		db: db,
	}
}

// FindByUserAndDateRange returns the user's expenses dated in [start, end).
func (r *reportRepository) FindByUserAndDateRange(
	ctx context.Context,
	userID uuid.UUID,
	start, end time.Time,
) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date >= ? AND date < ?", start.UTC(), end.UTC()).
		Order("date ASC").
		Find(&expenseModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses by date range: %w", err)
	}
	return model.ExpensesToEntities(expenseModels), nil
}

// AggregateByCategory groups the user's expenses by category in the database.
func (r *reportRepository) AggregateByCategory(
	ctx context.Context,
	userID uuid.UUID,
	window *report.TimeRange,
) ([]report.CategoryAggregate, error) {
	var results []struct {
		Category string          `gorm:"column:category"`
		Total    decimal.Decimal `gorm:"column:total"`
		Count    int64           `gorm:"column:count"`
	}

	query := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Where("user_id = ?", userID)
	if window != nil {
		query = query.Where("date >= ? AND date < ?", window.Start.UTC(), window.End.UTC())
	}

	err := query.Group("category").Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses by category: %w", err)
	}

	aggregates := make([]report.CategoryAggregate, len(results))
	for i, res := range results {
		aggregates[i] = report.CategoryAggregate{
			Category: entity.ExpenseCategory(res.Category),
			Total:    res.Total,
			Count:    res.Count,
		}
	}
	return aggregates, nil
}

// FindRecentByUser returns the user's most recently created expenses.
func (r *reportRepository) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&expenseModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recent expenses: %w", err)
	}
	return model.ExpensesToEntities(expenseModels), nil
}

// FindAllByUser returns every expense the user owns.
func (r *reportRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	var expenseModels []model.ExpenseModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&expenseModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	return model.ExpensesToEntities(expenseModels), nil
}
