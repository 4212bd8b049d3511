// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// expenseRepository implements the adapter.ExpenseRepository interface.
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository instance.
func NewExpenseRepository(db *gorm.DB) adapter.ExpenseRepository {
	return &expenseRepository{
		db: db,
	}
}

// Create creates a new expense in the database.
func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(model.ExpenseFromEntity(expense)).Error
}

// FindByID retrieves an expense by ID, scoped to its owner.
func (r *expenseRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Expense, error) {
	var expenseModel model.ExpenseModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&expenseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrExpenseNotFound
		}
		return nil, result.Error
	}
	return expenseModel.ToEntity(), nil
}

// FindByUser retrieves a page of the user's expenses.
func (r *expenseRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter adapter.ExpenseFilter) (*entity.ExpenseListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.ExpenseModel{}).Where("user_id = ?", userID)

	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate.UTC())
	}
	if filter.EndDate != nil {
		query = query.Where("date < ?", filter.EndDate.UTC().AddDate(0, 0, 1))
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (filter.Page - 1) * filter.Limit
	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var expenseModels []model.ExpenseModel
	result := query.
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&expenseModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entity.ExpenseListResult{
		Expenses:   model.ExpensesToEntities(expenseModels),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// Update updates an existing expense in the database.
func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	result := r.db.WithContext(ctx).
		Model(&model.ExpenseModel{}).
		Where("id = ? AND user_id = ?", expense.ID, expense.UserID).
		Updates(map[string]any{
			"title":      expense.Title,
			"amount":     expense.Amount,
			"date":       expense.Date,
			"category":   string(expense.Category),
			"notes":      expense.Notes,
			"updated_at": expense.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}

// Delete soft-deletes an expense owned by userID.
func (r *expenseRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ExpenseModel{}, "id = ? AND user_id = ?", id, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrExpenseNotFound
	}
	return nil
}
