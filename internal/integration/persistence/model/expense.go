// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_date"`
	Title     string          `gorm:"type:varchar(100);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Date      time.Time       `gorm:"type:date;not null;index:idx_expenses_user_date"`
	Category  string          `gorm:"type:varchar(20);not null;index"`
	Notes     string          `gorm:"type:varchar(500)"`
	CreatedAt time.Time       `gorm:"not null;index"`
	UpdatedAt time.Time       `gorm:"not null"`
	DeletedAt gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Expense{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Amount:    m.Amount,
		Date:      m.Date.UTC(),
		Category:  entity.ExpenseCategory(m.Category),
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(e *entity.Expense) *ExpenseModel {
	m := &ExpenseModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Amount:    e.Amount,
		Date:      e.Date,
		Category:  string(e.Category),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
	if e.DeletedAt != nil {
		m.DeletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	}
	return m
}

// ExpensesToEntities converts a slice of models.
func ExpensesToEntities(models []ExpenseModel) []*entity.Expense {
	expenses := make([]*entity.Expense, len(models))
	for i := range models {
		expenses[i] = models[i].ToEntity()
	}
	return expenses
}
