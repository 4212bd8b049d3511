// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseCategory is one of the fixed expense categories.
type ExpenseCategory string

const (
	CategoryFood           ExpenseCategory = "Food"
	CategoryTransportation ExpenseCategory = "Transportation"
	CategoryEntertainment  ExpenseCategory = "Entertainment"
	CategoryHealthcare     ExpenseCategory = "Healthcare"
	CategoryShopping       ExpenseCategory = "Shopping"
	CategoryUtilities      ExpenseCategory = "Utilities"
	CategoryEducation      ExpenseCategory = "Education"
	CategoryTravel         ExpenseCategory = "Travel"
	CategoryOther          ExpenseCategory = "Other"
)

// AllCategories lists every valid category in declaration order.
var AllCategories = []ExpenseCategory{
	CategoryFood,
	CategoryTransportation,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryShopping,
	CategoryUtilities,
	CategoryEducation,
	CategoryTravel,
	CategoryOther,
}

// IsValid reports whether c belongs to the closed category set.
func (c ExpenseCategory) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense represents a single expense recorded by a user.
type Expense struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Amount    decimal.Decimal
	Date      time.Time
	Category  ExpenseCategory
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewExpense creates a new Expense entity stamped with the given creation time.
func NewExpense(
	userID uuid.UUID,
	title string,
	amount decimal.Decimal,
	date time.Time,
	category ExpenseCategory,
	notes string,
	now time.Time,
) *Expense {
	now = now.UTC()

	return &Expense{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Amount:    amount,
		Date:      date,
		Category:  category,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ExpenseListResult represents a page of expenses.
type ExpenseListResult struct {
	Expenses   []*Expense
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}
