// Package expense contains expense-related use cases.
package expense

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

const (
	// MaxTitleLength is the maximum allowed length for expense titles.
	MaxTitleLength = 100
	// MaxNotesLength is the maximum allowed length for expense notes.
	MaxNotesLength = 500
	// DefaultPageLimit is the page size used when none is given.
	DefaultPageLimit = 20
	// MaxPageLimit caps the page size.
	MaxPageLimit = 100
)

// MaxAmount is the largest accepted expense amount.
var MaxAmount = decimal.NewFromInt(1_000_000)

// ExpenseOutput represents a single expense in use case output.
type ExpenseOutput struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Amount    decimal.Decimal
	Date      time.Time
	Category  entity.ExpenseCategory
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func toExpenseOutput(e *entity.Expense) *ExpenseOutput {
	return &ExpenseOutput{
		ID:        e.ID,
		UserID:    e.UserID,
		Title:     e.Title,
		Amount:    e.Amount,
		Date:      e.Date,
		Category:  e.Category,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return "", domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseTitle,
			fmt.Sprintf("title must be between 1 and %d characters", MaxTitleLength),
			domainerror.ErrInvalidExpenseTitle,
		)
	}
	return title, nil
}

// validateAmount checks the (0, 1000000] bound and rounds to two places.
func validateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() || amount.GreaterThan(MaxAmount) {
		return decimal.Zero, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be greater than 0 and at most 1000000",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	rounded := valueobject.RoundMoney(amount)
	if !rounded.IsPositive() {
		return decimal.Zero, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be at least 0.01",
			domainerror.ErrInvalidExpenseAmount,
		)
	}
	return rounded, nil
}

// validateDate normalizes date to midnight UTC and rejects dates after today.
func validateDate(date, now time.Time) (time.Time, error) {
	if date.IsZero() {
		return time.Time{}, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"date is required",
			domainerror.ErrInvalidExpenseDate,
		)
	}
	date = startOfDay(date)
	if date.After(startOfDay(now)) {
		return time.Time{}, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"date cannot be in the future",
			domainerror.ErrInvalidExpenseDate,
		)
	}
	return date, nil
}

func validateCategory(category entity.ExpenseCategory) error {
	if !category.IsValid() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseCategory,
			"category must be one of the supported categories",
			domainerror.ErrInvalidExpenseCategory,
		)
	}
	return nil
}

func validateNotes(notes string) error {
	if utf8.RuneCountInString(notes) > MaxNotesLength {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseNotesTooLong,
			fmt.Sprintf("notes must not exceed %d characters", MaxNotesLength),
			domainerror.ErrExpenseNotesTooLong,
		)
	}
	return nil
}

// notFoundOr maps the repository's not-found sentinel to an ExpenseError.
func notFoundOr(err error, action string) error {
	if errors.Is(err, domainerror.ErrExpenseNotFound) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeExpenseNotFound,
			"expense not found",
			domainerror.ErrExpenseNotFound,
		)
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
