// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense does not exist or belongs to another user.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidExpenseAmount is returned when the amount is not in (0, 1000000].
	ErrInvalidExpenseAmount = errors.New("invalid expense amount")

	// ErrInvalidExpenseDate is returned when the date is missing or in the future.
	ErrInvalidExpenseDate = errors.New("invalid expense date")

	// ErrInvalidExpenseCategory is returned when the category is not one of the fixed set.
	ErrInvalidExpenseCategory = errors.New("invalid expense category")

	// ErrInvalidExpenseTitle is returned when the title is empty or too long.
	ErrInvalidExpenseTitle = errors.New("invalid expense title")

	// ErrExpenseNotesTooLong is returned when notes exceed the maximum length.
	ErrExpenseNotesTooLong = errors.New("notes too long")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount   ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseDate     ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidExpenseCategory ExpenseErrorCode = "EXP-010003"
	ErrCodeInvalidExpenseTitle    ExpenseErrorCode = "EXP-010004"
	ErrCodeExpenseNotesTooLong    ExpenseErrorCode = "EXP-010005"
	ErrCodeMissingExpenseFields   ExpenseErrorCode = "EXP-010006"
	ErrCodeInvalidExpenseID       ExpenseErrorCode = "EXP-010007"

	// Lookup errors (02XXXX)
	ErrCodeExpenseNotFound ExpenseErrorCode = "EXP-020001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
