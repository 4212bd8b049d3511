// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Report domain errors.
var (
	// ErrMissingStartDate is returned when start_date is not provided.
	ErrMissingStartDate = errors.New("start_date is required")

	// ErrMissingEndDate is returned when end_date is not provided.
	ErrMissingEndDate = errors.New("end_date is required")

	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")

	// ErrInvalidDateFormat is returned when a date is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidYear is returned when the year parameter is not a usable calendar year.
	ErrInvalidYear = errors.New("year must be an integer between 1900 and 9999")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStartDate  ReportErrorCode = "RPT-010001"
	ErrCodeMissingEndDate    ReportErrorCode = "RPT-010002"
	ErrCodeInvalidDateRange  ReportErrorCode = "RPT-010003"
	ErrCodeInvalidDateFormat ReportErrorCode = "RPT-010004"
	ErrCodeInvalidYear       ReportErrorCode = "RPT-010005"

	// Internal errors (99XXXX)
	ErrCodeReportInternalError ReportErrorCode = "RPT-990001"
)

// ReportError represents a report validation error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
