package report

import (
	"strconv"
	"strings"
	"time"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	// DefaultTrendDays is used when days is absent, non-numeric or not positive.
	DefaultTrendDays = 30

	// TopCategoriesLimit bounds the top categories lists.
	TopCategoriesLimit = 5

	// RecentExpensesLimit bounds the recent expenses list of the summary.
	RecentExpensesLimit = 5

	minYear = 1900
	maxYear = 9999
)

// DateLayout is the calendar date format accepted and emitted by reports.
const DateLayout = "2006-01-02"

// StartOfDay truncates t to midnight UTC of its calendar date.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// InclusiveDateRange converts the inclusive calendar range [start, end] into a half-open range.
func InclusiveDateRange(start, end time.Time) TimeRange {
	return TimeRange{
		Start: StartOfDay(start),
		End:   StartOfDay(end).AddDate(0, 0, 1),
	}
}

// YearRange returns [year-01-01, (year+1)-01-01).
func YearRange(year int) TimeRange {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return TimeRange{Start: start, End: start.AddDate(1, 0, 0)}
}

// MonthRange returns the half-open range covering the calendar month containing t.
func MonthRange(t time.Time) TimeRange {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return TimeRange{Start: start, End: start.AddDate(0, 1, 0)}
}

// ParseDate parses a YYYY-MM-DD query value. An empty value yields the zero time.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateFormat,
			"invalid date format, expected YYYY-MM-DD",
			domainerror.ErrInvalidDateFormat,
		)
	}
	return t, nil
}

// ParseYear parses the year query value. An empty value yields 0, meaning "current year".
func ParseYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < minYear || year > maxYear {
		return 0, domainerror.NewReportError(
			domainerror.ErrCodeInvalidYear,
			"year must be an integer between 1900 and 9999",
			domainerror.ErrInvalidYear,
		)
	}
	return year, nil
}

// ParseDays parses the days query value, silently falling back to DefaultTrendDays.
func ParseDays(raw string) int {
	days, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || days <= 0 {
		return DefaultTrendDays
	}
	return days
}
