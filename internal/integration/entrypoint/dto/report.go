package dto

import (
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CategoryBucketResponse is one category of the category report.
type CategoryBucketResponse struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
	AvgAmount   float64 `json:"avg_amount"`
	Percentage  float64 `json:"percentage"`
}

// CategoryReportSummaryResponse holds the category report totals.
type CategoryReportSummaryResponse struct {
	GrandTotal      float64 `json:"grand_total"`
	TotalCount      int64   `json:"total_count"`
	AvgExpense      float64 `json:"avg_expense"`
	CategoriesCount int     `json:"categories_count"`
}

// ReportPeriodResponse is an inclusive calendar range.
type ReportPeriodResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CategoryReportResponse represents the response for GET /reports/category.
type CategoryReportResponse struct {
	Period     ReportPeriodResponse          `json:"period"`
	Summary    CategoryReportSummaryResponse `json:"summary"`
	Categories []CategoryBucketResponse      `json:"categories"`
}

// MonthBucketResponse is one month of the monthly report.
type MonthBucketResponse struct {
	Month       int     `json:"month"`
	MonthName   string  `json:"month_name"`
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
	AvgAmount   float64 `json:"avg_amount"`
}

// MonthlyReportSummaryResponse holds the yearly totals.
type MonthlyReportSummaryResponse struct {
	YearlyTotal    float64 `json:"yearly_total"`
	YearlyCount    int64   `json:"yearly_count"`
	MonthlyAverage float64 `json:"monthly_average"`
	ActiveMonths   int     `json:"active_months"`
}

// MonthlyReportResponse represents the response for GET /reports/monthly.
type MonthlyReportResponse struct {
	Year    int                          `json:"year"`
	Summary MonthlyReportSummaryResponse `json:"summary"`
	Months  []MonthBucketResponse        `json:"months"`
}

// DayBucketResponse is one active day of the trend report.
type DayBucketResponse struct {
	Date            string  `json:"date"`
	TotalAmount     float64 `json:"total_amount"`
	Count           int64   `json:"count"`
	CategoriesCount int     `json:"categories_count"`
}

// TrendReportSummaryResponse holds the trend window totals.
type TrendReportSummaryResponse struct {
	PeriodTotal  float64 `json:"period_total"`
	PeriodCount  int64   `json:"period_count"`
	DailyAverage float64 `json:"daily_average"`
	ActiveDays   int     `json:"active_days"`
}

// CategoryTotalResponse is an entry of a top categories list.
type CategoryTotalResponse struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
	AvgAmount   float64 `json:"avg_amount"`
}

// TrendReportResponse represents the response for GET /reports/trends.
type TrendReportResponse struct {
	Days          int                        `json:"days"`
	Period        ReportPeriodResponse       `json:"period"`
	Summary       TrendReportSummaryResponse `json:"summary"`
	DailyTrends   []DayBucketResponse        `json:"daily_trends"`
	TopCategories []CategoryTotalResponse    `json:"top_categories"`
}

// SummaryOverviewResponse holds lifetime statistics.
type SummaryOverviewResponse struct {
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
	AvgAmount   float64 `json:"avg_amount"`
	MinAmount   float64 `json:"min_amount"`
	MaxAmount   float64 `json:"max_amount"`
}

// SummaryCurrentMonthResponse holds current month totals.
type SummaryCurrentMonthResponse struct {
	Month       string  `json:"month"`
	TotalAmount float64 `json:"total_amount"`
	Count       int64   `json:"count"`
}

// RecentExpenseResponse is a reduced expense shown in the summary.
type RecentExpenseResponse struct {
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
}

// SummaryReportResponse represents the response for GET /reports/summary.
type SummaryReportResponse struct {
	Overview       SummaryOverviewResponse     `json:"overview"`
	CurrentMonth   SummaryCurrentMonthResponse `json:"current_month"`
	TopCategories  []CategoryTotalResponse     `json:"top_categories"`
	RecentExpenses []RecentExpenseResponse     `json:"recent_expenses"`
}

// ToCategoryReportResponse converts the category report output to its DTO.
func ToCategoryReportResponse(output *report.GetCategoryReportOutput) CategoryReportResponse {
	categories := make([]CategoryBucketResponse, 0, len(output.Categories))
	for _, c := range output.Categories {
		categories = append(categories, CategoryBucketResponse{
			Category:    string(c.Category),
			TotalAmount: valueobject.ToFloat(c.TotalAmount),
			Count:       c.Count,
			AvgAmount:   valueobject.ToFloat(c.AvgAmount),
			Percentage:  valueobject.ToFloat(c.Percentage),
		})
	}

	return CategoryReportResponse{
		Period: ReportPeriodResponse{
			StartDate: output.StartDate.Format(DateLayout),
			EndDate:   output.EndDate.Format(DateLayout),
		},
		Summary: CategoryReportSummaryResponse{
			GrandTotal:      valueobject.ToFloat(output.Summary.GrandTotal),
			TotalCount:      output.Summary.TotalCount,
			AvgExpense:      valueobject.ToFloat(output.Summary.AvgExpense),
			CategoriesCount: output.Summary.CategoriesCount,
		},
		Categories: categories,
	}
}

// ToMonthlyReportResponse converts the monthly report output to its DTO.
func ToMonthlyReportResponse(output *report.GetMonthlyReportOutput) MonthlyReportResponse {
	months := make([]MonthBucketResponse, 0, len(output.Months))
	for _, m := range output.Months {
		months = append(months, MonthBucketResponse{
			Month:       m.Month,
			MonthName:   m.MonthName,
			TotalAmount: valueobject.ToFloat(m.TotalAmount),
			Count:       m.Count,
			AvgAmount:   valueobject.ToFloat(m.AvgAmount),
		})
	}

	return MonthlyReportResponse{
		Year: output.Year,
		Summary: MonthlyReportSummaryResponse{
			YearlyTotal:    valueobject.ToFloat(output.Summary.YearlyTotal),
			YearlyCount:    output.Summary.YearlyCount,
			MonthlyAverage: valueobject.ToFloat(output.Summary.MonthlyAverage),
			ActiveMonths:   output.Summary.ActiveMonths,
		},
		Months: months,
	}
}

// ToTrendReportResponse converts the trend report output to its DTO.
func ToTrendReportResponse(output *report.GetTrendReportOutput) TrendReportResponse {
	days := make([]DayBucketResponse, 0, len(output.DailyTrends))
	for _, d := range output.DailyTrends {
		days = append(days, DayBucketResponse{
			Date:            d.Date.Format(DateLayout),
			TotalAmount:     valueobject.ToFloat(d.TotalAmount),
			Count:           d.Count,
			CategoriesCount: d.CategoriesCount,
		})
	}

	return TrendReportResponse{
		Days: output.Days,
		Period: ReportPeriodResponse{
			StartDate: output.StartDate.Format(DateLayout),
			EndDate:   output.EndDate.Format(DateLayout),
		},
		Summary: TrendReportSummaryResponse{
			PeriodTotal:  valueobject.ToFloat(output.Summary.PeriodTotal),
			PeriodCount:  output.Summary.PeriodCount,
			DailyAverage: valueobject.ToFloat(output.Summary.DailyAverage),
			ActiveDays:   output.Summary.ActiveDays,
		},
		DailyTrends:   days,
		TopCategories: toCategoryTotalResponses(output.TopCategories),
	}
}

// ToSummaryReportResponse converts the summary report output to its DTO.
func ToSummaryReportResponse(output *report.GetSummaryReportOutput) SummaryReportResponse {
	recent := make([]RecentExpenseResponse, 0, len(output.RecentExpenses))
	for _, e := range output.RecentExpenses {
		recent = append(recent, RecentExpenseResponse{
			Title:    e.Title,
			Amount:   valueobject.ToFloat(e.Amount),
			Date:     e.Date.Format(DateLayout),
			Category: string(e.Category),
		})
	}

	return SummaryReportResponse{
		Overview: SummaryOverviewResponse{
			TotalAmount: valueobject.ToFloat(output.Overview.TotalAmount),
			Count:       output.Overview.Count,
			AvgAmount:   valueobject.ToFloat(output.Overview.AvgAmount),
			MinAmount:   valueobject.ToFloat(output.Overview.MinAmount),
			MaxAmount:   valueobject.ToFloat(output.Overview.MaxAmount),
		},
		CurrentMonth: SummaryCurrentMonthResponse{
			Month:       output.CurrentMonth.Month.Format("2006-01"),
			TotalAmount: valueobject.ToFloat(output.CurrentMonth.TotalAmount),
			Count:       output.CurrentMonth.Count,
		},
		TopCategories:  toCategoryTotalResponses(output.TopCategories),
		RecentExpenses: recent,
	}
}

func toCategoryTotalResponses(totals []report.CategoryTotal) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, CategoryTotalResponse{
			Category:    string(t.Category),
			TotalAmount: valueobject.ToFloat(t.TotalAmount),
			Count:       t.Count,
			AvgAmount:   valueobject.ToFloat(t.AvgAmount),
		})
	}
	return out
}
