package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/report"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// ReportController handles report endpoints.
type ReportController struct {
	categoryUseCase *report.GetCategoryReportUseCase
	monthlyUseCase  *report.GetMonthlyReportUseCase
	trendUseCase    *report.GetTrendReportUseCase
	summaryUseCase  *report.GetSummaryReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	categoryUseCase *report.GetCategoryReportUseCase,
	monthlyUseCase *report.GetMonthlyReportUseCase,
	trendUseCase *report.GetTrendReportUseCase,
	summaryUseCase *report.GetSummaryReportUseCase,
) *ReportController {
	return &ReportController{
		categoryUseCase: categoryUseCase,
		monthlyUseCase:  monthlyUseCase,
		trendUseCase:    trendUseCase,
		summaryUseCase:  summaryUseCase,
	}
}

// GetCategoryReport handles GET /reports/category requests.
func (c *ReportController) GetCategoryReport(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	startDate, err := report.ParseDate(ctx.Query("start_date"))
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}
	endDate, err := report.ParseDate(ctx.Query("end_date"))
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	output, err := c.categoryUseCase.Execute(ctx.Request.Context(), report.GetCategoryReportInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryReportResponse(output))
}

// GetMonthlyReport handles GET /reports/monthly requests.
func (c *ReportController) GetMonthlyReport(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	year, err := report.ParseYear(ctx.Query("year"))
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	output, err := c.monthlyUseCase.Execute(ctx.Request.Context(), report.GetMonthlyReportInput{
		UserID: userID,
		Year:   year,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthlyReportResponse(output))
}

// GetTrendReport handles GET /reports/trends requests.
func (c *ReportController) GetTrendReport(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.trendUseCase.Execute(ctx.Request.Context(), report.GetTrendReportInput{
		UserID: userID,
		Days:   report.ParseDays(ctx.Query("days")),
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendReportResponse(output))
}

// GetSummaryReport handles GET /reports/summary requests.
func (c *ReportController) GetSummaryReport(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), report.GetSummaryReportInput{
		UserID: userID,
	})
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryReportResponse(output))
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) && reportErr.Code != domainerror.ErrCodeReportInternalError {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	slog.ErrorContext(ctx.Request.Context(), "report generation failed",
		"path", ctx.FullPath(),
		"user_id", userID.String(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Failed to generate report",
		Code:  string(domainerror.ErrCodeReportInternalError),
	})
}
