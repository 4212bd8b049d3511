package report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestGetTrendReportUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)
	clock := fixedClock{now: now}
	today := StartOfDay(now)

	t.Run("omits days outside the window and days without expenses", func(t *testing.T) {
		userID := uuid.New()
		repo := &memoryReportRepository{}
		repo.add(userID, "80.00", today.AddDate(0, 0, -40), entity.CategoryFood, now)
		repo.add(userID, "12.00", today.AddDate(0, 0, -5), entity.CategoryFood, now)

		out, err := NewGetTrendReportUseCase(repo, clock).Execute(ctx, GetTrendReportInput{UserID: userID, Days: 30})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.DailyTrends) != 1 {
			t.Fatalf("expected 1 active day, got %d", len(out.DailyTrends))
		}
		if !out.DailyTrends[0].Date.Equal(today.AddDate(0, 0, -5)) {
			t.Errorf("expected the day 5 days ago, got %s", out.DailyTrends[0].Date)
		}
		if out.Summary.ActiveDays != 1 {
			t.Errorf("expected activeDays 1, got %d", out.Summary.ActiveDays)
		}
		if !out.Summary.DailyAverage.Equal(dec("12")) {
			t.Errorf("expected daily average 12, got %s", out.Summary.DailyAverage)
		}
	})

	t.Run("groups by day and divides by active days", func(t *testing.T) {
		userID := uuid.New()
		repo := &memoryReportRepository{}
		repo.add(userID, "10.00", today.AddDate(0, 0, -3), entity.CategoryFood, now)
		repo.add(userID, "5.00", today.AddDate(0, 0, -3), entity.CategoryTravel, now)
		repo.add(userID, "5.00", today.AddDate(0, 0, -3), entity.CategoryFood, now)
		repo.add(userID, "7.00", today.AddDate(0, 0, -1), entity.CategoryOther, now)
		repo.add(userID, "3.00", today, entity.CategoryFood, now)
		repo.add(uuid.New(), "1000.00", today, entity.CategoryFood, now)

		out, err := NewGetTrendReportUseCase(repo, clock).Execute(ctx, GetTrendReportInput{UserID: userID, Days: 7})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.DailyTrends) != 3 {
			t.Fatalf("expected 3 active days, got %d", len(out.DailyTrends))
		}
		for i := 1; i < len(out.DailyTrends); i++ {
			if !out.DailyTrends[i-1].Date.Before(out.DailyTrends[i].Date) {
				t.Errorf("expected ascending dates, got %s then %s", out.DailyTrends[i-1].Date, out.DailyTrends[i].Date)
			}
		}

		first := out.DailyTrends[0]
		if first.Count != 3 || first.CategoriesCount != 2 || !first.TotalAmount.Equal(dec("20")) {
			t.Errorf("unexpected first day: %+v", first)
		}
		if !out.Summary.PeriodTotal.Equal(dec("30")) || out.Summary.PeriodCount != 5 {
			t.Errorf("unexpected summary: %+v", out.Summary)
		}
		if !out.Summary.DailyAverage.Equal(dec("10")) {
			t.Errorf("expected daily average 10, got %s", out.Summary.DailyAverage)
		}
		if out.Summary.ActiveDays > out.Days {
			t.Errorf("active days %d exceed window %d", out.Summary.ActiveDays, out.Days)
		}

		if len(out.TopCategories) != 3 {
			t.Fatalf("expected 3 top categories, got %d", len(out.TopCategories))
		}
		if out.TopCategories[0].Category != entity.CategoryFood || !out.TopCategories[0].TotalAmount.Equal(dec("18")) {
			t.Errorf("expected Food 18 first, got %+v", out.TopCategories[0])
		}
		if !out.TopCategories[0].AvgAmount.Equal(dec("6")) {
			t.Errorf("expected Food average 6, got %s", out.TopCategories[0].AvgAmount)
		}
	})

	t.Run("non-positive days fall back to thirty", func(t *testing.T) {
		repo := &memoryReportRepository{}
		out, err := NewGetTrendReportUseCase(repo, clock).Execute(ctx, GetTrendReportInput{UserID: uuid.New(), Days: -4})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Days != DefaultTrendDays {
			t.Errorf("expected %d days, got %d", DefaultTrendDays, out.Days)
		}
		if !out.StartDate.Equal(now.AddDate(0, 0, -30)) {
			t.Errorf("expected window start %s, got %s", now.AddDate(0, 0, -30), out.StartDate)
		}
		if len(out.DailyTrends) != 0 || out.Summary.ActiveDays != 0 || !out.Summary.DailyAverage.IsZero() {
			t.Errorf("expected empty trend, got %+v", out)
		}
		if out.TopCategories == nil {
			t.Error("expected empty non-nil top categories")
		}
	})

	t.Run("keeps only the top five categories", func(t *testing.T) {
		userID := uuid.New()
		repo := &memoryReportRepository{}
		for i, c := range entity.AllCategories {
			repo.add(userID, fmt.Sprintf("%d.00", i+1), today, c, now)
		}

		out, err := NewGetTrendReportUseCase(repo, clock).Execute(ctx, GetTrendReportInput{UserID: userID, Days: 30})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.TopCategories) != TopCategoriesLimit {
			t.Fatalf("expected %d categories, got %d", TopCategoriesLimit, len(out.TopCategories))
		}
		if out.TopCategories[0].Category != entity.CategoryOther {
			t.Errorf("expected the largest category first, got %s", out.TopCategories[0].Category)
		}
	})
}

func TestGetTrendReportUseCase_MidnightClock(t *testing.T) {
	now := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	userID := uuid.New()
	repo := &memoryReportRepository{}
	repo.add(userID, "1.00", now, entity.CategoryFood, now)
	repo.add(userID, "2.00", now.AddDate(0, 0, -1), entity.CategoryFood, now)
	repo.add(userID, "4.00", now.AddDate(0, 0, -2), entity.CategoryFood, now)

	out, err := NewGetTrendReportUseCase(repo, fixedClock{now: now}).Execute(context.Background(), GetTrendReportInput{UserID: userID, Days: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Summary.ActiveDays > out.Days {
		t.Fatalf("active days %d exceed window %d", out.Summary.ActiveDays, out.Days)
	}
	if out.Summary.ActiveDays != 2 {
		t.Errorf("expected 2 active days, got %d", out.Summary.ActiveDays)
	}
	if !out.Summary.PeriodTotal.Equal(dec("3")) {
		t.Errorf("expected period total 3, got %s", out.Summary.PeriodTotal)
	}
	if !out.StartDate.Equal(now.AddDate(0, 0, -1)) {
		t.Errorf("expected window to open on %s, got %s", now.AddDate(0, 0, -1), out.StartDate)
	}
}

func TestGetTrendReportUseCase_StorageError(t *testing.T) {
	storageErr := errors.New("timeout")
	repo := &memoryReportRepository{err: storageErr}

	_, err := NewGetTrendReportUseCase(repo, fixedClock{now: time.Now()}).Execute(context.Background(), GetTrendReportInput{UserID: uuid.New()})
	if !errors.Is(err, storageErr) {
		t.Errorf("expected storage error to propagate, got %v", err)
	}
}
