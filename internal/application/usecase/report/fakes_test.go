package report

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// memoryReportRepository is an in-memory ReportRepository keyed by owner.
type memoryReportRepository struct {
	mu       sync.Mutex
	expenses []*entity.Expense
	err      error
	calls    int
}

func (r *memoryReportRepository) add(userID uuid.UUID, amount string, date time.Time, category entity.ExpenseCategory, createdAt time.Time) {
	r.expenses = append(r.expenses, &entity.Expense{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     string(category) + " " + amount,
		Amount:    decimal.RequireFromString(amount),
		Date:      date,
		Category:  category,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
}

func (r *memoryReportRepository) owned(userID uuid.UUID) []*entity.Expense {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++

	var out []*entity.Expense
	for _, e := range r.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

func (r *memoryReportRepository) FindByUserAndDateRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*entity.Expense
	for _, e := range r.owned(userID) {
		if !e.Date.Before(start) && e.Date.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryReportRepository) AggregateByCategory(_ context.Context, userID uuid.UUID, window *TimeRange) ([]CategoryAggregate, error) {
	if r.err != nil {
		return nil, r.err
	}
	byCategory := map[entity.ExpenseCategory]*CategoryAggregate{}
	for _, e := range r.owned(userID) {
		if window != nil && (e.Date.Before(window.Start) || !e.Date.Before(window.End)) {
			continue
		}
		agg, ok := byCategory[e.Category]
		if !ok {
			agg = &CategoryAggregate{Category: e.Category}
			byCategory[e.Category] = agg
		}
		agg.Total = agg.Total.Add(e.Amount)
		agg.Count++
	}
	out := make([]CategoryAggregate, 0, len(byCategory))
	for _, agg := range byCategory {
		out = append(out, *agg)
	}
	return out, nil
}

func (r *memoryReportRepository) FindRecentByUser(_ context.Context, userID uuid.UUID, limit int) ([]*entity.Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := r.owned(userID)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryReportRepository) FindAllByUser(_ context.Context, userID uuid.UUID) ([]*entity.Expense, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.owned(userID), nil
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
