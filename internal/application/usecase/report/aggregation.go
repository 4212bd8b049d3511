package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CategoryTotal is a rounded per-category total used by the top categories lists.
type CategoryTotal struct {
	Category    entity.ExpenseCategory
	TotalAmount decimal.Decimal
	Count       int64
	AvgAmount   decimal.Decimal
}

type accumulator struct {
	total decimal.Decimal
	count int64
}

func (a *accumulator) add(amount decimal.Decimal) {
	a.total = a.total.Add(amount)
	a.count++
}

// totals sums amounts and counts the expenses.
func totals(expenses []*entity.Expense) (decimal.Decimal, int64) {
	var acc accumulator
	for _, e := range expenses {
		acc.add(e.Amount)
	}
	return acc.total, acc.count
}

// groupByCategory buckets expenses by category and returns the groups ordered
// by total descending, then category name ascending.
func groupByCategory(expenses []*entity.Expense) []CategoryAggregate {
	buckets := make(map[entity.ExpenseCategory]*accumulator)
	for _, e := range expenses {
		acc, ok := buckets[e.Category]
		if !ok {
			acc = &accumulator{}
			buckets[e.Category] = acc
		}
		acc.add(e.Amount)
	}

	aggregates := make([]CategoryAggregate, 0, len(buckets))
	for category, acc := range buckets {
		aggregates = append(aggregates, CategoryAggregate{
			Category: category,
			Total:    acc.total,
			Count:    acc.count,
		})
	}
	sortCategoryAggregates(aggregates)
	return aggregates
}

// sortCategoryAggregates orders by total descending; equal totals fall back to category name.
func sortCategoryAggregates(aggregates []CategoryAggregate) {
	sort.Slice(aggregates, func(i, j int) bool {
		if c := aggregates[i].Total.Cmp(aggregates[j].Total); c != 0 {
			return c > 0
		}
		return aggregates[i].Category < aggregates[j].Category
	})
}

// topCategories sorts aggregates and keeps the first limit, rounded for output.
func topCategories(aggregates []CategoryAggregate, limit int) []CategoryTotal {
	sortCategoryAggregates(aggregates)
	if len(aggregates) > limit {
		aggregates = aggregates[:limit]
	}

	result := make([]CategoryTotal, 0, len(aggregates))
	for _, agg := range aggregates {
		result = append(result, CategoryTotal{
			Category:    agg.Category,
			TotalAmount: valueobject.RoundMoney(agg.Total),
			Count:       agg.Count,
			AvgAmount:   valueobject.Average(agg.Total, agg.Count),
		})
	}
	return result
}

// groupByMonth buckets expenses by calendar month, indexed 0 (January) to 11.
func groupByMonth(expenses []*entity.Expense) [12]accumulator {
	var months [12]accumulator
	for _, e := range expenses {
		months[e.Date.UTC().Month()-1].add(e.Amount)
	}
	return months
}

type dayAccumulator struct {
	accumulator
	day        time.Time
	categories map[entity.ExpenseCategory]struct{}
}

// groupByDay buckets expenses by calendar day. Only days with at least one
// expense are returned, ascending by date.
func groupByDay(expenses []*entity.Expense) []*dayAccumulator {
	byDay := make(map[time.Time]*dayAccumulator)
	for _, e := range expenses {
		day := StartOfDay(e.Date)
		acc, ok := byDay[day]
		if !ok {
			acc = &dayAccumulator{day: day, categories: make(map[entity.ExpenseCategory]struct{})}
			byDay[day] = acc
		}
		acc.add(e.Amount)
		acc.categories[e.Category] = struct{}{}
	}

	days := make([]*dayAccumulator, 0, len(byDay))
	for _, acc := range byDay {
		days = append(days, acc)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].day.Before(days[j].day)
	})
	return days
}
