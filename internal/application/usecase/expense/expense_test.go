package expense

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type memoryExpenseRepository struct {
	mu       sync.Mutex
	expenses map[uuid.UUID]*entity.Expense
}

func newMemoryExpenseRepository() *memoryExpenseRepository {
	return &memoryExpenseRepository{expenses: make(map[uuid.UUID]*entity.Expense)}
}

func (r *memoryExpenseRepository) Create(_ context.Context, e *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *e
	r.expenses[e.ID] = &copied
	return nil
}

func (r *memoryExpenseRepository) FindByID(_ context.Context, id, userID uuid.UUID) (*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.UserID != userID || e.DeletedAt != nil {
		return nil, domainerror.ErrExpenseNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *memoryExpenseRepository) FindByUser(_ context.Context, userID uuid.UUID, filter adapter.ExpenseFilter) (*entity.ExpenseListResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Expense
	for _, e := range r.expenses {
		if e.UserID != userID || e.DeletedAt != nil {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Limit
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return &entity.ExpenseListResult{
		Expenses:   matched[offset:end],
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int((total + int64(filter.Limit) - 1) / int64(filter.Limit)),
	}, nil
}

func (r *memoryExpenseRepository) Update(_ context.Context, e *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *e
	r.expenses[e.ID] = &copied
	return nil
}

func (r *memoryExpenseRepository) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.UserID != userID || e.DeletedAt != nil {
		return domainerror.ErrExpenseNotFound
	}
	now := time.Now()
	e.DeletedAt = &now
	return nil
}

var testNow = time.Date(2024, time.July, 4, 18, 0, 0, 0, time.UTC)

func validCreateInput(userID uuid.UUID) CreateExpenseInput {
	return CreateExpenseInput{
		UserID:   userID,
		Title:    "Groceries",
		Amount:   decimal.RequireFromString("42.499"),
		Date:     time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC),
		Category: entity.CategoryFood,
		Notes:    "weekly shop",
	}
}

func expenseErrorCode(t *testing.T, err error) domainerror.ExpenseErrorCode {
	t.Helper()
	var expenseErr *domainerror.ExpenseError
	if !errors.As(err, &expenseErr) {
		t.Fatalf("expected ExpenseError, got %v", err)
	}
	return expenseErr.Code
}

func TestCreateExpenseUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryExpenseRepository()
	uc := NewCreateExpenseUseCase(repo, fixedClock{now: testNow})
	userID := uuid.New()

	t.Run("creates and rounds the amount", func(t *testing.T) {
		out, err := uc.Execute(ctx, validCreateInput(userID))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Expense.Amount.Equal(decimal.RequireFromString("42.5")) {
			t.Errorf("expected amount 42.50, got %s", out.Expense.Amount)
		}
		if !out.Expense.CreatedAt.Equal(testNow) {
			t.Errorf("expected created at %s, got %s", testNow, out.Expense.CreatedAt)
		}
		if _, err := repo.FindByID(ctx, out.Expense.ID, userID); err != nil {
			t.Errorf("expected expense to be stored: %v", err)
		}
	})

	tests := []struct {
		name         string
		mutate       func(*CreateExpenseInput)
		expectedCode domainerror.ExpenseErrorCode
	}{
		{"empty title", func(in *CreateExpenseInput) { in.Title = "   " }, domainerror.ErrCodeInvalidExpenseTitle},
		{"long title", func(in *CreateExpenseInput) { in.Title = strings.Repeat("a", 101) }, domainerror.ErrCodeInvalidExpenseTitle},
		{"zero amount", func(in *CreateExpenseInput) { in.Amount = decimal.Zero }, domainerror.ErrCodeInvalidExpenseAmount},
		{"negative amount", func(in *CreateExpenseInput) { in.Amount = decimal.NewFromInt(-1) }, domainerror.ErrCodeInvalidExpenseAmount},
		{"amount over limit", func(in *CreateExpenseInput) { in.Amount = decimal.RequireFromString("1000000.01") }, domainerror.ErrCodeInvalidExpenseAmount},
		{"amount rounds to zero", func(in *CreateExpenseInput) { in.Amount = decimal.RequireFromString("0.001") }, domainerror.ErrCodeInvalidExpenseAmount},
		{"future date", func(in *CreateExpenseInput) { in.Date = testNow.AddDate(0, 0, 1) }, domainerror.ErrCodeInvalidExpenseDate},
		{"missing date", func(in *CreateExpenseInput) { in.Date = time.Time{} }, domainerror.ErrCodeInvalidExpenseDate},
		{"unknown category", func(in *CreateExpenseInput) { in.Category = "Groceries" }, domainerror.ErrCodeInvalidExpenseCategory},
		{"long notes", func(in *CreateExpenseInput) { in.Notes = strings.Repeat("n", 501) }, domainerror.ErrCodeExpenseNotesTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput(userID)
			tt.mutate(&input)

			_, err := uc.Execute(ctx, input)
			if code := expenseErrorCode(t, err); code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, code)
			}
		})
	}

	t.Run("accepts the maximum amount", func(t *testing.T) {
		input := validCreateInput(userID)
		input.Amount = MaxAmount
		if _, err := uc.Execute(ctx, input); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestExpenseOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryExpenseRepository()
	clock := fixedClock{now: testNow}
	owner, intruder := uuid.New(), uuid.New()

	created, err := NewCreateExpenseUseCase(repo, clock).Execute(ctx, validCreateInput(owner))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id := created.Expense.ID

	t.Run("get by another user reads as not found", func(t *testing.T) {
		_, err := NewGetExpenseUseCase(repo).Execute(ctx, GetExpenseInput{ExpenseID: id, UserID: intruder})
		if code := expenseErrorCode(t, err); code != domainerror.ErrCodeExpenseNotFound {
			t.Errorf("expected not found, got %s", code)
		}
	})

	t.Run("update by another user reads as not found", func(t *testing.T) {
		title := "stolen"
		_, err := NewUpdateExpenseUseCase(repo, clock).Execute(ctx, UpdateExpenseInput{ExpenseID: id, UserID: intruder, Title: &title})
		if code := expenseErrorCode(t, err); code != domainerror.ErrCodeExpenseNotFound {
			t.Errorf("expected not found, got %s", code)
		}
	})

	t.Run("delete by another user reads as not found", func(t *testing.T) {
		err := NewDeleteExpenseUseCase(repo).Execute(ctx, DeleteExpenseInput{ExpenseID: id, UserID: intruder})
		if code := expenseErrorCode(t, err); code != domainerror.ErrCodeExpenseNotFound {
			t.Errorf("expected not found, got %s", code)
		}
	})

	t.Run("owner can update selected fields", func(t *testing.T) {
		title := "Dinner"
		category := entity.CategoryEntertainment
		out, err := NewUpdateExpenseUseCase(repo, clock).Execute(ctx, UpdateExpenseInput{
			ExpenseID: id,
			UserID:    owner,
			Title:     &title,
			Category:  &category,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Title != "Dinner" || out.Category != entity.CategoryEntertainment {
			t.Errorf("unexpected update result: %+v", out)
		}
		if !out.Amount.Equal(decimal.RequireFromString("42.5")) {
			t.Errorf("expected amount unchanged, got %s", out.Amount)
		}
	})

	t.Run("update validates fields", func(t *testing.T) {
		amount := decimal.NewFromInt(0)
		_, err := NewUpdateExpenseUseCase(repo, clock).Execute(ctx, UpdateExpenseInput{ExpenseID: id, UserID: owner, Amount: &amount})
		if code := expenseErrorCode(t, err); code != domainerror.ErrCodeInvalidExpenseAmount {
			t.Errorf("expected invalid amount, got %s", code)
		}
	})

	t.Run("owner can delete and the expense disappears", func(t *testing.T) {
		if err := NewDeleteExpenseUseCase(repo).Execute(ctx, DeleteExpenseInput{ExpenseID: id, UserID: owner}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := NewGetExpenseUseCase(repo).Execute(ctx, GetExpenseInput{ExpenseID: id, UserID: owner})
		if !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Errorf("expected not found after delete, got %v", err)
		}
	})
}

func TestListExpensesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryExpenseRepository()
	create := NewCreateExpenseUseCase(repo, fixedClock{now: testNow})
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		input := validCreateInput(userID)
		input.Date = testNow.AddDate(0, 0, -i)
		if _, err := create.Execute(ctx, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	other := validCreateInput(uuid.New())
	if _, err := create.Execute(ctx, other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := NewListExpensesUseCase(repo)

	t.Run("applies default paging and isolation", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListExpensesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Pagination.Total != 3 || len(out.Expenses) != 3 {
			t.Errorf("expected 3 expenses, got %d (total %d)", len(out.Expenses), out.Pagination.Total)
		}
		if out.Pagination.Limit != DefaultPageLimit || out.Pagination.Page != 1 {
			t.Errorf("unexpected pagination %+v", out.Pagination)
		}
	})

	t.Run("caps the page size", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListExpensesInput{UserID: userID, Limit: 1000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Pagination.Limit != MaxPageLimit {
			t.Errorf("expected limit %d, got %d", MaxPageLimit, out.Pagination.Limit)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		out, err := uc.Execute(ctx, ListExpensesInput{UserID: userID, Page: 2, Limit: 2})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Expenses) != 1 || out.Pagination.TotalPages != 2 {
			t.Errorf("unexpected page: %d expenses, %+v", len(out.Expenses), out.Pagination)
		}
	})

	t.Run("rejects unknown category filter", func(t *testing.T) {
		category := entity.ExpenseCategory("Rent")
		_, err := uc.Execute(ctx, ListExpensesInput{UserID: userID, Category: &category})
		if code := expenseErrorCode(t, err); code != domainerror.ErrCodeInvalidExpenseCategory {
			t.Errorf("expected invalid category, got %s", code)
		}
	})
}
