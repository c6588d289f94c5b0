// Package services orchestrates the expense and category operations: it runs
// the validation rules, enforces referential integrity between expenses and
// categories, and delegates persistence to the store adapters.
package services

import (
	"context"

	"spendtrack/internal/core"
)

// CategoryStore is the persistence boundary for categories.
type CategoryStore interface {
	core.CategoryLookup

	CreateCategory(ctx context.Context, name string) (*core.Category, error)
	GetCategory(ctx context.Context, id int64) (*core.Category, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string) (*core.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// ExpenseStore is the persistence boundary for expenses, including the three
// query shapes the API exposes.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, e core.Expense) (*core.Expense, error)
	GetExpense(ctx context.Context, id int64) (*core.Expense, error)
	UpdateExpense(ctx context.Context, e core.Expense) (*core.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	ListExpensesByCategory(ctx context.Context, categoryID int64) ([]core.Expense, error)
	ListExpensesByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error)
	SumAmountByCategory(ctx context.Context, categoryID int64) (core.Money, error)
}

// EventPublisher emits expense lifecycle events for the export worker.
// Publishing is best-effort; a failure never fails the originating request.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, id int64, action string) error
}

// Expense event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)
