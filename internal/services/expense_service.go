package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spendtrack/internal/core"
)

// ExpenseService orchestrates expense CRUD and the three query shapes. Every
// write runs the full validation pass first, and the referenced category is
// re-resolved at persistence time even though the validator already checked
// it; the second lookup is cheap and keeps the check-then-write window small.
type ExpenseService struct {
	expenses   ExpenseStore
	categories CategoryStore
	events     EventPublisher
}

// NewExpenseService wires the service. events may be nil, in which case no
// lifecycle events are published.
func NewExpenseService(expenses ExpenseStore, categories CategoryStore, events EventPublisher) *ExpenseService {
	return &ExpenseService{
		expenses:   expenses,
		categories: categories,
		events:     events,
	}
}

// Create validates the payload, resolves its category and persists it.
func (s *ExpenseService) Create(ctx context.Context, e core.Expense) (*core.Expense, error) {
	if err := core.ValidateExpense(ctx, e, s.categories); err != nil {
		return nil, err
	}

	if err := s.resolveCategory(ctx, &e); err != nil {
		return nil, err
	}

	stored, err := s.expenses.CreateExpense(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, stored.ID, ActionCreated)
	return stored, nil
}

// Update mutates amount, description, date and category of an existing
// expense. The id is immutable. Category reassignment is always allowed and
// always re-validated.
func (s *ExpenseService) Update(ctx context.Context, id int64, e core.Expense) (*core.Expense, error) {
	existing, err := s.expenses.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := core.ValidateExpense(ctx, e, s.categories); err != nil {
		return nil, err
	}

	if err := s.resolveCategory(ctx, &e); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Amount = e.Amount
	updated.Description = e.Description
	updated.Date = e.Date
	updated.CategoryID = e.CategoryID

	stored, err := s.expenses.UpdateExpense(ctx, updated)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}

	s.publish(ctx, stored.ID, ActionUpdated)
	return stored, nil
}

// Delete removes an expense, verifying existence first.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if _, err := s.expenses.GetExpense(ctx, id); err != nil {
		return err
	}
	if err := s.expenses.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, ActionDeleted)
	return nil
}

// ListAll returns every expense.
func (s *ExpenseService) ListAll(ctx context.Context) ([]core.Expense, error) {
	return s.expenses.ListExpenses(ctx)
}

// ListByCategory returns the expenses assigned to a category; empty when
// none match or the category does not exist.
func (s *ExpenseService) ListByCategory(ctx context.Context, categoryID int64) ([]core.Expense, error) {
	return s.expenses.ListExpensesByCategory(ctx, categoryID)
}

// ListByDateRange returns expenses with start <= date <= end. An inverted
// range yields an empty list.
func (s *ExpenseService) ListByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	return s.expenses.ListExpensesByDateRange(ctx, start, end)
}

// TotalByCategory returns the exact sum of amounts in a category; 0.00 when
// the category is empty or unknown.
func (s *ExpenseService) TotalByCategory(ctx context.Context, categoryID int64) (core.Money, error) {
	return s.expenses.SumAmountByCategory(ctx, categoryID)
}

// resolveCategory confirms the target category still exists right before the
// write and normalizes the reference to the stored id.
func (s *ExpenseService) resolveCategory(ctx context.Context, e *core.Expense) error {
	cat, err := s.categories.GetCategory(ctx, e.CategoryID)
	if errors.Is(err, core.ErrCategoryNotFound) {
		return &core.ValidationError{
			Message: fmt.Sprintf("Category with ID %d does not exist", e.CategoryID),
		}
	}
	if err != nil {
		return fmt.Errorf("resolve category: %w", err)
	}
	e.CategoryID = cat.ID
	return nil
}

// publish emits a lifecycle event. Failures are logged, never propagated:
// the expense is already persisted and the export worker has a sweep for
// anything that was missed.
func (s *ExpenseService) publish(ctx context.Context, id int64, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishExpenseEvent(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "failed to publish expense event",
			"id", id,
			"action", action,
			"error", err)
	}
}
