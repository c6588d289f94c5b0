package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"spendtrack/internal/core"
)

const expenseColumns = `id, amount_cents, description, expense_date, category_id, created_at, updated_at`

// CreateExpense inserts a validated expense and returns the stored row with
// its generated id.
func (r *Repository) CreateExpense(ctx context.Context, e core.Expense) (*core.Expense, error) {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (amount_cents, description, expense_date, category_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Amount.Cents, e.Description, e.Date.String(), e.CategoryID, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("expense id: %w", err)
	}

	slog.InfoContext(ctx, "expense created",
		"id", id,
		"amount_cents", e.Amount.Cents,
		"category_id", e.CategoryID)

	stored := e
	stored.ID = id
	stored.CreatedAt = parseTimestamp(now)
	stored.UpdatedAt = parseTimestamp(now)
	return &stored, nil
}

// GetExpense returns an expense by id or core.ErrExpenseNotFound.
func (r *Repository) GetExpense(ctx context.Context, id int64) (*core.Expense, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %d: %w", id, core.ErrExpenseNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query expense: %w", err)
	}
	return e, nil
}

// UpdateExpense rewrites the mutable fields of an existing expense: amount,
// description, date and category. The id never changes. The row is marked
// unsynced again so the export worker picks up the new version.
func (r *Repository) UpdateExpense(ctx context.Context, e core.Expense) (*core.Expense, error) {
	now := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses
		 SET amount_cents = ?, description = ?, expense_date = ?, category_id = ?, synced = 0, updated_at = ?
		 WHERE id = ?`,
		e.Amount.Cents, e.Description, e.Date.String(), e.CategoryID, now, e.ID)
	if err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update expense rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("expense %d: %w", e.ID, core.ErrExpenseNotFound)
	}
	return r.GetExpense(ctx, e.ID)
}

// DeleteExpense removes an expense by id or fails with core.ErrExpenseNotFound.
func (r *Repository) DeleteExpense(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense %d: %w", id, core.ErrExpenseNotFound)
	}
	slog.InfoContext(ctx, "expense deleted", "id", id)
	return nil
}

// ListExpenses returns every expense, oldest first.
func (r *Repository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return r.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses ORDER BY id`)
}

// ListExpensesByCategory returns all expenses assigned to the category.
// An unknown category yields an empty list, not an error.
func (r *Repository) ListExpensesByCategory(ctx context.Context, categoryID int64) ([]core.Expense, error) {
	return r.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE category_id = ? ORDER BY id`, categoryID)
}

// ListExpensesByDateRange returns expenses with start <= date <= end.
// Dates are stored as ISO-8601 text, so the comparison is lexicographic.
// An inverted range simply matches nothing.
func (r *Repository) ListExpensesByDateRange(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	return r.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		 WHERE expense_date >= ? AND expense_date <= ? ORDER BY expense_date, id`,
		start.String(), end.String())
}

// SumAmountByCategory returns the exact sum of amounts for a category.
// Zero when the category has no expenses or does not exist.
func (r *Repository) SumAmountByCategory(ctx context.Context, categoryID int64) (core.Money, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE category_id = ?`,
		categoryID).Scan(&cents)
	if err != nil {
		return core.Money{}, fmt.Errorf("sum expenses by category: %w", err)
	}
	return core.Money{Cents: cents}, nil
}

// ListUnsynced returns up to limit expenses not yet exported, oldest first.
func (r *Repository) ListUnsynced(ctx context.Context, limit int) ([]core.Expense, error) {
	return r.queryExpenses(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE synced = 0 ORDER BY id LIMIT ?`, limit)
}

// MarkSynced flags an expense as exported.
func (r *Repository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET synced = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark expense synced: %w", err)
	}
	return nil
}

func (r *Repository) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func scanExpense(scan func(...any) error) (*core.Expense, error) {
	var (
		e          core.Expense
		dateStr    string
		categoryID sql.NullInt64
		createdAt  string
		updatedAt  string
	)
	if err := scan(&e.ID, &e.Amount.Cents, &e.Description, &dateStr, &categoryID, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("stored date %q: %w", dateStr, err)
	}
	e.Date = date
	if categoryID.Valid {
		e.CategoryID = categoryID.Int64
	}
	e.CreatedAt = parseTimestamp(createdAt)
	e.UpdatedAt = parseTimestamp(updatedAt)
	return &e, nil
}
