package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"spendtrack/internal/core"
)

// CreateCategory inserts a new category. A duplicate name surfaces as
// core.ErrDuplicateCategory; the unique index is the enforcement point.
func (r *Repository) CreateCategory(ctx context.Context, name string) (*core.Category, error) {
	createdAt := nowUTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, created_at) VALUES (?, ?)`,
		name, createdAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q: %w", name, core.ErrDuplicateCategory)
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("category id: %w", err)
	}

	slog.InfoContext(ctx, "category created", "id", id, "name", name)
	return &core.Category{ID: id, Name: name, CreatedAt: parseTimestamp(createdAt)}, nil
}

// GetCategory returns a category by id or core.ErrCategoryNotFound.
func (r *Repository) GetCategory(ctx context.Context, id int64) (*core.Category, error) {
	var (
		cat       core.Category
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = ?`, id).
		Scan(&cat.ID, &cat.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, core.ErrCategoryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query category: %w", err)
	}
	cat.CreatedAt = parseTimestamp(createdAt)
	return &cat, nil
}

// CategoryExists is the lookup used by the expense validator.
func (r *Repository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category existence: %w", err)
	}
	return exists, nil
}

// ListCategories returns all categories in insertion order.
func (r *Repository) ListCategories(ctx context.Context) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, created_at FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []core.Category
	for rows.Next() {
		var (
			cat       core.Category
			createdAt string
		)
		if err := rows.Scan(&cat.ID, &cat.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cat.CreatedAt = parseTimestamp(createdAt)
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory renames a category. Renaming to the current name is a no-op
// update and succeeds; renaming onto another category's name is a conflict.
func (r *Repository) UpdateCategory(ctx context.Context, id int64, name string) (*core.Category, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q: %w", name, core.ErrDuplicateCategory)
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update category rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("category %d: %w", id, core.ErrCategoryNotFound)
	}
	return r.GetCategory(ctx, id)
}

// DeleteCategory removes a category. Expenses referencing it are detached,
// not deleted: the foreign key is declared ON DELETE SET NULL.
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category %d: %w", id, core.ErrCategoryNotFound)
	}
	slog.InfoContext(ctx, "category deleted", "id", id)
	return nil
}
