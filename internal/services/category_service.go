package services

import (
	"context"
	"strings"

	"spendtrack/internal/core"
)

// CategoryService orchestrates category CRUD. Name uniqueness is enforced by
// the store's unique constraint and surfaces as core.ErrDuplicateCategory.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// Create persists a new category with the given name.
func (s *CategoryService) Create(ctx context.Context, name string) (*core.Category, error) {
	name = strings.TrimSpace(name)
	if err := core.ValidateCategoryName(name); err != nil {
		return nil, err
	}
	return s.store.CreateCategory(ctx, name)
}

// List returns all categories.
func (s *CategoryService) List(ctx context.Context) ([]core.Category, error) {
	return s.store.ListCategories(ctx)
}

// Get returns a category by id or core.ErrCategoryNotFound.
func (s *CategoryService) Get(ctx context.Context, id int64) (*core.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// Update renames a category. Renaming to the current name is a valid no-op.
func (s *CategoryService) Update(ctx context.Context, id int64, name string) (*core.Category, error) {
	name = strings.TrimSpace(name)
	if err := core.ValidateCategoryName(name); err != nil {
		return nil, err
	}
	return s.store.UpdateCategory(ctx, id, name)
}

// Delete removes a category. Owned expenses are detached by the store.
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteCategory(ctx, id)
}
