package storage

import (
	"context"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"spendtrack/internal/core"
)

// CategoryCache decorates the repository's category operations with a small
// read-through cache. Only positive id lookups are cached; existence misses
// and list results always hit the store so a freshly created category is
// visible immediately. Mutations invalidate the cached entry.
type CategoryCache struct {
	repo  *Repository
	cache *ristretto.Cache[int64, core.Category]
}

// NewCategoryCache builds the cache in front of repo. The working set is a
// handful of categories, so the sizing is generous.
func NewCategoryCache(repo *Repository) (*CategoryCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config[int64, core.Category]{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create category cache: %w", err)
	}
	return &CategoryCache{repo: repo, cache: cache}, nil
}

func (c *CategoryCache) Close() {
	c.cache.Close()
}

func (c *CategoryCache) GetCategory(ctx context.Context, id int64) (*core.Category, error) {
	if cat, ok := c.cache.Get(id); ok {
		return &cat, nil
	}
	cat, err := c.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cache.Set(id, *cat, 1)
	return cat, nil
}

func (c *CategoryCache) CategoryExists(ctx context.Context, id int64) (bool, error) {
	if _, ok := c.cache.Get(id); ok {
		return true, nil
	}
	return c.repo.CategoryExists(ctx, id)
}

func (c *CategoryCache) CreateCategory(ctx context.Context, name string) (*core.Category, error) {
	cat, err := c.repo.CreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}
	c.cache.Set(cat.ID, *cat, 1)
	return cat, nil
}

func (c *CategoryCache) ListCategories(ctx context.Context) ([]core.Category, error) {
	return c.repo.ListCategories(ctx)
}

func (c *CategoryCache) UpdateCategory(ctx context.Context, id int64, name string) (*core.Category, error) {
	cat, err := c.repo.UpdateCategory(ctx, id, name)
	if err != nil {
		return nil, err
	}
	c.cache.Del(id)
	c.cache.Set(id, *cat, 1)
	return cat, nil
}

func (c *CategoryCache) DeleteCategory(ctx context.Context, id int64) error {
	if err := c.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}
	c.cache.Del(id)
	return nil
}
