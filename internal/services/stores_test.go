package services

import (
	"context"
	"fmt"
	"sort"

	"spendtrack/internal/core"
)

// In-memory store fakes. They mirror the adapter contracts: not-found and
// conflict conditions come back as the core sentinel errors.

type fakeCategoryStore struct {
	categories map[int64]core.Category
	nextID     int64
	existCalls int
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{categories: make(map[int64]core.Category), nextID: 1}
}

func (f *fakeCategoryStore) CreateCategory(_ context.Context, name string) (*core.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return nil, fmt.Errorf("category %q: %w", name, core.ErrDuplicateCategory)
		}
	}
	cat := core.Category{ID: f.nextID, Name: name}
	f.categories[cat.ID] = cat
	f.nextID++
	return &cat, nil
}

func (f *fakeCategoryStore) GetCategory(_ context.Context, id int64) (*core.Category, error) {
	cat, ok := f.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, core.ErrCategoryNotFound)
	}
	return &cat, nil
}

func (f *fakeCategoryStore) CategoryExists(_ context.Context, id int64) (bool, error) {
	f.existCalls++
	_, ok := f.categories[id]
	return ok, nil
}

func (f *fakeCategoryStore) ListCategories(_ context.Context) ([]core.Category, error) {
	ids := make([]int64, 0, len(f.categories))
	for id := range f.categories {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]core.Category, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.categories[id])
	}
	return out, nil
}

func (f *fakeCategoryStore) UpdateCategory(_ context.Context, id int64, name string) (*core.Category, error) {
	cat, ok := f.categories[id]
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, core.ErrCategoryNotFound)
	}
	for otherID, other := range f.categories {
		if otherID != id && other.Name == name {
			return nil, fmt.Errorf("category %q: %w", name, core.ErrDuplicateCategory)
		}
	}
	cat.Name = name
	f.categories[id] = cat
	return &cat, nil
}

func (f *fakeCategoryStore) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return fmt.Errorf("category %d: %w", id, core.ErrCategoryNotFound)
	}
	delete(f.categories, id)
	return nil
}

type fakeExpenseStore struct {
	expenses map[int64]core.Expense
	nextID   int64
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{expenses: make(map[int64]core.Expense), nextID: 1}
}

func (f *fakeExpenseStore) CreateExpense(_ context.Context, e core.Expense) (*core.Expense, error) {
	e.ID = f.nextID
	f.expenses[e.ID] = e
	f.nextID++
	return &e, nil
}

func (f *fakeExpenseStore) GetExpense(_ context.Context, id int64) (*core.Expense, error) {
	e, ok := f.expenses[id]
	if !ok {
		return nil, fmt.Errorf("expense %d: %w", id, core.ErrExpenseNotFound)
	}
	return &e, nil
}

func (f *fakeExpenseStore) UpdateExpense(_ context.Context, e core.Expense) (*core.Expense, error) {
	if _, ok := f.expenses[e.ID]; !ok {
		return nil, fmt.Errorf("expense %d: %w", e.ID, core.ErrExpenseNotFound)
	}
	f.expenses[e.ID] = e
	return &e, nil
}

func (f *fakeExpenseStore) DeleteExpense(_ context.Context, id int64) error {
	if _, ok := f.expenses[id]; !ok {
		return fmt.Errorf("expense %d: %w", id, core.ErrExpenseNotFound)
	}
	delete(f.expenses, id)
	return nil
}

func (f *fakeExpenseStore) ListExpenses(_ context.Context) ([]core.Expense, error) {
	return f.sorted(func(core.Expense) bool { return true }), nil
}

func (f *fakeExpenseStore) ListExpensesByCategory(_ context.Context, categoryID int64) ([]core.Expense, error) {
	return f.sorted(func(e core.Expense) bool { return e.CategoryID == categoryID }), nil
}

func (f *fakeExpenseStore) ListExpensesByDateRange(_ context.Context, start, end core.Date) ([]core.Expense, error) {
	return f.sorted(func(e core.Expense) bool {
		return !e.Date.Before(start) && !e.Date.After(end)
	}), nil
}

func (f *fakeExpenseStore) SumAmountByCategory(_ context.Context, categoryID int64) (core.Money, error) {
	var cents int64
	for _, e := range f.expenses {
		if e.CategoryID == categoryID {
			cents += e.Amount.Cents
		}
	}
	return core.Money{Cents: cents}, nil
}

func (f *fakeExpenseStore) sorted(keep func(core.Expense) bool) []core.Expense {
	var out []core.Expense
	for _, e := range f.expenses {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type recordedEvent struct {
	id     int64
	action string
}

type fakePublisher struct {
	events []recordedEvent
	err    error
}

func (f *fakePublisher) PublishExpenseEvent(_ context.Context, id int64, action string) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, recordedEvent{id: id, action: action})
	return nil
}
