package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"spendtrack/internal/core"
)

func TestCategoryServiceCreate(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())
	ctx := context.Background()

	cat, err := svc.Create(ctx, "Groceries")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cat.ID == 0 || cat.Name != "Groceries" {
		t.Errorf("created category = %+v", cat)
	}

	trimmed, err := svc.Create(ctx, "  Travel  ")
	if err != nil {
		t.Fatalf("Create trimmed: %v", err)
	}
	if trimmed.Name != "Travel" {
		t.Errorf("name = %q, want surrounding whitespace stripped", trimmed.Name)
	}
}

func TestCategoryServiceCreateInvalidName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())
	ctx := context.Background()

	cases := []struct {
		name  string
		input string
	}{
		{"too short", "ab"},
		{"too long", strings.Repeat("x", 51)},
		{"whitespace only", "   "},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			var verr *core.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Message != "Category name must be between 3 and 50 characters" {
				t.Errorf("message = %q", verr.Message)
			}
		})
	}
}

func TestCategoryServiceCreateDuplicate(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "Groceries"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Create(ctx, "Groceries")
	if !errors.Is(err, core.ErrDuplicateCategory) {
		t.Errorf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestCategoryServiceUpdate(t *testing.T) {
	store := newFakeCategoryStore()
	svc := NewCategoryService(store)
	ctx := context.Background()

	cat, err := svc.Create(ctx, "Groceries")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "Travel"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("rename", func(t *testing.T) {
		renamed, err := svc.Update(ctx, cat.ID, "Food")
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if renamed.Name != "Food" || renamed.ID != cat.ID {
			t.Errorf("renamed = %+v", renamed)
		}
	})

	t.Run("rename to own name is a no-op", func(t *testing.T) {
		same, err := svc.Update(ctx, cat.ID, "Food")
		if err != nil {
			t.Fatalf("Update to same name: %v", err)
		}
		if same.Name != "Food" {
			t.Errorf("name = %q", same.Name)
		}
	})

	t.Run("rename onto another category conflicts", func(t *testing.T) {
		_, err := svc.Update(ctx, cat.ID, "Travel")
		if !errors.Is(err, core.ErrDuplicateCategory) {
			t.Errorf("expected ErrDuplicateCategory, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, 404, "Anything")
		if !errors.Is(err, core.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("invalid name checked before lookup", func(t *testing.T) {
		_, err := svc.Update(ctx, 404, "ab")
		var verr *core.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("expected validation error, got %v", err)
		}
	})
}

func TestCategoryServiceGetAndList(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())
	ctx := context.Background()

	first, err := svc.Create(ctx, "Groceries")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "Travel"); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Groceries" {
		t.Errorf("Get returned %+v", got)
	}

	if _, err := svc.Get(ctx, 404); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Errorf("Get unknown: expected ErrCategoryNotFound, got %v", err)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List returned %d categories, want 2", len(all))
	}
}

func TestCategoryServiceDelete(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryStore())
	ctx := context.Background()

	cat, err := svc.Create(ctx, "Groceries")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, cat.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, cat.ID); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Errorf("second delete: expected ErrCategoryNotFound, got %v", err)
	}
}
