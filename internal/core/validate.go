package core

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// MaxAmountCents is the largest amount a single expense may carry (10,000.00).
const MaxAmountCents int64 = 1_000_000

// CategoryLookup is the collaborator the validator uses for the
// category-existence rule. Implementations hit the category store.
type CategoryLookup interface {
	CategoryExists(ctx context.Context, id int64) (bool, error)
}

// ValidateExpense checks an expense payload against the business rules in a
// fixed order and reports only the first violated rule. The cheap local rules
// run before the category-existence check so a locally malformed payload
// never causes a store round-trip.
//
// Order: amount positive, date not in the future, category id positive,
// description length, category exists, amount below the maximum.
//
// A rule violation is returned as *ValidationError; an error from the lookup
// collaborator is passed through as an infrastructure failure.
func ValidateExpense(ctx context.Context, e Expense, categories CategoryLookup) error {
	if e.Amount.Cents <= 0 {
		return &ValidationError{Message: "Expense amount must be a positive number"}
	}

	if e.Date.IsZero() || e.Date.After(Today()) {
		return &ValidationError{Message: "Expense date cannot be in the future"}
	}

	if e.CategoryID <= 0 {
		return &ValidationError{Message: "Category ID must be a valid positive number"}
	}

	// Length rules count characters, not bytes.
	if n := utf8.RuneCountInString(e.Description); n == 0 || n > 200 {
		return &ValidationError{Message: "Description must be between 1 and 200 characters"}
	}

	exists, err := categories.CategoryExists(ctx, e.CategoryID)
	if err != nil {
		return fmt.Errorf("check category %d: %w", e.CategoryID, err)
	}
	if !exists {
		return &ValidationError{Message: fmt.Sprintf("Category with ID %d does not exist", e.CategoryID)}
	}

	if e.Amount.Cents > MaxAmountCents {
		return &ValidationError{Message: "Expense amount exceeds maximum allowed value of 10,000"}
	}

	return nil
}
