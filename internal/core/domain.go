// Package core holds the expense/category domain types, the money
// representation and the validation rules applied before persistence.
package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

type (
	// Date is a calendar date without a time-of-day component.
	Date struct {
		time.Time
	}

	// Money is an exact decimal amount carried as cents.
	Money struct {
		Cents int64
	}

	// Category is a named grouping bucket for expenses. Names are unique.
	Category struct {
		ID        int64
		Name      string
		CreatedAt time.Time
	}

	// Expense is a single dated outlay assigned to one category.
	// CategoryID is zero when the owning category has been deleted and the
	// expense was detached.
	Expense struct {
		ID          int64
		Amount      Money
		Description string
		Date        Date
		CategoryID  int64
		CreatedAt   time.Time
		UpdatedAt   time.Time
	}
)

// Domain errors. Services and the HTTP boundary discriminate on these with
// errors.Is; anything else is treated as an infrastructure failure.
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrInvalidAmount     = errors.New("invalid amount")
)

// ValidationError reports the first business rule violated by a payload.
// The message is user-facing and stable.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewDate creates a Date from year, month and day in UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a date in YYYY-MM-DD format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

// After reports whether d falls on a later calendar day than other,
// ignoring any time-of-day component.
func (d Date) After(other Date) bool {
	return d.startOfDay().After(other.startOfDay())
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.startOfDay().Before(other.startOfDay())
}

func (d Date) startOfDay() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON encodes the date as a quoted YYYY-MM-DD string, or null when
// the date is zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a quoted YYYY-MM-DD string. null and empty strings
// produce the zero date so the validator can report the missing field.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ValidateCategoryName checks the category naming rule: non-blank,
// 3 to 50 characters.
func ValidateCategoryName(name string) error {
	trimmed := strings.TrimSpace(name)
	if n := utf8.RuneCountInString(trimmed); n < 3 || n > 50 {
		return &ValidationError{Message: "Category name must be between 3 and 50 characters"}
	}
	return nil
}
