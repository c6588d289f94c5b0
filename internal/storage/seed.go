package storage

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

var defaultCategories = []string{"Groceries", "Utilities", "Travel"}

// Seed creates the initial admin user and the starter categories when the
// database is empty. Existing data is never touched, so Seed is safe to run
// on every startup.
func Seed(ctx context.Context, repo *Repository, adminUser, adminPassword string) error {
	users, err := repo.CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if users == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		if _, err := repo.CreateUser(ctx, adminUser, string(hash), "admin"); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
		slog.InfoContext(ctx, "seeded admin user", "username", adminUser)
	}

	categories, err := repo.CountCategories(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if categories == 0 {
		for _, name := range defaultCategories {
			if _, err := repo.CreateCategory(ctx, name); err != nil {
				return fmt.Errorf("seed category %q: %w", name, err)
			}
		}
		slog.InfoContext(ctx, "seeded default categories", "count", len(defaultCategories))
	}

	return nil
}
