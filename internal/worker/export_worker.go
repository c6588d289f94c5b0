// Package worker drives the Google Sheets journal export. Events arrive over
// AMQP; a periodic sweep of unsynced rows covers lost messages.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spendtrack/internal/amqp"
	"spendtrack/internal/core"
	"spendtrack/internal/services"
	"spendtrack/internal/storage"
)

// Journal is the export destination.
type Journal interface {
	AppendExpense(ctx context.Context, e core.Expense, categoryName string) error
}

// ExpenseSource is the slice of storage the worker reads and updates.
type ExpenseSource interface {
	GetExpense(ctx context.Context, id int64) (*core.Expense, error)
	GetCategory(ctx context.Context, id int64) (*core.Category, error)
	ListUnsynced(ctx context.Context, limit int) ([]core.Expense, error)
	MarkSynced(ctx context.Context, id int64) error
}

var _ ExpenseSource = (*storage.Repository)(nil)

// ExportWorker appends expenses to the journal and marks them synced.
type ExportWorker struct {
	source    ExpenseSource
	journal   Journal
	batchSize int
}

func NewExportWorker(source ExpenseSource, journal Journal, batchSize int) *ExportWorker {
	return &ExportWorker{
		source:    source,
		journal:   journal,
		batchSize: batchSize,
	}
}

// HandleEvent processes one lifecycle event. Created and updated expenses
// are re-read from the database and exported; deletions are log-only, since
// the journal is append-only.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEvent) error {
	if msg.Action == services.ActionDeleted {
		slog.InfoContext(ctx, "expense deleted, journal row retained", "id", msg.ID)
		return nil
	}

	expense, err := w.source.GetExpense(ctx, msg.ID)
	if errors.Is(err, core.ErrExpenseNotFound) {
		// Deleted between publish and delivery. Nothing to export.
		slog.WarnContext(ctx, "expense vanished before export", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("load expense: %w", err)
	}

	return w.export(ctx, expense)
}

// Sweep exports a batch of expenses the event stream missed.
func (w *ExportWorker) Sweep(ctx context.Context) error {
	pending, err := w.source.ListUnsynced(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unsynced expenses: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "sweeping unsynced expenses", "count", len(pending))

	for i := range pending {
		if err := w.export(ctx, &pending[i]); err != nil {
			slog.ErrorContext(ctx, "failed to export expense",
				"id", pending[i].ID,
				"error", err)
		}
	}
	return nil
}

func (w *ExportWorker) export(ctx context.Context, e *core.Expense) error {
	categoryName := ""
	if e.CategoryID != 0 {
		cat, err := w.source.GetCategory(ctx, e.CategoryID)
		switch {
		case errors.Is(err, core.ErrCategoryNotFound):
			// Category deleted after the expense was read. Export detached.
		case err != nil:
			return fmt.Errorf("load category: %w", err)
		default:
			categoryName = cat.Name
		}
	}

	if err := w.journal.AppendExpense(ctx, *e, categoryName); err != nil {
		return fmt.Errorf("append to journal: %w", err)
	}

	if err := w.source.MarkSynced(ctx, e.ID); err != nil {
		// The row was exported; the sweep may duplicate it, which the
		// journal tolerates.
		slog.ErrorContext(ctx, "failed to mark expense synced", "id", e.ID, "error", err)
	}

	slog.InfoContext(ctx, "expense exported",
		"id", e.ID,
		"amount_cents", e.Amount.Cents)
	return nil
}
