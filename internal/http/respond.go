package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"spendtrack/internal/core"
	"spendtrack/internal/storage"
)

// envelope is the wire shape of every response body.
type envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Message: message, Data: data}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is an infrastructure failure and gets a generic 500 body.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		respond(w, http.StatusBadRequest, verr.Message, nil)
	case errors.Is(err, core.ErrCategoryNotFound):
		respond(w, http.StatusNotFound, "Category not found", nil)
	case errors.Is(err, core.ErrExpenseNotFound):
		respond(w, http.StatusNotFound, "Expense not found", nil)
	case errors.Is(err, core.ErrDuplicateCategory):
		respond(w, http.StatusConflict, "Category name already exists", nil)
	case errors.Is(err, storage.ErrUserNotFound):
		respond(w, http.StatusUnauthorized, "Invalid credentials", nil)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		respond(w, http.StatusInternalServerError, "Internal server error", nil)
	}
}
