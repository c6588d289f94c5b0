// Package http exposes the expense and category services over a JSON API.
// Every route except /health and /api/login sits behind JWT auth.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	applog "spendtrack/internal/log"
	"spendtrack/internal/services"
	"spendtrack/internal/storage"
)

// UserStore is the credential lookup the login handler needs.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*storage.User, error)
}

type Server struct {
	http.Server

	categories *services.CategoryService
	expenses   *services.ExpenseService
	users      UserStore

	jwtSecret string
	tokenTTL  time.Duration
}

// NewServer configures the router and returns a ready-to-run server.
func NewServer(
	addr string,
	categories *services.CategoryService,
	expenses *services.ExpenseService,
	users UserStore,
	jwtSecret string,
	tokenTTL time.Duration,
	logger *applog.Logger,
) *Server {
	s := &Server{
		categories: categories,
		expenses:   expenses,
		users:      users,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
	}

	s.Server = http.Server{
		Addr:         addr,
		Handler:      s.routes(logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) routes(logger *applog.Logger) http.Handler {
	r := chi.NewRouter()
	if logger != nil {
		r.Use(applog.RequestLogger(logger))
	}

	r.Get("/health", handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)

		r.With(jwtAuth(s.jwtSecret)).Group(func(r chi.Router) {
			r.Route("/categories", func(r chi.Router) {
				r.Post("/", s.handleCreateCategory)
				r.Get("/", s.handleListCategories)
				r.Get("/{id}", s.handleGetCategory)
				r.Put("/{id}", s.handleUpdateCategory)
				r.Delete("/{id}", s.handleDeleteCategory)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", s.handleCreateExpense)
				r.Get("/", s.handleListExpenses)
				r.Put("/{id}", s.handleUpdateExpense)
				r.Delete("/{id}", s.handleDeleteExpense)
				r.Get("/category/{categoryId}", s.handleListExpensesByCategory)
				r.Get("/date-range", s.handleListExpensesByDateRange)
				r.Get("/total/category/{categoryId}", s.handleTotalByCategory)
			})
		})
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
