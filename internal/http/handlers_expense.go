package http

import (
	"encoding/json"
	"net/http"
	"time"

	"spendtrack/internal/core"
)

type expenseRequest struct {
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
	Date        core.Date  `json:"date"`
	CategoryID  int64      `json:"categoryId"`
}

func (req expenseRequest) toExpense() core.Expense {
	return core.Expense{
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		CategoryID:  req.CategoryID,
	}
}

type expenseResponse struct {
	ID          int64      `json:"id"`
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
	Date        core.Date  `json:"date"`
	CategoryID  *int64     `json:"categoryId"`
	CreatedAt   string     `json:"createdAt,omitempty"`
	UpdatedAt   string     `json:"updatedAt,omitempty"`
}

func toExpenseResponse(e *core.Expense) expenseResponse {
	resp := expenseResponse{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Date:        e.Date,
	}
	// Detached expenses serialize their category as null.
	if e.CategoryID != 0 {
		id := e.CategoryID
		resp.CategoryID = &id
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !e.UpdatedAt.IsZero() {
		resp.UpdatedAt = e.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func toExpenseResponses(expenses []core.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, toExpenseResponse(&expenses[i]))
	}
	return out
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	stored, err := s.expenses.Create(r.Context(), req.toExpense())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Expense created successfully", toExpenseResponse(stored))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Expenses retrieved successfully", toExpenseResponses(expenses))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	stored, err := s.expenses.Update(r.Context(), id, req.toExpense())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Expense updated successfully", toExpenseResponse(stored))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.expenses.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Expense deleted successfully", nil)
}

func (s *Server) handleListExpensesByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}
	expenses, err := s.expenses.ListByCategory(r.Context(), categoryID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Expenses retrieved successfully", toExpenseResponses(expenses))
}

func (s *Server) handleListExpensesByDateRange(w http.ResponseWriter, r *http.Request) {
	start, err := core.ParseDate(r.URL.Query().Get("startDate"))
	if err != nil {
		respond(w, http.StatusBadRequest, "Invalid startDate: expected YYYY-MM-DD", nil)
		return
	}
	end, err := core.ParseDate(r.URL.Query().Get("endDate"))
	if err != nil {
		respond(w, http.StatusBadRequest, "Invalid endDate: expected YYYY-MM-DD", nil)
		return
	}

	expenses, err := s.expenses.ListByDateRange(r.Context(), start, end)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Expenses retrieved successfully", toExpenseResponses(expenses))
}

func (s *Server) handleTotalByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}
	total, err := s.expenses.TotalByCategory(r.Context(), categoryID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Total retrieved successfully", total)
}
