package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"spendtrack/internal/core"
)

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func toCategoryResponse(c *core.Category) categoryResponse {
	resp := categoryResponse{ID: c.ID, Name: c.Name}
	if !c.CreatedAt.IsZero() {
		resp.CreatedAt = c.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	cat, err := s.categories.Create(r.Context(), req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Category created successfully", toCategoryResponse(cat))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]categoryResponse, 0, len(cats))
	for i := range cats {
		out = append(out, toCategoryResponse(&cats[i]))
	}
	respond(w, http.StatusOK, "Categories retrieved successfully", out)
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	cat, err := s.categories.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Category retrieved successfully", toCategoryResponse(cat))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	cat, err := s.categories.Update(r.Context(), id, req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Category updated successfully", toCategoryResponse(cat))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.categories.Delete(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Category deleted successfully", nil)
}

// pathID parses a numeric path parameter, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, "Invalid id", nil)
		return 0, false
	}
	return id, true
}
