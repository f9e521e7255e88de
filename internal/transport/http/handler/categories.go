package handler

import (
	"net/http"

	"github.com/go-auth-api/internal/application/category"
	"github.com/go-auth-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// CategoryHandler handles category endpoints.
type CategoryHandler struct {
	svc category.Service
}

func NewCategoryHandler(svc category.Service) *CategoryHandler { return &CategoryHandler{svc: svc} }

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, meta, err := h.svc.List(r.Context(), parsePageQuery(r))
	if err != nil {
		httpError(w, r, err)
		return
	}
	respondPage(w, "Categories retrieved successfully", categories, meta)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CategoryInput
	if !decode(w, r, &input) {
		return
	}
	created, err := h.svc.Create(r.Context(), input)
	if err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusCreated, "Category created successfully", created)
}

func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Category retrieved successfully", c)
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input domain.UpdateCategoryInput
	if !decode(w, r, &input) {
		return
	}
	updated, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Category updated successfully", updated)
}

func (h *CategoryHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.Restore(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Category restored successfully", nil)
}

// Delete is a soft delete; Destroy removes the row.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Category deleted successfully", nil)
}

func (h *CategoryHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Destroy(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, r, err)
		return
	}
	respond(w, http.StatusOK, "Category destroyed successfully", nil)
}
