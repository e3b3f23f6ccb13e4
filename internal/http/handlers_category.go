package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fireplan/internal/core"
	applog "fireplan/internal/log"
)

// handleAddCategory registers a new category name. Duplicates are a no-op.
func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	if err := s.svc.AddCategory(r.Context(), name); err != nil {
		if errors.Is(err, core.ErrEmptyCategory) {
			UnprocessableEntityError("Category name must not be empty").Write(w)
			return
		}
		slog.ErrorContext(r.Context(), "Failed to add category",
			applog.FieldError, err, applog.FieldCategory, name)
		InternalServerError("Error adding category").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerCategoriesChanged().
		TriggerFormReset().
		TriggerSuccessNotification("Category added: " + name).
		Write(w)
}

// handleDeleteCategory removes a category name. Existing expenses keep their
// label; deleting an unknown name is a no-op.
func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodDelete, http.MethodPost); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	if err := s.svc.DeleteCategory(r.Context(), name); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete category",
			applog.FieldError, err, applog.FieldCategory, name)
		InternalServerError("Error deleting category").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerCategoriesChanged().
		TriggerSuccessNotification("Category removed: " + name).
		Write(w)
}

// handleCategoryList renders the category list partial.
func (s *Server) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	cats, err := s.svc.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Category list error", applog.FieldError, err)
		_, _ = w.Write([]byte(`<section id="categories" class="categories"><div class="placeholder">Error loading categories</div></section>`))
		return
	}
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="categories" class="categories"></section>`))
		return
	}

	data := struct {
		Categories []string
	}{Categories: cats}
	if err := s.templates.ExecuteTemplate(w, "categories.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error",
			applog.FieldError, err, "template", "categories.html")
		_, _ = w.Write([]byte(`<section id="categories" class="categories"><div class="placeholder">Error rendering categories</div></section>`))
	}
}
