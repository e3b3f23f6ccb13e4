package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"fireplan/internal/core"
	applog "fireplan/internal/log"
)

type expenseRow struct {
	ID       int64
	Category string
	Product  string
	Cost     string
}

type categoryRow struct {
	Name  string
	Total string
}

type ledgerView struct {
	Rows       []expenseRow
	ByCategory []categoryRow
	Total      string
	Empty      bool
}

// ledgerView re-reads the ledger on every call so partials always render the
// current state.
func (s *Server) ledgerView(ctx context.Context) (ledgerView, error) {
	snap, err := s.svc.Snapshot(ctx)
	if err != nil {
		return ledgerView{}, fmt.Errorf("ledger snapshot: %w", err)
	}

	view := ledgerView{
		Total: formatAmount(snap.Total),
		Empty: len(snap.Records) == 0,
	}
	for _, r := range snap.Records {
		view.Rows = append(view.Rows, expenseRow{
			ID:       r.ID,
			Category: r.Category,
			Product:  r.Product,
			Cost:     formatAmount(r.Cost),
		})
	}
	for _, t := range snap.ByCategory {
		view.ByCategory = append(view.ByCategory, categoryRow{
			Name:  t.Name,
			Total: formatAmount(t.Total),
		})
	}
	return view, nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	cats, err := s.svc.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Category list error", applog.FieldError, err)
	}
	ledger, err := s.ledgerView(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger snapshot error", applog.FieldError, err)
	}

	data := struct {
		Categories []string
		Ledger     ledgerView
	}{
		Categories: cats,
		Ledger:     ledger,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed",
			applog.FieldError, err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCreateExpenses inserts a batch of expenses parsed from the
// comma-separated products and costs fields. A malformed batch inserts
// nothing.
func (s *Server) handleCreateExpenses(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	category := sanitizeInput(r.Form.Get("category"))
	products := sanitizeInput(r.Form.Get("products"))
	costs := sanitizeInput(r.Form.Get("costs"))

	ids, err := s.svc.CreateExpenses(r.Context(), category, products, costs)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrMalformedInput), errors.Is(err, core.ErrEmptyCategory):
			UnprocessableEntityError(err.Error()).Write(w)
		default:
			slog.ErrorContext(r.Context(), "Failed to save expenses",
				applog.FieldError, err,
				applog.FieldCategory, category,
				applog.FieldComponent, applog.ComponentLedger)
			InternalServerError("Error saving expenses").Write(w)
		}
		return
	}

	slog.InfoContext(r.Context(), "Expenses created",
		applog.FieldCategory, category,
		applog.FieldRecordCount, len(ids))

	NewHTMXResponse().
		TriggerLedgerChanged(len(ids)).
		TriggerFormReset().
		TriggerSuccessNotification(fmt.Sprintf("Recorded %d expense(s) under %s", len(ids), category)).
		Write(w)
}

// handleDeleteExpenses removes the checked rows. Ids that no longer exist are
// ignored, so repeating a delete still succeeds.
func (s *Server) handleDeleteExpenses(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodDelete, http.MethodPost); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	ids, err := ParseIDList(r.Form)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	if err := s.svc.DeleteExpenses(r.Context(), ids); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete expenses",
			applog.FieldError, err,
			applog.FieldRecordCount, len(ids))
		InternalServerError("Error deleting expenses").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerLedgerChanged(len(ids)).
		TriggerSuccessNotification(fmt.Sprintf("Deleted %d expense(s)", len(ids))).
		Write(w)
}

// handleResetLedger wipes every expense.
func (s *Server) handleResetLedger(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	if err := s.svc.ResetLedger(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to reset ledger", applog.FieldError, err)
		InternalServerError("Error resetting ledger").Write(w)
		return
	}

	NewHTMXResponse().
		TriggerLedgerChanged(0).
		TriggerSuccessNotification("Ledger cleared").
		Write(w)
}

// handleExpenseTable renders the expense table partial.
func (s *Server) handleExpenseTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	view, err := s.ledgerView(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense table error", applog.FieldError, err)
		_, _ = w.Write([]byte(`<section id="expense-table" class="expense-table"><div class="placeholder">Error loading expenses</div></section>`))
		return
	}
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="expense-table" class="expense-table"><div class="placeholder">Total: ` + view.Total + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "expense_table.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error",
			applog.FieldError, err, "template", "expense_table.html")
		_, _ = w.Write([]byte(`<section id="expense-table" class="expense-table"><div class="placeholder">Error rendering expenses</div></section>`))
	}
}
