package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"remodel-portal/internal/logger"
	"remodel-portal/models"
)

func (h *Handler) loadExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.services.ExpenseService.ListExpenses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"expenses": expenses})
}

// saveExpenses replaces the whole expense list: submitted expenses are
// upserted and stored ones missing from the body are deleted.
func (h *Handler) saveExpenses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req struct {
		Expenses []models.Expense `json:"expenses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	saved, err := h.services.ExpenseService.ReplaceExpenses(ctx, req.Expenses)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int("count", len(saved)).Msg("expense list replaced")
	writeSuccess(w, http.StatusOK, map[string]any{"expenses": saved})
}

func (h *Handler) saveExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	saved, err := h.services.ExpenseService.SaveExpense(ctx, expense)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"expense": saved})
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	if err := h.services.ExpenseService.DeleteExpense(ctx, id); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", id).Msg("expense deleted")
	writeSuccess(w, http.StatusOK, nil)
}

func (h *Handler) expensesSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.ExpenseService.SummarizeExpenses(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"byCategory": summary.ByCategory,
		"byRoom":     summary.ByRoom,
	})
}
