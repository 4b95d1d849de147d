package http

import "net/http"

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.services.AggregatorService.ProjectTotals(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{
		"totalBudget":    totals.TotalBudget,
		"totalExpenses":  totals.TotalExpenses,
		"percentageUsed": totals.PercentageUsed,
	})
}

func (h *Handler) allCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.services.AggregatorService.AllCategories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"categories": categories})
}
