package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remodel-portal/internal/service"
	"remodel-portal/models"
)

func TestTotals_Success(t *testing.T) {
	aggregator := &mockAggregatorService{
		totalsFn: func(_ context.Context) (models.Totals, error) {
			return models.Totals{TotalBudget: 600, TotalExpenses: 450, PercentageUsed: 75}, nil
		},
	}
	h := newTestHandler(t, &service.Services{AggregatorService: aggregator})

	req := httptest.NewRequest(http.MethodGet, "/api/totals", nil)
	rec := httptest.NewRecorder()

	h.totals(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, float64(600), envelope["totalBudget"])
	assert.Equal(t, float64(450), envelope["totalExpenses"])
	assert.Equal(t, float64(75), envelope["percentageUsed"])
}

func TestTotals_StorageError(t *testing.T) {
	aggregator := &mockAggregatorService{
		totalsFn: func(_ context.Context) (models.Totals, error) {
			return models.Totals{}, errStub
		},
	}
	h := newTestHandler(t, &service.Services{AggregatorService: aggregator})

	req := httptest.NewRequest(http.MethodGet, "/api/totals", nil)
	rec := httptest.NewRecorder()

	h.totals(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "StorageError", envelope["error"])
	assert.NotContains(t, envelope["message"], "boom", "raw error text must not leak")
}

func TestAllCategories_Success(t *testing.T) {
	aggregator := &mockAggregatorService{
		categoriesFn: func(_ context.Context) ([]models.CategoryEntry, error) {
			return []models.CategoryEntry{
				{Category: "Fees", Count: 1, Total: 300},
				{Category: "Materials", Count: 3, Total: 95},
			}, nil
		},
	}
	h := newTestHandler(t, &service.Services{AggregatorService: aggregator})

	req := httptest.NewRequest(http.MethodGet, "/api/get-all-categories", nil)
	rec := httptest.NewRecorder()

	h.allCategories(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeEnvelope(t, rec)["categories"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "Fees", list[0].(map[string]any)["category"])
}
