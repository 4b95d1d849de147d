package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remodel-portal/internal/service"
	"remodel-portal/internal/store"
	"remodel-portal/models"
)

func TestLoadExpenses_Success(t *testing.T) {
	expenses := &mockExpenseService{
		listFn: func(_ context.Context) ([]models.Expense, error) {
			return []models.Expense{
				{ID: "e-1", Description: "Permit fee", Category: "Fees", Amount: 300},
			}, nil
		},
	}
	h := newTestHandler(t, &service.Services{ExpenseService: expenses})

	req := httptest.NewRequest(http.MethodGet, "/api/load-expenses", nil)
	rec := httptest.NewRecorder()

	h.loadExpenses(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeEnvelope(t, rec)["expenses"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "e-1", list[0].(map[string]any)["id"])
}

func TestSaveExpenses_ReplacesList(t *testing.T) {
	var received []models.Expense
	expenses := &mockExpenseService{
		replaceFn: func(_ context.Context, list []models.Expense) ([]models.Expense, error) {
			received = list
			return list, nil
		},
	}
	h := newTestHandler(t, &service.Services{ExpenseService: expenses})

	body := `{"expenses":[
		{"id":"e-1","description":"Paint","category":"Materials","amount":80},
		{"description":"Dumpster","category":"Waste","amount":120,"rooms":["kitchen","bath"]}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/save-expenses", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.saveExpenses(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, received, 2)
	assert.Equal(t, []string{"kitchen", "bath"}, received[1].Rooms)
}

func TestSaveExpenses_ValidationError(t *testing.T) {
	expenses := &mockExpenseService{
		replaceFn: func(_ context.Context, _ []models.Expense) ([]models.Expense, error) {
			return nil, &service.ValidationError{
				Field:   "expenses[1].roomAllocations",
				Message: "allocated amounts sum to 80.00, expense amount is 100.00",
			}
		},
	}
	h := newTestHandler(t, &service.Services{ExpenseService: expenses})

	req := httptest.NewRequest(http.MethodPost, "/api/save-expenses", strings.NewReader(`{"expenses":[]}`))
	rec := httptest.NewRecorder()

	h.saveExpenses(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "ValidationError", envelope["error"])
	assert.Contains(t, envelope["message"], "expenses[1]")
}

func TestSaveExpense_Single(t *testing.T) {
	h := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/expenses",
		strings.NewReader(`{"id":"e-1","description":"Paint","amount":80}`))
	rec := httptest.NewRecorder()

	h.saveExpense(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	expense := decodeEnvelope(t, rec)["expense"].(map[string]any)
	assert.Equal(t, "e-1", expense["id"])
}

func TestDeleteExpense_NotFound(t *testing.T) {
	expenses := &mockExpenseService{
		deleteFn: func(_ context.Context, _ string) error {
			return store.ErrExpenseNotFound
		},
	}
	h := newTestHandler(t, &service.Services{ExpenseService: expenses})

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/expenses/ghost", nil), "id", "ghost")
	rec := httptest.NewRecorder()

	h.deleteExpense(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", decodeEnvelope(t, rec)["error"])
}

func TestExpensesSummary_Success(t *testing.T) {
	expenses := &mockExpenseService{
		summarizeFn: func(_ context.Context) (models.ExpensesSummary, error) {
			return models.ExpensesSummary{
				ByCategory: []models.CategorySummary{{Category: "Fees", TotalAmount: 300, Count: 1}},
				ByRoom:     []models.RoomSpendSummary{{Room: "general", TotalAmount: 300, Count: 1}},
			}, nil
		},
	}
	h := newTestHandler(t, &service.Services{ExpenseService: expenses})

	req := httptest.NewRequest(http.MethodGet, "/api/expenses-summary", nil)
	rec := httptest.NewRecorder()

	h.expensesSummary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)

	byCategory := envelope["byCategory"].([]any)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Fees", byCategory[0].(map[string]any)["category"])

	byRoom := envelope["byRoom"].([]any)
	require.Len(t, byRoom, 1)
	assert.Equal(t, "general", byRoom[0].(map[string]any)["room"])
}
