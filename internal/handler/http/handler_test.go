package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"remodel-portal/internal/config"
	"remodel-portal/internal/logger"
	"remodel-portal/internal/service"
	"remodel-portal/internal/store"
	"remodel-portal/models"
)

// ─────────────────────────────────────────────
// Mock service layer
// ─────────────────────────────────────────────

// Each mock implements its service interface with per-test overridable
// function fields. A nil field yields zero values.

type mockAuthService struct {
	createUserFn        func(ctx context.Context, user models.User) (models.User, error)
	lookupUserFn        func(ctx context.Context, identifier string) (models.User, error)
	resolveByIDFn       func(ctx context.Context, id string) (models.User, error)
	verifyCredentialsFn func(ctx context.Context, identifier string, password string) (models.User, error)
	recordLoginFn       func(ctx context.Context, userID string) error
}

func (m *mockAuthService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(ctx, user)
	}
	return user, nil
}

func (m *mockAuthService) LookupUser(ctx context.Context, identifier string) (models.User, error) {
	if m.lookupUserFn != nil {
		return m.lookupUserFn(ctx, identifier)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockAuthService) ResolveByID(ctx context.Context, id string) (models.User, error) {
	if m.resolveByIDFn != nil {
		return m.resolveByIDFn(ctx, id)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockAuthService) VerifyCredentials(ctx context.Context, identifier string, password string) (models.User, error) {
	if m.verifyCredentialsFn != nil {
		return m.verifyCredentialsFn(ctx, identifier, password)
	}
	return models.User{}, service.ErrWrongCredentials
}

func (m *mockAuthService) RecordLogin(ctx context.Context, userID string) error {
	if m.recordLoginFn != nil {
		return m.recordLoginFn(ctx, userID)
	}
	return nil
}

func (m *mockAuthService) EnsureBootstrapAdmin(ctx context.Context, cfg config.Bootstrap) error {
	return nil
}

type mockRoomService struct {
	listFn   func(ctx context.Context) ([]models.Room, error)
	getFn    func(ctx context.Context, slug string) (models.Room, error)
	saveFn   func(ctx context.Context, slug string, room models.Room) (models.Room, error)
	createFn func(ctx context.Context, room models.Room) (models.Room, error)
	renameFn func(ctx context.Context, slug string, name string) (models.Room, error)
	deleteFn func(ctx context.Context, slug string) error
}

func (m *mockRoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockRoomService) GetRoom(ctx context.Context, slug string) (models.Room, error) {
	if m.getFn != nil {
		return m.getFn(ctx, slug)
	}
	return models.Room{}, store.ErrRoomNotFound
}

func (m *mockRoomService) SaveRoom(ctx context.Context, slug string, room models.Room) (models.Room, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, slug, room)
	}
	room.Slug = slug
	return room, nil
}

func (m *mockRoomService) CreateRoom(ctx context.Context, room models.Room) (models.Room, error) {
	if m.createFn != nil {
		return m.createFn(ctx, room)
	}
	return room, nil
}

func (m *mockRoomService) RenameRoom(ctx context.Context, slug string, name string) (models.Room, error) {
	if m.renameFn != nil {
		return m.renameFn(ctx, slug, name)
	}
	return models.Room{Slug: slug, Name: name}, nil
}

func (m *mockRoomService) DeleteRoom(ctx context.Context, slug string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, slug)
	}
	return nil
}

type mockProductService struct {
	listFn   func(ctx context.Context) ([]models.Product, error)
	saveFn   func(ctx context.Context, save models.ProductSave) ([]models.Product, error)
	deleteFn func(ctx context.Context, room string, index int) error
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockProductService) SaveProduct(ctx context.Context, save models.ProductSave) ([]models.Product, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, save)
	}
	return nil, nil
}

func (m *mockProductService) DeleteProduct(ctx context.Context, room string, index int) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, room, index)
	}
	return nil
}

type mockExpenseService struct {
	listFn      func(ctx context.Context) ([]models.Expense, error)
	replaceFn   func(ctx context.Context, expenses []models.Expense) ([]models.Expense, error)
	saveFn      func(ctx context.Context, expense models.Expense) (models.Expense, error)
	deleteFn    func(ctx context.Context, id string) error
	summarizeFn func(ctx context.Context) (models.ExpensesSummary, error)
}

func (m *mockExpenseService) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockExpenseService) ReplaceExpenses(ctx context.Context, expenses []models.Expense) ([]models.Expense, error) {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, expenses)
	}
	return expenses, nil
}

func (m *mockExpenseService) SaveExpense(ctx context.Context, expense models.Expense) (models.Expense, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, expense)
	}
	return expense, nil
}

func (m *mockExpenseService) DeleteExpense(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockExpenseService) SummarizeExpenses(ctx context.Context) (models.ExpensesSummary, error) {
	if m.summarizeFn != nil {
		return m.summarizeFn(ctx)
	}
	return models.ExpensesSummary{}, nil
}

type mockAggregatorService struct {
	totalsFn     func(ctx context.Context) (models.Totals, error)
	categoriesFn func(ctx context.Context) ([]models.CategoryEntry, error)
}

func (m *mockAggregatorService) ProjectTotals(ctx context.Context) (models.Totals, error) {
	if m.totalsFn != nil {
		return m.totalsFn(ctx)
	}
	return models.Totals{}, nil
}

func (m *mockAggregatorService) AllCategories(ctx context.Context) ([]models.CategoryEntry, error) {
	if m.categoriesFn != nil {
		return m.categoriesFn(ctx)
	}
	return nil, nil
}

type mockTimelineService struct {
	getFn         func(ctx context.Context) (models.TimelineView, error)
	saveFn        func(ctx context.Context, timeline models.Timeline) (models.TimelineView, error)
	deletePhaseFn func(ctx context.Context, phaseID string) (models.TimelineView, error)
}

func (m *mockTimelineService) GetTimeline(ctx context.Context) (models.TimelineView, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return models.TimelineView{}, nil
}

func (m *mockTimelineService) SaveTimeline(ctx context.Context, timeline models.Timeline) (models.TimelineView, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, timeline)
	}
	return models.TimelineView{Phases: timeline.Phases}, nil
}

func (m *mockTimelineService) DeletePhase(ctx context.Context, phaseID string) (models.TimelineView, error) {
	if m.deletePhaseFn != nil {
		return m.deletePhaseFn(ctx, phaseID)
	}
	return models.TimelineView{}, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// newTestHandler builds a Handler over the given services, filling the rest
// with permissive mocks.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()

	if svcs == nil {
		svcs = &service.Services{}
	}
	if svcs.AuthService == nil {
		svcs.AuthService = &mockAuthService{}
	}
	if svcs.RoomService == nil {
		svcs.RoomService = &mockRoomService{}
	}
	if svcs.ProductService == nil {
		svcs.ProductService = &mockProductService{}
	}
	if svcs.ExpenseService == nil {
		svcs.ExpenseService = &mockExpenseService{}
	}
	if svcs.AggregatorService == nil {
		svcs.AggregatorService = &mockAggregatorService{}
	}
	if svcs.TimelineService == nil {
		svcs.TimelineService = &mockTimelineService{}
	}

	return NewHandler(svcs, logger.Nop())
}

// decodeEnvelope parses the recorded response body into a generic envelope.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "response must be valid JSON")
	return envelope
}

// jsonBody serialises v for use as a request body.
func jsonBody(t *testing.T, v any) string {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

// errStub stands in for an unexpected storage failure.
var errStub = errors.New("boom")

// adminUser is the identity attached by the auth middleware in gated tests.
var adminUser = models.User{
	ID:       "admin-1",
	Username: "admin",
	Email:    "admin@example.com",
	Role:     models.RoleAdmin,
	IsActive: true,
}
