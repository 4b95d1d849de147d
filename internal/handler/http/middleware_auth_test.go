package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remodel-portal/internal/service"
	"remodel-portal/internal/store"
	"remodel-portal/internal/utils"
	"remodel-portal/models"
)

// identityProbe records the identity the middleware attached, if any.
func identityProbe(called *bool, identity *models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if user, ok := utils.GetIdentityFromContext(r.Context()); ok {
			*identity = user
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func resolveAs(users map[string]models.User) *mockAuthService {
	return &mockAuthService{
		resolveByIDFn: func(_ context.Context, id string) (models.User, error) {
			user, ok := users[id]
			if !ok {
				return models.User{}, store.ErrNoUserWasFound
			}
			return user, nil
		},
	}
}

func TestRequireAdmin_MissingHeader(t *testing.T) {
	h := newTestHandler(t, nil)

	var called bool
	var identity models.User
	mw := h.requireAdmin(identityProbe(&called, &identity))

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", nil)
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthenticated", decodeEnvelope(t, rec)["error"])
	assert.False(t, called)
}

func TestRequireAdmin_UnknownUser(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: resolveAs(nil)})

	var called bool
	var identity models.User
	mw := h.requireAdmin(identityProbe(&called, &identity))

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", nil)
	req.Header.Set(userIDHeader, "ghost")
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireAdmin_DeactivatedAccount(t *testing.T) {
	disabled := adminUser
	disabled.IsActive = false
	h := newTestHandler(t, &service.Services{AuthService: resolveAs(map[string]models.User{"admin-1": disabled})})

	var called bool
	var identity models.User
	mw := h.requireAdmin(identityProbe(&called, &identity))

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", nil)
	req.Header.Set(userIDHeader, "admin-1")
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", decodeEnvelope(t, rec)["error"])
	assert.False(t, called)
}

func TestRequireAdmin_NonAdminRole(t *testing.T) {
	viewer := models.User{ID: "u-1", Username: "ana", Role: models.RoleUser, IsActive: true}
	h := newTestHandler(t, &service.Services{AuthService: resolveAs(map[string]models.User{"u-1": viewer})})

	var called bool
	var identity models.User
	mw := h.requireAdmin(identityProbe(&called, &identity))

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", nil)
	req.Header.Set(userIDHeader, "u-1")
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: resolveAs(map[string]models.User{"admin-1": adminUser})})

	var called bool
	var identity models.User
	mw := h.requireAdmin(identityProbe(&called, &identity))

	req := httptest.NewRequest(http.MethodPost, "/api/rooms", nil)
	req.Header.Set(userIDHeader, "admin-1")
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, called)
	assert.Equal(t, "admin-1", identity.ID, "identity must be attached to the context")
}

func TestOptionalAuth_AdmitsAnonymous(t *testing.T) {
	h := newTestHandler(t, nil)

	var called bool
	var identity models.User
	mw := h.optionalAuth(identityProbe(&called, &identity))

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.True(t, called)
	assert.Empty(t, identity.ID)
}

func TestOptionalAuth_AttachesKnownIdentity(t *testing.T) {
	viewer := models.User{ID: "u-1", Username: "ana", Role: models.RoleUser, IsActive: true}
	h := newTestHandler(t, &service.Services{AuthService: resolveAs(map[string]models.User{"u-1": viewer})})

	var called bool
	var identity models.User
	mw := h.optionalAuth(identityProbe(&called, &identity))

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	req.Header.Set(userIDHeader, "u-1")
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u-1", identity.ID)
}

func TestOptionalAuth_IgnoresDeactivatedIdentity(t *testing.T) {
	disabled := models.User{ID: "u-1", Username: "ana", Role: models.RoleUser, IsActive: false}
	h := newTestHandler(t, &service.Services{AuthService: resolveAs(map[string]models.User{"u-1": disabled})})

	var called bool
	var identity models.User
	mw := h.optionalAuth(identityProbe(&called, &identity))

	req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	req.Header.Set(userIDHeader, "u-1")
	rec := httptest.NewRecorder()

	mw.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called, "request is still admitted")
	assert.Empty(t, identity.ID, "deactivated identity must not be attached")
}
