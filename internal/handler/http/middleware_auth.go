package http

import (
	"context"
	"net/http"

	"remodel-portal/internal/logger"
	"remodel-portal/internal/utils"
	"remodel-portal/models"
)

// userIDHeader carries the caller's user id. Session cookies are translated
// into this header by the external session layer before requests reach the
// core.
const userIDHeader = "x-user-id"

// requireAdmin is an HTTP middleware gating mutating endpoints.
//
// It reads the x-user-id header, resolves the account through
// [service.AuthService.ResolveByID], and on success stores the identity in
// the request context under [utils.IdentityCtxKey] before delegating to the
// next handler.
//
// The middleware rejects requests in the following cases:
//   - The header is absent or resolves to no account — 401 [ErrUnauthenticated].
//   - The account is deactivated — 403 [ErrForbidden].
//   - The account's role is not admin — 403 [ErrForbidden].
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		user, err := h.resolveCaller(r)
		if err != nil {
			log.Err(err).Msg("caller could not be identified")
			writeError(w, r, ErrUnauthenticated)
			return
		}

		if !user.IsActive {
			log.Warn().Str("id", user.ID).Msg("deactivated account attempted a mutation")
			writeError(w, r, ErrForbidden)
			return
		}
		if user.Role != models.RoleAdmin {
			log.Warn().Str("id", user.ID).Str("role", string(user.Role)).Msg("non-admin attempted a mutation")
			writeError(w, r, ErrForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), utils.IdentityCtxKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth attaches the caller identity to the context when the x-user-id
// header resolves to an active account, and admits the request either way.
// Read endpoints use it so responses can later be personalized without
// locking anonymous callers out.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := h.resolveCaller(r)
		if err == nil && user.IsActive {
			ctx := context.WithValue(r.Context(), utils.IdentityCtxKey, user)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r)
	})
}

// resolveCaller turns the x-user-id header into an account record.
func (h *Handler) resolveCaller(r *http.Request) (models.User, error) {
	userID := r.Header.Get(userIDHeader)
	if userID == "" {
		return models.User{}, ErrUnauthenticated
	}

	return h.services.AuthService.ResolveByID(r.Context(), userID)
}
