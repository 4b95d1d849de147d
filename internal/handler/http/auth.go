package http

import (
	"encoding/json"
	"net/http"

	"remodel-portal/internal/logger"
	"remodel-portal/models"
)

// identifierRequest is the body of the session layer's lookup and verify
// calls. Identifier carries a username or an e-mail address.
type identifierRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password,omitempty"`
}

// lastLoginRequest carries the id of the user whose login just succeeded.
type lastLoginRequest struct {
	UserID string `json:"userId"`
}

func (h *Handler) userByIdentifier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req identifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	found, err := h.services.AuthService.LookupUser(ctx, req.Identifier)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"user": found.Summary()})
}

func (h *Handler) verifyCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req identifierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	verified, err := h.services.AuthService.VerifyCredentials(ctx, req.Identifier, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("id", verified.ID).Msg("credentials verified")
	writeSuccess(w, http.StatusOK, map[string]any{"user": verified.Summary()})
}

func (h *Handler) updateLastLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req lastLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	if err := h.services.AuthService.RecordLogin(ctx, req.UserID); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, nil)
}

// createUser is the admin-only account creation endpoint. The submitted
// plaintext password travels no further than the service's hasher.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	created, err := h.services.AuthService.CreateUser(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", created.ID).Str("username", created.Username).Msg("user created")
	writeSuccess(w, http.StatusCreated, map[string]any{"user": created})
}
