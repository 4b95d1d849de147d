package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"remodel-portal/internal/logger"
	"remodel-portal/models"
)

func (h *Handler) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.services.RoomService.ListRooms(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (h *Handler) loadRoom(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	room, err := h.services.RoomService.GetRoom(r.Context(), slug)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"roomData": room})
}

// saveRoom replaces the room's item list. The slug comes from the path; a
// slug inside the body is ignored.
func (h *Handler) saveRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	slug := chi.URLParam(r, "slug")

	var room models.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	saved, err := h.services.RoomService.SaveRoom(ctx, slug, room)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("room", slug).Int("items", len(saved.Items)).Msg("room saved")
	writeSuccess(w, http.StatusOK, map[string]any{"roomData": saved})
}

func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var room models.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	created, err := h.services.RoomService.CreateRoom(ctx, room)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("room", created.Slug).Msg("room created")
	writeSuccess(w, http.StatusCreated, map[string]any{"room": created})
}

func (h *Handler) renameRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	renamed, err := h.services.RoomService.RenameRoom(ctx, slug, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"room": renamed})
}

func (h *Handler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	slug := chi.URLParam(r, "slug")

	if err := h.services.RoomService.DeleteRoom(ctx, slug); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("room", slug).Msg("room deleted")
	writeSuccess(w, http.StatusOK, nil)
}
