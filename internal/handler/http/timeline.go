package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"remodel-portal/internal/logger"
	"remodel-portal/models"
)

func (h *Handler) loadTimeline(w http.ResponseWriter, r *http.Request) {
	view, err := h.services.TimelineService.GetTimeline(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeTimeline(w, view)
}

// timelineRequest wraps the submitted phase list the same way responses wrap
// the stored timeline.
type timelineRequest struct {
	Timeline models.Timeline `json:"timeline"`
}

// saveTimeline replaces the phase list wholesale and returns the stored
// timeline with its derived fields.
func (h *Handler) saveTimeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req timelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	view, err := h.services.TimelineService.SaveTimeline(ctx, req.Timeline)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Int("phases", len(view.Phases)).Msg("timeline saved")
	writeTimeline(w, view)
}

func (h *Handler) deletePhase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	view, err := h.services.TimelineService.DeletePhase(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("phase", id).Msg("phase deleted")
	writeTimeline(w, view)
}

func writeTimeline(w http.ResponseWriter, view models.TimelineView) {
	if view.Phases == nil {
		view.Phases = []models.Phase{}
	}

	writeSuccess(w, http.StatusOK, map[string]any{"timeline": view})
}
