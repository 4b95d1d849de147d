package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"remodel-portal/internal/logger"
	"remodel-portal/internal/service"
	"remodel-portal/models"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.services.ProductService.ListProducts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"products": products})
}

// saveProduct creates, updates, or moves a product. The response carries the
// refreshed projection because positional ids shift on every mutation.
func (h *Handler) saveProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var save models.ProductSave
	if err := json.NewDecoder(r.Body).Decode(&save); err != nil {
		writeInvalidJSON(w, r, err)
		return
	}

	products, err := h.services.ProductService.SaveProduct(ctx, save)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("room", save.Room).Msg("product saved")
	writeSuccess(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	room := chi.URLParam(r, "room")
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, r, service.ErrInvalidDataProvided)
		return
	}

	if err := h.services.ProductService.DeleteProduct(ctx, room, index); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("room", room).Int("index", index).Msg("product deleted")
	writeSuccess(w, http.StatusOK, nil)
}
