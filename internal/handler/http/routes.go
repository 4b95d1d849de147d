package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Route("/api", func(api chi.Router) {
		// identity endpoints consumed by the external session layer
		api.Group(func(r chi.Router) {
			r.Post("/auth/user-by-identifier", h.userByIdentifier)
			r.Post("/auth/verify", h.verifyCredentials)
			r.Post("/auth/update-last-login", h.updateLastLogin)
		})

		// reads admit anonymous callers
		api.Group(func(r chi.Router) {
			r.Use(h.optionalAuth)

			r.Get("/rooms", h.listRooms)
			r.Get("/load-room/{slug}", h.loadRoom)
			r.Get("/products", h.listProducts)
			r.Get("/load-expenses", h.loadExpenses)
			r.Get("/expenses-summary", h.expensesSummary)
			r.Get("/totals", h.totals)
			r.Get("/get-all-categories", h.allCategories)
			r.Get("/timeline", h.loadTimeline)
		})

		// mutations require the admin role
		api.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Post("/auth/users", h.createUser)

			r.Post("/rooms", h.createRoom)
			r.Post("/rooms/{slug}/rename", h.renameRoom)
			r.Delete("/rooms/{slug}", h.deleteRoom)
			r.Post("/save-room/{slug}", h.saveRoom)

			r.Post("/products", h.saveProduct)
			r.Delete("/products/{room}/{index}", h.deleteProduct)

			r.Post("/save-expenses", h.saveExpenses)
			r.Post("/expenses", h.saveExpense)
			r.Delete("/expenses/{id}", h.deleteExpense)

			r.Post("/timeline", h.saveTimeline)
			r.Delete("/timeline/phase/{id}", h.deletePhase)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorKind(w, http.StatusNotFound, kindNotFound, "no such endpoint")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorKind(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	})

	return router
}
