package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
	})

	// routes behind identity-token verification; the auth middleware also
	// resolves the caller's sheet mapping into the request context
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/expenses", h.createExpense)
		r.Post("/api/categories", h.createCategory)
		r.Post("/api/subcategories", h.createSubcategory)
		r.Post("/api/income", h.createIncome)

		r.Get("/api/records", h.listRecords)

		r.Post("/api/sync/hydrate", h.hydrate)
		r.Post("/api/seed", h.seed)
	})

	return router
}
