package http

import (
	"net/http"

	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/utils"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// hydrate rebuilds the caller's cache from the authoritative sheets. The
// rebuild runs synchronously within the request; the per-user lock keeps
// concurrent writes out while it runs.
func (h *Handler) hydrate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	sc, ok := utils.GetSyncContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.HydrationService.Hydrate(r.Context(), sc); err != nil {
		log.Err(err).Str("func", "*Handler.hydrate").Str("user_id", sc.UserID).Msg("hydration failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]string{"status": "hydrated"}, http.StatusOK)
}

// seed writes the default category taxonomy into a fresh workbook.
func (h *Handler) seed(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	sc, ok := utils.GetSyncContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	written, err := h.services.SeedService.Seed(r.Context(), sc)
	if err != nil {
		log.Err(err).Str("func", "*Handler.seed").Str("user_id", sc.UserID).Msg("seeding failed")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, map[string]int{"seeded": written}, http.StatusOK)
}
