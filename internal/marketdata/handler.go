package marketdata

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lv-broker/internal/apperr"
	"lv-broker/internal/httputil"
)

type Handler struct {
	pool  *pgxpool.Pool
	cache *Cache
}

func NewHandler(pool *pgxpool.Pool, cache *Cache) *Handler {
	return &Handler{pool: pool, cache: cache}
}

// Latest serves the most recent observation for an instrument.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httputil.WriteError(w, apperr.BadRequest("invalid instrument id"))
		return
	}
	md, ok, err := h.cache.Latest(r.Context(), h.pool, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !ok {
		httputil.WriteError(w, apperr.NotFound("No market data available for instrument"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, md)
}
