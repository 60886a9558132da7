package instruments

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"lv-broker/internal/httputil"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type Handler struct {
	pool  *pgxpool.Pool
	store *Store
}

func NewHandler(pool *pgxpool.Pool, store *Store) *Handler {
	return &Handler{pool: pool, store: store}
}

type searchResponse struct {
	Items []InstrumentWithQuote `json:"items"`
	Count int64                 `json:"count"`
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := SearchFilter{
		Ticker: strings.TrimSpace(query.Get("ticker")),
		Name:   strings.TrimSpace(query.Get("name")),
	}
	limit := defaultPageLimit
	if raw := query.Get("page_limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "invalid page_limit"})
			return
		}
		if n > maxPageLimit {
			n = maxPageLimit
		}
		limit = n
	}
	offset := 0
	if raw := query.Get("page_offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "invalid page_offset"})
			return
		}
		offset = n
	}
	items, count, err := h.store.Search(r.Context(), h.pool, filter, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if items == nil {
		items = []InstrumentWithQuote{}
	}
	httputil.WriteJSON(w, http.StatusOK, searchResponse{Items: items, Count: count})
}
