package users

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"lv-broker/internal/apperr"
	"lv-broker/internal/httputil"
	"lv-broker/internal/model"
)

type Handler struct {
	pool  *pgxpool.Pool
	store *Store
}

func NewHandler(pool *pgxpool.Pool, store *Store) *Handler {
	return &Handler{pool: pool, store: store}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request, userID int64) {
	u, ok, err := h.store.GetByID(r.Context(), h.pool, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !ok {
		httputil.WriteError(w, apperr.NotFound("User Not Found"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, u)
}

type patchRequest struct {
	Email string `json:"email"`
}

func (h *Handler) Patch(w http.ResponseWriter, r *http.Request, userID int64) {
	var req patchRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "email is required"})
		return
	}
	if err := h.store.UpdateEmail(r.Context(), h.pool, userID, email); err != nil {
		httputil.WriteError(w, err)
		return
	}
	u, _, err := h.store.GetByID(r.Context(), h.pool, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, userID int64) {
	if err := h.store.Delete(r.Context(), h.pool, userID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := SearchFilter{
		Email:         strings.TrimSpace(query.Get("email")),
		AccountNumber: strings.TrimSpace(query.Get("accountnumber")),
	}
	limit := 20
	if raw := query.Get("page_limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: "invalid page_limit"})
			return
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
		items = []model.User{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"items": items, "count": count})
}
