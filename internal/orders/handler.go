package orders

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"lv-broker/internal/apperr"
	"lv-broker/internal/httputil"
	"lv-broker/internal/types"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type createRequest struct {
	InstrumentID *int64           `json:"instrument_id"`
	Side         string           `json:"side"`
	Type         string           `json:"type"`
	Size         *int64           `json:"size"`
	CashAmount   *decimal.Decimal `json:"cash_amount"`
	Price        *decimal.Decimal `json:"price"`
}

func (req createRequest) validate() error {
	if !types.ValidOrderSide(types.OrderSide(req.Side)) {
		return apperr.BadRequest("Invalid side")
	}
	if !types.ValidOrderType(types.OrderType(req.Type)) {
		return apperr.BadRequest("Invalid type")
	}
	if req.Size == nil && req.CashAmount == nil {
		return apperr.BadRequest("Either size or cash_amount must be provided")
	}
	if req.Size != nil && req.CashAmount != nil {
		return apperr.BadRequest("Either size or cash_amount must be provided")
	}
	if req.Size != nil && *req.Size < 1 {
		return apperr.BadRequest("size must be at least 1")
	}
	if req.CashAmount != nil && !req.CashAmount.IsPositive() {
		return apperr.BadRequest("cash_amount must be positive")
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return apperr.BadRequest("price must be positive")
	}
	if types.OrderType(req.Type) == types.OrderTypeLimit && req.Price == nil {
		return apperr.BadRequest("price is required for LIMIT orders")
	}
	return nil
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request, userID int64) {
	var req createRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{Error: err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	detail, err := h.svc.Execute(r.Context(), Request{
		UserID:       userID,
		InstrumentID: req.InstrumentID,
		Side:         types.OrderSide(req.Side),
		Type:         types.OrderType(req.Type),
		Size:         req.Size,
		CashAmount:   req.CashAmount,
		Price:        req.Price,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, detail)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request, userID int64) {
	limit := 50
	offset := 0
	if v := r.URL.Query().Get("page_limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("page_offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	items, err := h.svc.List(r.Context(), userID, limit, offset)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if items == nil {
		items = []Detail{}
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}
