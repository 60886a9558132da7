package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"lv-broker/internal/apperr"
	"lv-broker/internal/db"
	"lv-broker/internal/model"
	"lv-broker/internal/types"
)

// Request is an execution request after JSON validation. Size and CashAmount
// are mutually exclusive sizing inputs; Price is only meaningful for LIMIT.
type Request struct {
	UserID       int64
	InstrumentID *int64
	Side         types.OrderSide
	Type         types.OrderType
	Size         *int64
	CashAmount   *decimal.Decimal
	Price        *decimal.Decimal
}

// resolveInstrument picks the instrument the order trades against: the
// well-known currency instrument for cash movements, the caller's
// instrument otherwise.
func (s *Service) resolveInstrument(ctx context.Context, q db.Querier, req Request) (model.Instrument, error) {
	if types.CashSide(req.Side) {
		inst, ok, err := s.instruments.GetCurrency(ctx, q)
		if err != nil {
			return model.Instrument{}, err
		}
		if !ok {
			return model.Instrument{}, apperr.NotFound("Instrument for cash operations not found")
		}
		return inst, nil
	}
	if req.InstrumentID == nil {
		return model.Instrument{}, apperr.BadRequest("Instrument ID must be provided for this type of order")
	}
	inst, ok, err := s.instruments.GetByID(ctx, q, *req.InstrumentID)
	if err != nil {
		return model.Instrument{}, err
	}
	if !ok {
		return model.Instrument{}, apperr.NotFound("Instrument Not Found")
	}
	return inst, nil
}

// resolvePrice fixes the execution price: 1 for cash movements, the latest
// close for MARKET, the caller's limit price for LIMIT.
func (s *Service) resolvePrice(ctx context.Context, q db.Querier, req Request, inst model.Instrument) (decimal.Decimal, error) {
	if types.CashSide(req.Side) {
		return decimal.NewFromInt(1), nil
	}
	if req.Type == types.OrderTypeMarket {
		md, ok, err := s.marketdata.LatestByInstrument(ctx, q, inst.ID)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if !ok {
			return decimal.Decimal{}, apperr.BadRequest("No market data available for instrument")
		}
		if md.Close == nil {
			return decimal.Decimal{}, apperr.BadRequest("Cannot execute MARKET order: last close price is null")
		}
		return *md.Close, nil
	}
	if req.Price == nil {
		return decimal.Decimal{}, nil
	}
	return *req.Price, nil
}

// resolveSize turns the sizing input into a whole number of units. A cash
// amount buys floor(cash/price) units, which may floor to zero.
func resolveSize(req Request, price decimal.Decimal) (int64, error) {
	if req.Size != nil {
		return *req.Size, nil
	}
	if req.CashAmount != nil {
		if price.IsZero() {
			return 0, apperr.BadRequest("Cannot calculate size without price")
		}
		return req.CashAmount.Div(price).IntPart(), nil
	}
	return 0, apperr.BadRequest("Either size or cash_amount must be provided")
}
