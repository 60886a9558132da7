package orders

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"lv-broker/internal/model"
	"lv-broker/internal/types"
)

// buyPosition folds a BUY fill into an existing position. The average price
// is the volume-weighted mean of all BUY fills; SELL never changes it.
func buyPosition(p model.Position, size int64, price decimal.Decimal) model.Position {
	cost := price.Mul(decimal.NewFromInt(size))
	newSize := p.Size + size
	if newSize != 0 {
		old := p.AveragePrice.Mul(decimal.NewFromInt(p.Size))
		p.AveragePrice = old.Add(cost).Div(decimal.NewFromInt(newSize))
	}
	p.Size = newSize
	p.TotalInvested = p.TotalInvested.Add(cost)
	return p
}

// sellPosition folds a SELL fill into a position: size shrinks, realized
// P&L books the spread over the average cost, average price stays put.
func sellPosition(p model.Position, size int64, price decimal.Decimal) model.Position {
	p.Size -= size
	p.RealizedPnl = p.RealizedPnl.Add(price.Sub(p.AveragePrice).Mul(decimal.NewFromInt(size)))
	return p
}

// settle applies a FILLED order to the user's cash and position inside the
// execution transaction. pos is the locked position row, nil when none
// exists yet.
func (s *Service) settle(ctx context.Context, tx pgx.Tx, o model.Order, pos *model.Position) error {
	amount := o.Price.Mul(decimal.NewFromInt(o.Size))
	switch o.Side {
	case types.OrderSideCashIn:
		return s.users.AddCash(ctx, tx, o.UserID, amount)
	case types.OrderSideCashOut:
		return s.users.AddCash(ctx, tx, o.UserID, amount.Neg())
	case types.OrderSideBuy:
		if err := s.users.AddCash(ctx, tx, o.UserID, amount.Neg()); err != nil {
			return err
		}
		if pos == nil {
			_, err := s.users.CreatePosition(ctx, tx, model.Position{
				UserID:        o.UserID,
				InstrumentID:  o.InstrumentID,
				Size:          o.Size,
				AveragePrice:  o.Price,
				TotalInvested: amount,
			})
			return err
		}
		return s.users.UpdatePosition(ctx, tx, buyPosition(*pos, o.Size, o.Price))
	case types.OrderSideSell:
		if err := s.users.AddCash(ctx, tx, o.UserID, amount); err != nil {
			return err
		}
		return s.users.UpdatePosition(ctx, tx, sellPosition(*pos, o.Size, o.Price))
	}
	return nil
}
