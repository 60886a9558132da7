package portfolio

import (
	"github.com/shopspring/decimal"

	"lv-broker/internal/users"
)

// PositionView is one listed holding inside a portfolio view.
type PositionView struct {
	InstrumentID       int64           `json:"instrumentId"`
	Ticker             string          `json:"ticker"`
	Name               string          `json:"name"`
	Quantity           int64           `json:"quantity"`
	MarketValue        decimal.Decimal `json:"marketValue"`
	TotalReturnPercent decimal.Decimal `json:"totalReturnPercent"`
}

// View is the consolidated portfolio: total value, free cash and the
// listed long holdings.
type View struct {
	TotalAccountValue decimal.Decimal `json:"totalAccountValue"`
	AvailableCash     decimal.Decimal `json:"available_cash"`
	Positions         []PositionView  `json:"positions"`
}

// Valuate computes the portfolio view from a cash balance and a snapshot of
// positions with their latest observations. Positions without an
// observation, or whose close is null, are neither valued nor listed.
// Short and flat positions count toward the total but are not listed.
func Valuate(availableCash decimal.Decimal, positions []users.PositionWithMarket) View {
	view := View{
		TotalAccountValue: availableCash,
		AvailableCash:     availableCash,
		Positions:         []PositionView{},
	}
	hundred := decimal.NewFromInt(100)
	for _, p := range positions {
		if p.Latest == nil || p.Latest.Close == nil {
			continue
		}
		marketValue := p.Latest.Close.Mul(decimal.NewFromInt(p.Position.Size))
		view.TotalAccountValue = view.TotalAccountValue.Add(marketValue)
		if p.Position.Size <= 0 {
			continue
		}
		returnPct := decimal.Zero
		if !p.Position.TotalInvested.IsZero() {
			returnPct = marketValue.Sub(p.Position.TotalInvested).Div(p.Position.TotalInvested).Mul(hundred)
		}
		view.Positions = append(view.Positions, PositionView{
			InstrumentID:       p.Instrument.ID,
			Ticker:             p.Instrument.Ticker,
			Name:               p.Instrument.Name,
			Quantity:           p.Position.Size,
			MarketValue:        marketValue,
			TotalReturnPercent: returnPct,
		})
	}
	return view
}
