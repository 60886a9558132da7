package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is the single row for a (user, instrument) pair. Size is signed:
// positive long, negative short. AveragePrice is the volume-weighted mean of
// BUY fills and is never touched by SELL fills.
type Position struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	InstrumentID  int64           `json:"instrument_id"`
	Size          int64           `json:"size"`
	AveragePrice  decimal.Decimal `json:"average_price"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	RealizedPnl   decimal.Decimal `json:"realized_pnl"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
