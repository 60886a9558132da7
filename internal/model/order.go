package model

import (
	"time"

	"github.com/shopspring/decimal"

	"lv-broker/internal/types"
)

// Order is immutable once persisted: size, price and status are fixed at
// creation time and the engine only reads it back afterwards.
type Order struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"userid"`
	InstrumentID int64             `json:"instrumentid"`
	Size         int64             `json:"size"`
	Price        decimal.Decimal   `json:"price"`
	Type         types.OrderType   `json:"type"`
	Side         types.OrderSide   `json:"side"`
	Status       types.OrderStatus `json:"status"`
	Datetime     time.Time         `json:"datetime"`
}
