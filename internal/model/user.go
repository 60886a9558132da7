package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User owns a cash balance and a set of positions. AvailableCash is only
// mutated by order settlement, always inside the order transaction.
type User struct {
	ID            int64           `json:"id"`
	Email         string          `json:"email"`
	AccountNumber string          `json:"accountnumber"`
	AvailableCash decimal.Decimal `json:"available_cash"`
	CreatedAt     time.Time       `json:"created_at"`
}
