package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketData is one daily price observation for an instrument. Rows are
// written by the ingestion worker and never mutated afterwards; the engine
// only ever reads the most recent one per instrument. Close and
// PreviousClose are nullable because upstream feeds ship partial rows.
type MarketData struct {
	ID            int64            `json:"id"`
	InstrumentID  int64            `json:"instrumentid"`
	Open          *decimal.Decimal `json:"open"`
	High          *decimal.Decimal `json:"high"`
	Low           *decimal.Decimal `json:"low"`
	Close         *decimal.Decimal `json:"close"`
	PreviousClose *decimal.Decimal `json:"previousclose"`
	Date          time.Time        `json:"date"`
}
