package model

import "lv-broker/internal/types"

// Instrument is immutable reference data for something that can be traded,
// plus the special currency instrument used for cash movements.
type Instrument struct {
	ID     int64                `json:"id"`
	Ticker string               `json:"ticker"`
	Name   string               `json:"name"`
	Type   types.InstrumentType `json:"type"`
}
