package types

type OrderSide string

type OrderType string

type OrderStatus string

type InstrumentType string

const (
	OrderSideBuy     OrderSide = "BUY"
	OrderSideSell    OrderSide = "SELL"
	OrderSideCashIn  OrderSide = "CASH_IN"
	OrderSideCashOut OrderSide = "CASH_OUT"
)

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusFilled    OrderStatus = "FILLED"
	OrderStatusRejected  OrderStatus = "REJECTED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

const (
	InstrumentTypeStock    InstrumentType = "ACCIONES"
	InstrumentTypeCurrency InstrumentType = "MONEDA"
)

// CurrencyInstrumentName is the name of the well-known instrument used to
// book cash deposits and withdrawals.
const CurrencyInstrumentName = "PESOS"

func ValidOrderSide(s OrderSide) bool {
	return s == OrderSideBuy || s == OrderSideSell || s == OrderSideCashIn || s == OrderSideCashOut
}

func ValidOrderType(t OrderType) bool {
	return t == OrderTypeMarket || t == OrderTypeLimit
}

// CashSide reports whether the side moves cash against the currency
// instrument instead of trading an instrument.
func CashSide(s OrderSide) bool {
	return s == OrderSideCashIn || s == OrderSideCashOut
}
