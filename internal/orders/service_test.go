package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"lv-broker/internal/model"
	"lv-broker/internal/types"
)

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name     string
		side     types.OrderSide
		typ      types.OrderType
		size     int64
		price    string
		cash     string
		held     int64
		expected types.OrderStatus
	}{
		{"cash in always fills", types.OrderSideCashIn, types.OrderTypeMarket, 500, "1", "0", 0, types.OrderStatusFilled},
		{"market buy with funds", types.OrderSideBuy, types.OrderTypeMarket, 10, "100", "1000", 0, types.OrderStatusFilled},
		{"buy exceeding cash", types.OrderSideBuy, types.OrderTypeMarket, 10, "100", "999.99", 0, types.OrderStatusRejected},
		{"cash out exceeding balance", types.OrderSideCashOut, types.OrderTypeMarket, 1000, "1", "100", 0, types.OrderStatusRejected},
		{"cash out within balance", types.OrderSideCashOut, types.OrderTypeMarket, 100, "1", "100", 0, types.OrderStatusFilled},
		{"sell more than held", types.OrderSideSell, types.OrderTypeMarket, 11, "100", "0", 10, types.OrderStatusRejected},
		{"sell exactly held", types.OrderSideSell, types.OrderTypeMarket, 10, "100", "0", 10, types.OrderStatusFilled},
		{"sell with no position", types.OrderSideSell, types.OrderTypeMarket, 1, "100", "0", 0, types.OrderStatusRejected},
		{"zero size rejected", types.OrderSideBuy, types.OrderTypeLimit, 0, "10", "1000", 0, types.OrderStatusRejected},
		{"limit buy stays new", types.OrderSideBuy, types.OrderTypeLimit, 2, "10", "1000", 0, types.OrderStatusNew},
		{"limit sell stays new", types.OrderSideSell, types.OrderTypeLimit, 5, "10", "0", 10, types.OrderStatusNew},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveStatus(tt.side, tt.typ, tt.size, dec(tt.price), dec(tt.cash), tt.held)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBuyPositionWeightedAverage(t *testing.T) {
	p := model.Position{Size: 10, AveragePrice: dec("100"), TotalInvested: dec("1000")}
	got := buyPosition(p, 10, dec("200"))
	assert.Equal(t, int64(20), got.Size)
	assert.True(t, got.AveragePrice.Equal(dec("150")), "average = %s", got.AveragePrice)
	assert.True(t, got.TotalInvested.Equal(dec("3000")), "invested = %s", got.TotalInvested)
}

func TestBuyPositionFromFlat(t *testing.T) {
	got := buyPosition(model.Position{}, 10, dec("100"))
	assert.Equal(t, int64(10), got.Size)
	assert.True(t, got.AveragePrice.Equal(dec("100")))
	assert.True(t, got.TotalInvested.Equal(dec("1000")))
}

func TestBuyPositionDegenerateZeroSize(t *testing.T) {
	p := model.Position{Size: -10, AveragePrice: dec("50")}
	got := buyPosition(p, 10, dec("80"))
	assert.Equal(t, int64(0), got.Size)
	assert.True(t, got.AveragePrice.Equal(dec("50")), "average untouched when size nets to zero")
}

func TestBuyPositionProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		oldSize := rapid.Int64Range(0, 10_000).Draw(t, "oldSize")
		oldAvg := decimal.NewFromInt(rapid.Int64Range(1, 10_000).Draw(t, "oldAvg"))
		fillSize := rapid.Int64Range(1, 10_000).Draw(t, "fillSize")
		fillPrice := decimal.NewFromInt(rapid.Int64Range(1, 10_000).Draw(t, "fillPrice"))

		p := model.Position{
			Size:          oldSize,
			AveragePrice:  oldAvg,
			TotalInvested: oldAvg.Mul(decimal.NewFromInt(oldSize)),
		}
		got := buyPosition(p, fillSize, fillPrice)

		if got.Size != oldSize+fillSize {
			t.Fatalf("size %d, want %d", got.Size, oldSize+fillSize)
		}
		wantInvested := p.TotalInvested.Add(fillPrice.Mul(decimal.NewFromInt(fillSize)))
		if !got.TotalInvested.Equal(wantInvested) {
			t.Fatalf("invested %s, want %s", got.TotalInvested, wantInvested)
		}
		// the weighted average lands between the two prices
		lo, hi := oldAvg, fillPrice
		if lo.GreaterThan(hi) {
			lo, hi = hi, lo
		}
		if oldSize == 0 {
			lo, hi = fillPrice, fillPrice
		}
		if got.AveragePrice.LessThan(lo) || got.AveragePrice.GreaterThan(hi) {
			t.Fatalf("average %s outside [%s, %s]", got.AveragePrice, lo, hi)
		}
	})
}

func TestSellPosition(t *testing.T) {
	p := model.Position{Size: 20, AveragePrice: dec("150"), TotalInvested: dec("3000")}
	got := sellPosition(p, 5, dec("180"))
	assert.Equal(t, int64(15), got.Size)
	assert.True(t, got.AveragePrice.Equal(dec("150")), "average untouched on sell")
	assert.True(t, got.RealizedPnl.Equal(dec("150")), "pnl = %s", got.RealizedPnl)
	assert.True(t, got.TotalInvested.Equal(dec("3000")))
}
