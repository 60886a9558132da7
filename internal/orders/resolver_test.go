package orders

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lv-broker/internal/apperr"
	"lv-broker/internal/marketdata"
	"lv-broker/internal/model"
	"lv-broker/internal/types"
)

func i64(v int64) *int64 { return &v }

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// emptyQuerier answers every query with no rows.
type emptyQuerier struct{}

type errRow struct{ err error }

func (r errRow) Scan(dest ...any) error { return r.err }

func (emptyQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return errRow{err: pgx.ErrNoRows}
}

func (emptyQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, pgx.ErrNoRows
}

func (emptyQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func TestResolvePriceNoMarketData(t *testing.T) {
	svc := &Service{marketdata: marketdata.NewStore()}
	inst := model.Instrument{ID: 1, Ticker: "ALPH", Type: types.InstrumentTypeStock}

	_, err := svc.resolvePrice(context.Background(), emptyQuerier{}, Request{Side: types.OrderSideBuy, Type: types.OrderTypeMarket}, inst)
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeBadRequest, e.Code)
	assert.Equal(t, "No market data available for instrument", e.Message)
}

func TestResolveSizeExplicit(t *testing.T) {
	size, err := resolveSize(Request{Size: i64(7)}, dec("100"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), size)
}

func TestResolveSizeFromCashAmount(t *testing.T) {
	size, err := resolveSize(Request{CashAmount: decp("28")}, dec("10"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)
}

func TestResolveSizeFloorsToZero(t *testing.T) {
	size, err := resolveSize(Request{CashAmount: decp("5")}, dec("10"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)
}

func TestResolveSizeWithoutPrice(t *testing.T) {
	_, err := resolveSize(Request{CashAmount: decp("100")}, decimal.Zero)
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeBadRequest, e.Code)
	assert.Equal(t, "Cannot calculate size without price", e.Message)
}

func TestResolveSizeNothingProvided(t *testing.T) {
	_, err := resolveSize(Request{}, dec("10"))
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Either size or cash_amount must be provided", e.Message)
}
