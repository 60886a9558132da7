package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lv-broker/internal/apperr"
)

func validateMsg(t *testing.T, req createRequest) string {
	t.Helper()
	err := req.validate()
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	return e.Message
}

func TestCreateRequestValidate(t *testing.T) {
	ok := createRequest{Side: "BUY", Type: "MARKET", Size: i64(1)}
	assert.NoError(t, ok.validate())

	assert.Equal(t, "Invalid side", validateMsg(t, createRequest{Side: "HOLD", Type: "MARKET", Size: i64(1)}))
	assert.Equal(t, "Invalid type", validateMsg(t, createRequest{Side: "BUY", Type: "STOP", Size: i64(1)}))
	assert.Equal(t, "Either size or cash_amount must be provided", validateMsg(t, createRequest{Side: "BUY", Type: "MARKET"}))
	assert.Equal(t, "Either size or cash_amount must be provided", validateMsg(t, createRequest{Side: "BUY", Type: "MARKET", Size: i64(1), CashAmount: decp("10")}))
	assert.Equal(t, "size must be at least 1", validateMsg(t, createRequest{Side: "BUY", Type: "MARKET", Size: i64(0)}))
	assert.Equal(t, "cash_amount must be positive", validateMsg(t, createRequest{Side: "BUY", Type: "MARKET", CashAmount: decp("0")}))
	assert.Equal(t, "price must be positive", validateMsg(t, createRequest{Side: "BUY", Type: "LIMIT", Size: i64(1), Price: decp("-5")}))
	assert.Equal(t, "price is required for LIMIT orders", validateMsg(t, createRequest{Side: "BUY", Type: "LIMIT", Size: i64(1)}))
}
