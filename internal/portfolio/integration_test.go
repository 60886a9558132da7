package portfolio

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lv-broker/internal/apperr"
	"lv-broker/internal/db/dbtest"
	"lv-broker/internal/users"
)

func TestServiceGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := dbtest.Setup(t)
	ctx := context.Background()
	userStore := users.NewStore()
	svc := NewService(pool, userStore)

	u, err := userStore.Create(ctx, pool, uuid.NewString()+"@example.com", uuid.NewString(), "x")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, "update users set available_cash = 1000 where id = $1", u.ID)
	require.NoError(t, err)

	var instID int64
	err = pool.QueryRow(ctx, "insert into instruments (ticker, name, type) values ('ALPH', 'Alpha Corp', 'ACCIONES') returning id").Scan(&instID)
	require.NoError(t, err)
	_, err = pool.Exec(ctx,
		"insert into marketdata (instrumentid, close, date) values ($1, 150, $2)",
		instID, time.Now().UTC().Truncate(24*time.Hour))
	require.NoError(t, err)
	_, err = pool.Exec(ctx,
		"insert into positions (user_id, instrument_id, size, average_price, total_invested, realized_pnl, updated_at) values ($1, $2, 10, 100, 1000, 0, now())",
		u.ID, instID)
	require.NoError(t, err)

	view, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, view.AvailableCash.Equal(dec("1000")))
	assert.True(t, view.TotalAccountValue.Equal(dec("2500")))
	require.Len(t, view.Positions, 1)
	assert.Equal(t, "ALPH", view.Positions[0].Ticker)
	assert.True(t, view.Positions[0].TotalReturnPercent.Equal(dec("50")))
}

func TestServiceGetUnknownUser(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	pool := dbtest.Setup(t)
	svc := NewService(pool, users.NewStore())

	_, err := svc.Get(context.Background(), 999999)
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.CodeNotFound, e.Code)
	assert.Equal(t, "User Not Found", e.Message)
}
