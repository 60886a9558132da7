package marketdata

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"lv-broker/internal/db"
	"lv-broker/internal/model"
)

type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// LatestByInstrument returns the most recent observation for the
// instrument, or false when none exists.
func (s *Store) LatestByInstrument(ctx context.Context, q db.Querier, instrumentID int64) (model.MarketData, bool, error) {
	var md model.MarketData
	err := q.QueryRow(ctx,
		"select id, instrumentid, open, high, low, close, previousclose, date from marketdata where instrumentid = $1 order by date desc limit 1",
		instrumentID,
	).Scan(&md.ID, &md.InstrumentID, &md.Open, &md.High, &md.Low, &md.Close, &md.PreviousClose, &md.Date)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.MarketData{}, false, nil
	}
	if err != nil {
		return model.MarketData{}, false, err
	}
	return md, true, nil
}

// Upsert writes one observation, replacing an earlier row for the same
// instrument and date. Feeds redeliver, so replays must be harmless.
func (s *Store) Upsert(ctx context.Context, q db.Querier, md model.MarketData) error {
	_, err := q.Exec(ctx, `
		insert into marketdata (instrumentid, open, high, low, close, previousclose, date)
		values ($1, $2, $3, $4, $5, $6, $7)
		on conflict (instrumentid, date) do update
		set open = excluded.open, high = excluded.high, low = excluded.low,
		    close = excluded.close, previousclose = excluded.previousclose
	`, md.InstrumentID, md.Open, md.High, md.Low, md.Close, md.PreviousClose, md.Date)
	return err
}
