package users

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"lv-broker/internal/db"
	"lv-broker/internal/model"
	"lv-broker/internal/types"
)

// PositionWithMarket is a position joined with its instrument and the
// instrument's most recent price observation, the shape portfolio
// valuation consumes.
type PositionWithMarket struct {
	Position   model.Position
	Instrument model.Instrument
	Latest     *model.MarketData
}

// GetPositionForUpdate locks the position row for the (user, instrument)
// pair. Returns (nil, nil) when the pair has no position yet.
func (s *Store) GetPositionForUpdate(ctx context.Context, tx pgx.Tx, userID, instrumentID int64) (*model.Position, error) {
	var p model.Position
	err := tx.QueryRow(ctx,
		"select id, user_id, instrument_id, size, average_price, total_invested, realized_pnl, updated_at from positions where user_id = $1 and instrument_id = $2 for update",
		userID, instrumentID,
	).Scan(&p.ID, &p.UserID, &p.InstrumentID, &p.Size, &p.AveragePrice, &p.TotalInvested, &p.RealizedPnl, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreatePosition(ctx context.Context, tx pgx.Tx, p model.Position) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		"insert into positions (user_id, instrument_id, size, average_price, total_invested, realized_pnl, updated_at) values ($1, $2, $3, $4, $5, $6, $7) returning id",
		p.UserID, p.InstrumentID, p.Size, p.AveragePrice, p.TotalInvested, p.RealizedPnl, time.Now().UTC(),
	).Scan(&id)
	return id, err
}

func (s *Store) UpdatePosition(ctx context.Context, tx pgx.Tx, p model.Position) error {
	tag, err := tx.Exec(ctx,
		"update positions set size = $1, average_price = $2, total_invested = $3, realized_pnl = $4, updated_at = $5 where id = $6",
		p.Size, p.AveragePrice, p.TotalInvested, p.RealizedPnl, time.Now().UTC(), p.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ListPositionsWithMarket returns every position of the user together with
// instrument reference data and the latest observation per instrument.
func (s *Store) ListPositionsWithMarket(ctx context.Context, q db.Querier, userID int64) ([]PositionWithMarket, error) {
	rows, err := q.Query(ctx, `
		select p.id, p.user_id, p.instrument_id, p.size, p.average_price, p.total_invested, p.realized_pnl, p.updated_at,
		       i.id, i.ticker, i.name, i.type,
		       md.id, md.instrumentid, md.open, md.high, md.low, md.close, md.previousclose, md.date
		from positions p
		join instruments i on i.id = p.instrument_id
		left join lateral (
			select id, instrumentid, open, high, low, close, previousclose, date
			from marketdata
			where instrumentid = p.instrument_id
			order by date desc
			limit 1
		) md on true
		where p.user_id = $1
		order by i.ticker asc, p.id asc
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []PositionWithMarket
	for rows.Next() {
		var item PositionWithMarket
		var typ string
		var md model.MarketData
		var mdID, mdInstrumentID *int64
		var mdDate *time.Time
		if err := rows.Scan(
			&item.Position.ID, &item.Position.UserID, &item.Position.InstrumentID, &item.Position.Size,
			&item.Position.AveragePrice, &item.Position.TotalInvested, &item.Position.RealizedPnl, &item.Position.UpdatedAt,
			&item.Instrument.ID, &item.Instrument.Ticker, &item.Instrument.Name, &typ,
			&mdID, &mdInstrumentID, &md.Open, &md.High, &md.Low, &md.Close, &md.PreviousClose, &mdDate,
		); err != nil {
			return nil, err
		}
		item.Instrument.Type = types.InstrumentType(typ)
		if mdID != nil {
			md.ID = *mdID
			md.InstrumentID = *mdInstrumentID
			md.Date = *mdDate
			item.Latest = &md
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
