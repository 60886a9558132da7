package instruments

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"lv-broker/internal/db"
	"lv-broker/internal/model"
	"lv-broker/internal/types"
)

type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// SearchFilter narrows a search by case-insensitive containment on ticker
// and/or name. Currency instruments are never returned by Search.
type SearchFilter struct {
	Ticker string
	Name   string
}

// InstrumentWithQuote carries the instrument and its most recent price
// observation, when one exists.
type InstrumentWithQuote struct {
	model.Instrument
	MarketData *model.MarketData `json:"marketdata"`
}

func (s *Store) GetByID(ctx context.Context, q db.Querier, id int64) (model.Instrument, bool, error) {
	return s.get(ctx, q, "select id, ticker, name, type from instruments where id = $1", id)
}

func (s *Store) GetByTicker(ctx context.Context, q db.Querier, ticker string) (model.Instrument, bool, error) {
	return s.get(ctx, q, "select id, ticker, name, type from instruments where lower(ticker) = lower($1)", ticker)
}

// GetCurrency resolves the well-known instrument cash operations are booked
// against.
func (s *Store) GetCurrency(ctx context.Context, q db.Querier) (model.Instrument, bool, error) {
	return s.get(ctx, q, "select id, ticker, name, type from instruments where type = $1 and name = $2", string(types.InstrumentTypeCurrency), types.CurrencyInstrumentName)
}

func (s *Store) get(ctx context.Context, q db.Querier, sql string, args ...any) (model.Instrument, bool, error) {
	var in model.Instrument
	var typ string
	err := q.QueryRow(ctx, sql, args...).Scan(&in.ID, &in.Ticker, &in.Name, &typ)
	if errors.Is(err, pgx.ErrNoRows) {
		return in, false, nil
	}
	if err != nil {
		return in, false, err
	}
	in.Type = types.InstrumentType(typ)
	return in, true, nil
}

func (s *Store) Search(ctx context.Context, q db.Querier, filter SearchFilter, limit, offset int) ([]InstrumentWithQuote, int64, error) {
	where := "i.type <> $1"
	args := []any{string(types.InstrumentTypeCurrency)}
	var ors []string
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		ors = append(ors, "i.name ilike $"+strconv.Itoa(len(args)))
	}
	if filter.Ticker != "" {
		args = append(args, "%"+filter.Ticker+"%")
		ors = append(ors, "i.ticker ilike $"+strconv.Itoa(len(args)))
	}
	if len(ors) > 0 {
		where += " and (" + strings.Join(ors, " or ") + ")"
	}

	var count int64
	if err := q.QueryRow(ctx, "select count(*) from instruments i where "+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	sql := `
		select i.id, i.ticker, i.name, i.type,
		       md.id, md.instrumentid, md.open, md.high, md.low, md.close, md.previousclose, md.date
		from instruments i
		left join lateral (
			select id, instrumentid, open, high, low, close, previousclose, date
			from marketdata
			where instrumentid = i.id
			order by date desc
			limit 1
		) md on true
		where ` + where + `
		order by i.ticker asc, i.id asc
		limit $` + strconv.Itoa(len(args)-1) + ` offset $` + strconv.Itoa(len(args))
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []InstrumentWithQuote
	for rows.Next() {
		var item InstrumentWithQuote
		var typ string
		var md model.MarketData
		var mdID, mdInstrumentID *int64
		var mdDate *time.Time
		if err := rows.Scan(&item.ID, &item.Ticker, &item.Name, &typ,
			&mdID, &mdInstrumentID, &md.Open, &md.High, &md.Low, &md.Close, &md.PreviousClose, &mdDate); err != nil {
			return nil, 0, err
		}
		item.Type = types.InstrumentType(typ)
		if mdID != nil {
			md.ID = *mdID
			md.InstrumentID = *mdInstrumentID
			md.Date = *mdDate
			item.MarketData = &md
		}
		out = append(out, item)
	}
	return out, count, rows.Err()
}
