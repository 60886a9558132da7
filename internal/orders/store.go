package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"lv-broker/internal/db"
	"lv-broker/internal/model"
	"lv-broker/internal/types"
)

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

type Store struct{}

func NewStore() *Store {
	return &Store{}
}

// Detail is the persisted order joined with its instrument and owner, the
// shape execution responses and order listings use.
type Detail struct {
	model.Order
	Instrument model.Instrument `json:"instruments"`
	User       model.User       `json:"users"`
}

func (s *Store) Create(ctx context.Context, q db.Querier, o model.Order) (int64, error) {
	var id int64
	err := q.QueryRow(ctx,
		"insert into orders (userid, instrumentid, size, price, type, side, status, datetime) values ($1, $2, $3, $4, $5, $6, $7, $8) returning id",
		o.UserID, o.InstrumentID, o.Size, o.Price, o.Type, o.Side, o.Status, o.Datetime,
	).Scan(&id)
	return id, err
}

const detailQuery = `
	select o.id, o.userid, o.instrumentid, o.size, o.price, o.type, o.side, o.status, o.datetime,
	       i.id, i.ticker, i.name, i.type,
	       u.id, u.email, u.accountnumber, u.available_cash, u.created_at
	from orders o
	join instruments i on i.id = o.instrumentid
	join users u on u.id = o.userid
`

func (s *Store) GetDetail(ctx context.Context, q db.Querier, id int64) (Detail, bool, error) {
	var d Detail
	var oType, oSide, oStatus, iType string
	err := q.QueryRow(ctx, detailQuery+" where o.id = $1", id).Scan(
		&d.ID, &d.Order.UserID, &d.Order.InstrumentID, &d.Size, &d.Price, &oType, &oSide, &oStatus, &d.Datetime,
		&d.Instrument.ID, &d.Instrument.Ticker, &d.Instrument.Name, &iType,
		&d.User.ID, &d.User.Email, &d.User.AccountNumber, &d.User.AvailableCash, &d.User.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return Detail{}, false, nil
		}
		return Detail{}, false, err
	}
	d.Type = types.OrderType(oType)
	d.Side = types.OrderSide(oSide)
	d.Status = types.OrderStatus(oStatus)
	d.Instrument.Type = types.InstrumentType(iType)
	return d, true, nil
}

// ListByUser returns the user's orders newest first.
func (s *Store) ListByUser(ctx context.Context, q db.Querier, userID int64, limit, offset int) ([]Detail, error) {
	rows, err := q.Query(ctx, detailQuery+" where o.userid = $1 order by o.datetime desc, o.id desc limit $2 offset $3",
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Detail
	for rows.Next() {
		var d Detail
		var oType, oSide, oStatus, iType string
		if err := rows.Scan(
			&d.ID, &d.Order.UserID, &d.Order.InstrumentID, &d.Size, &d.Price, &oType, &oSide, &oStatus, &d.Datetime,
			&d.Instrument.ID, &d.Instrument.Ticker, &d.Instrument.Name, &iType,
			&d.User.ID, &d.User.Email, &d.User.AccountNumber, &d.User.AvailableCash, &d.User.CreatedAt,
		); err != nil {
			return nil, err
		}
		d.Type = types.OrderType(oType)
		d.Side = types.OrderSide(oSide)
		d.Status = types.OrderStatus(oStatus)
		d.Instrument.Type = types.InstrumentType(iType)
		out = append(out, d)
	}
	return out, rows.Err()
}
