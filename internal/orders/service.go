package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"lv-broker/internal/apperr"
	"lv-broker/internal/instruments"
	"lv-broker/internal/marketdata"
	"lv-broker/internal/model"
	"lv-broker/internal/types"
	"lv-broker/internal/users"
)

type Service struct {
	pool        *pgxpool.Pool
	store       *Store
	users       *users.Store
	instruments *instruments.Store
	marketdata  *marketdata.Store
}

func NewService(pool *pgxpool.Pool, store *Store, userStore *users.Store, instrumentStore *instruments.Store, marketStore *marketdata.Store) *Service {
	return &Service{
		pool:        pool,
		store:       store,
		users:       userStore,
		instruments: instrumentStore,
		marketdata:  marketStore,
	}
}

// resolveStatus decides the terminal-or-pending status of a new order
// against the locked cash/position snapshot. The rules are ordered; the
// first one that matches wins.
func resolveStatus(side types.OrderSide, typ types.OrderType, size int64, price, availableCash decimal.Decimal, heldSize int64) types.OrderStatus {
	cost := price.Mul(decimal.NewFromInt(size))
	switch {
	case side == types.OrderSideCashIn:
		return types.OrderStatusFilled
	case side == types.OrderSideBuy && availableCash.LessThan(cost):
		return types.OrderStatusRejected
	case side == types.OrderSideCashOut && availableCash.LessThan(decimal.NewFromInt(size)):
		return types.OrderStatusRejected
	case side == types.OrderSideSell && heldSize < size:
		return types.OrderStatusRejected
	case size <= 0:
		return types.OrderStatusRejected
	case typ == types.OrderTypeMarket:
		return types.OrderStatusFilled
	default:
		return types.OrderStatusNew
	}
}

// Execute resolves and persists one order. Resolution, the solvency
// snapshot, status decision, order insert and settlement all happen inside
// one serializable transaction with the user row locked, so concurrent
// orders against the same account cannot double-spend.
func (s *Service) Execute(ctx context.Context, req Request) (Detail, error) {
	if !types.ValidOrderSide(req.Side) {
		return Detail{}, apperr.BadRequest("Invalid side")
	}
	if !types.ValidOrderType(req.Type) {
		return Detail{}, apperr.BadRequest("Invalid type")
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return Detail{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	inst, err := s.resolveInstrument(ctx, tx, req)
	if err != nil {
		return Detail{}, err
	}
	price, err := s.resolvePrice(ctx, tx, req, inst)
	if err != nil {
		return Detail{}, err
	}
	size, err := resolveSize(req, price)
	if err != nil {
		return Detail{}, err
	}

	user, ok, err := s.users.GetForUpdate(ctx, tx, req.UserID)
	if err != nil {
		return Detail{}, err
	}
	if !ok {
		return Detail{}, apperr.NotFound("User Not Found")
	}
	pos, err := s.users.GetPositionForUpdate(ctx, tx, user.ID, inst.ID)
	if err != nil {
		return Detail{}, err
	}
	var heldSize int64
	if pos != nil {
		heldSize = pos.Size
	}

	order := model.Order{
		UserID:       user.ID,
		InstrumentID: inst.ID,
		Size:         size,
		Price:        price,
		Type:         req.Type,
		Side:         req.Side,
		Status:       resolveStatus(req.Side, req.Type, size, price, user.AvailableCash, heldSize),
		Datetime:     time.Now().UTC(),
	}
	id, err := s.store.Create(ctx, tx, order)
	if err != nil {
		return Detail{}, err
	}
	order.ID = id

	if order.Status == types.OrderStatusFilled {
		if err := s.settle(ctx, tx, order, pos); err != nil {
			return Detail{}, err
		}
	}

	detail, ok, err := s.store.GetDetail(ctx, tx, id)
	if err != nil {
		return Detail{}, err
	}
	if !ok {
		return Detail{}, fmt.Errorf("order %d vanished inside tx", id)
	}
	if err := tx.Commit(ctx); err != nil {
		return Detail{}, fmt.Errorf("commit: %w", err)
	}
	return detail, nil
}

// List returns the user's order history newest first.
func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]Detail, error) {
	return s.store.ListByUser(ctx, s.pool, userID, limit, offset)
}
