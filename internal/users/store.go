package users

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"lv-broker/internal/db"
	"lv-broker/internal/model"
)

// Store is the account repository: user cash balances plus the positions
// hanging off them. Methods that participate in order settlement take a
// pgx.Tx so the whole read-decide-write sequence shares one unit of work.
type Store struct{}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Create(ctx context.Context, q db.Querier, email, accountNumber, passwordHash string) (model.User, error) {
	var u model.User
	err := q.QueryRow(ctx,
		"insert into users (email, accountnumber, password_hash, available_cash, created_at) values ($1, $2, $3, 0, $4) returning id, email, accountnumber, available_cash, created_at",
		email, accountNumber, passwordHash, time.Now().UTC(),
	).Scan(&u.ID, &u.Email, &u.AccountNumber, &u.AvailableCash, &u.CreatedAt)
	return u, err
}

func (s *Store) GetByID(ctx context.Context, q db.Querier, id int64) (model.User, bool, error) {
	var u model.User
	err := q.QueryRow(ctx, "select id, email, accountnumber, available_cash, created_at from users where id = $1", id).Scan(&u.ID, &u.Email, &u.AccountNumber, &u.AvailableCash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, false, nil
	}
	if err != nil {
		return u, false, err
	}
	return u, true, nil
}

// CredentialsByEmail returns the user id and password hash for login.
func (s *Store) CredentialsByEmail(ctx context.Context, q db.Querier, email string) (int64, string, bool, error) {
	var id int64
	var hash string
	err := q.QueryRow(ctx, "select id, password_hash from users where lower(email) = lower($1)", email).Scan(&id, &hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, err
	}
	return id, hash, true, nil
}

func (s *Store) UpdateEmail(ctx context.Context, q db.Querier, id int64, email string) error {
	tag, err := q.Exec(ctx, "update users set email = $1 where id = $2", email, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, q db.Querier, id int64) error {
	tag, err := q.Exec(ctx, "delete from users where id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

type SearchFilter struct {
	Email         string
	AccountNumber string
}

func (s *Store) Search(ctx context.Context, q db.Querier, filter SearchFilter, limit, offset int) ([]model.User, int64, error) {
	where := "true"
	args := []any{}
	var ors []string
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		ors = append(ors, "email ilike $"+strconv.Itoa(len(args)))
	}
	if filter.AccountNumber != "" {
		args = append(args, filter.AccountNumber)
		ors = append(ors, "accountnumber = $"+strconv.Itoa(len(args)))
	}
	if len(ors) > 0 {
		where = "(" + strings.Join(ors, " or ") + ")"
	}
	var count int64
	if err := q.QueryRow(ctx, "select count(*) from users where "+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}
	args = append(args, limit, offset)
	rows, err := q.Query(ctx, "select id, email, accountnumber, available_cash, created_at from users where "+where+" order by id asc limit $"+strconv.Itoa(len(args)-1)+" offset $"+strconv.Itoa(len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.AccountNumber, &u.AvailableCash, &u.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	return out, count, rows.Err()
}

// GetForUpdate locks the user row for the remainder of the transaction so
// concurrent orders against the same account serialize on it.
func (s *Store) GetForUpdate(ctx context.Context, tx pgx.Tx, id int64) (model.User, bool, error) {
	var u model.User
	err := tx.QueryRow(ctx, "select id, email, accountnumber, available_cash, created_at from users where id = $1 for update", id).Scan(&u.ID, &u.Email, &u.AccountNumber, &u.AvailableCash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, false, nil
	}
	if err != nil {
		return u, false, err
	}
	return u, true, nil
}

// AddCash moves available_cash by delta (negative debits).
func (s *Store) AddCash(ctx context.Context, tx pgx.Tx, id int64, delta decimal.Decimal) error {
	tag, err := tx.Exec(ctx, "update users set available_cash = available_cash + $1 where id = $2", delta, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
