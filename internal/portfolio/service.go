package portfolio

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"lv-broker/internal/apperr"
	"lv-broker/internal/users"
)

type Service struct {
	pool  *pgxpool.Pool
	users *users.Store
}

func NewService(pool *pgxpool.Pool, userStore *users.Store) *Service {
	return &Service{pool: pool, users: userStore}
}

// Get loads the user's cash and positions and valuates them.
func (s *Service) Get(ctx context.Context, userID int64) (View, error) {
	u, ok, err := s.users.GetByID(ctx, s.pool, userID)
	if err != nil {
		return View{}, err
	}
	if !ok {
		return View{}, apperr.NotFound("User Not Found")
	}
	positions, err := s.users.ListPositionsWithMarket(ctx, s.pool, userID)
	if err != nil {
		return View{}, err
	}
	return Valuate(u.AvailableCash, positions), nil
}
