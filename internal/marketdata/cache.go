package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lv-broker/internal/db"
	"lv-broker/internal/model"
)

// Cache is a read-through cache over the latest observation per
// instrument, used only by the public quote endpoint. Order execution
// always reads the database inside its transaction.
type Cache struct {
	rdb   *redis.Client
	store *Store
	ttl   time.Duration
}

func NewCache(rdb *redis.Client, store *Store, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, store: store, ttl: ttl}
}

func quoteKey(instrumentID int64) string {
	return fmt.Sprintf("quote:%d", instrumentID)
}

// Latest returns the cached latest observation, falling back to the store
// on a miss or any Redis error.
func (c *Cache) Latest(ctx context.Context, q db.Querier, instrumentID int64) (model.MarketData, bool, error) {
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, quoteKey(instrumentID)).Bytes()
		if err == nil {
			var md model.MarketData
			if err := json.Unmarshal(raw, &md); err == nil {
				return md, true, nil
			}
		}
	}
	md, ok, err := c.store.LatestByInstrument(ctx, q, instrumentID)
	if err != nil || !ok {
		return model.MarketData{}, ok, err
	}
	if c.rdb != nil {
		if raw, err := json.Marshal(md); err == nil {
			c.rdb.Set(ctx, quoteKey(instrumentID), raw, c.ttl)
		}
	}
	return md, true, nil
}

func (c *Cache) Invalidate(ctx context.Context, instrumentID int64) {
	if c.rdb != nil {
		c.rdb.Del(ctx, quoteKey(instrumentID))
	}
}
