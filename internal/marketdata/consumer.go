package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"lv-broker/internal/instruments"
	"lv-broker/internal/model"
)

// Observation is the wire shape of one daily price row on the ingestion
// topic. Prices are nullable because upstream feeds ship partial rows.
type Observation struct {
	Ticker        string           `json:"ticker"`
	Open          *decimal.Decimal `json:"open"`
	High          *decimal.Decimal `json:"high"`
	Low           *decimal.Decimal `json:"low"`
	Close         *decimal.Decimal `json:"close"`
	PreviousClose *decimal.Decimal `json:"previousclose"`
	Date          string           `json:"date"`
}

// Consumer reads price observations from Kafka and persists them. A bus
// event is published after each write so websocket clients see updates
// without polling.
type Consumer struct {
	reader      *kafka.Reader
	pool        *pgxpool.Pool
	store       *Store
	instruments *instruments.Store
	cache       *Cache
	bus         *Bus
}

func NewConsumer(brokers []string, topic, groupID string, pool *pgxpool.Pool, store *Store, instrumentStore *instruments.Store, cache *Cache, bus *Bus) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})
	return &Consumer{
		reader:      reader,
		pool:        pool,
		store:       store,
		instruments: instrumentStore,
		cache:       cache,
		bus:         bus,
	}
}

// Start consumes until the context is cancelled. Bad messages are logged
// and skipped; the consumer never stops over a single poison message.
func (c *Consumer) Start(ctx context.Context) error {
	log.Printf("starting market data consumer for topic %s", c.reader.Config().Topic)
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return c.reader.Close()
			}
			log.Printf("read message: %v", err)
			continue
		}
		if err := c.processMessage(ctx, msg); err != nil {
			log.Printf("process message at offset %d: %v", msg.Offset, err)
		}
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var obs Observation
	if err := json.Unmarshal(msg.Value, &obs); err != nil {
		return fmt.Errorf("unmarshal observation: %w", err)
	}
	date, err := time.Parse("2006-01-02", obs.Date)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", obs.Date, err)
	}
	inst, ok, err := c.instruments.GetByTicker(ctx, c.pool, obs.Ticker)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("unknown ticker %q", obs.Ticker)
	}
	md := model.MarketData{
		InstrumentID:  inst.ID,
		Open:          obs.Open,
		High:          obs.High,
		Low:           obs.Low,
		Close:         obs.Close,
		PreviousClose: obs.PreviousClose,
		Date:          date,
	}
	if err := c.store.Upsert(ctx, c.pool, md); err != nil {
		return err
	}
	if c.cache != nil {
		c.cache.Invalidate(ctx, inst.ID)
	}
	c.bus.Publish(Event{Type: "observation", Ticker: inst.Ticker, Data: md})
	return nil
}
