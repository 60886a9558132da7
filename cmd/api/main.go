package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"lv-broker/internal/auth"
	"lv-broker/internal/config"
	"lv-broker/internal/db"
	"lv-broker/internal/httpserver"
	"lv-broker/internal/instruments"
	"lv-broker/internal/marketdata"
	"lv-broker/internal/orders"
	"lv-broker/internal/portfolio"
	"lv-broker/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
	}

	bus := marketdata.NewBus()
	marketStore := marketdata.NewStore()
	instrumentStore := instruments.NewStore()
	userStore := users.NewStore()
	orderStore := orders.NewStore()
	cache := marketdata.NewCache(rdb, marketStore, cfg.QuoteCacheTTL)

	authSvc := auth.NewService(pool, userStore, cfg.JWTIssuer, []byte(cfg.JWTSecret), cfg.JWTTTL, cfg.UserDefaultPassword)
	orderSvc := orders.NewService(pool, orderStore, userStore, instrumentStore, marketStore)
	portfolioSvc := portfolio.NewService(pool, userStore)

	streamWS := marketdata.NewStreamWS(cfg.WebSocketOrigin, bus)
	router := httpserver.NewRouter(httpserver.RouterDeps{
		AuthHandler:       auth.NewHandler(authSvc),
		UserHandler:       users.NewHandler(pool, userStore),
		InstrumentHandler: instruments.NewHandler(pool, instrumentStore),
		MarketHandler:     marketdata.NewHandler(pool, cache),
		OrderHandler:      orders.NewHandler(orderSvc),
		PortfolioHandler:  portfolio.NewHandler(portfolioSvc),
		AuthService:       authSvc,
		StreamWS:          streamWS,
	})

	if len(cfg.KafkaBrokers) > 0 {
		consumer := marketdata.NewConsumer(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaGroupID, pool, marketStore, instrumentStore, cache, bus)
		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Printf("market data consumer stopped: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	log.Printf("server listening on %s", cfg.HTTPAddr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		cancel()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
