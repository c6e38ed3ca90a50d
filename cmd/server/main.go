package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/localmart/storefront-gateway/internal/api"
	"github.com/localmart/storefront-gateway/internal/core/service"
	"github.com/localmart/storefront-gateway/internal/infrastructure/config"
	mongodb "github.com/localmart/storefront-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/localmart/storefront-gateway/internal/infrastructure/db/redis"
	"github.com/localmart/storefront-gateway/internal/infrastructure/queue"
	"github.com/localmart/storefront-gateway/internal/infrastructure/upstream"
	"github.com/localmart/storefront-gateway/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	cartRepo := mongodb.NewCartRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)
	if err := cartRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("cart indexes")
	}
	if err := activityRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("activity indexes")
	}

	sessionRepo := redisdb.NewSessionRepository(rdb)
	dedup := redisdb.NewDedupChecker(rdb)

	// --- Upstream boundary ---
	client := upstream.New(upstream.Config{
		BaseURL:    cfg.Upstream.BaseURL,
		Timeout:    cfg.Upstream.Timeout,
		MaxRetries: cfg.Upstream.MaxRetries,
	})
	authGateway := upstream.NewAuthGateway(client)
	catalogGateway := upstream.NewCatalogGateway(client)
	customerGateway := upstream.NewCustomerGateway(client)
	vendorGateway := upstream.NewVendorGateway(client)
	adminGateway := upstream.NewAdminGateway(client)

	// --- Services ---
	sessions := service.NewSessionService(sessionRepo, authGateway, cfg.JWTSecret, logger.Component("session"))
	catalog := service.NewCatalogService(catalogGateway, logger.Component("catalog"))
	carts := service.NewCartService(cartRepo, customerGateway, sessions, cfg.DeliveryFee, logger.Component("cart"))
	customers := service.NewCustomerService(customerGateway, sessions, logger.Component("customer"))
	vendors := service.NewVendorService(vendorGateway, sessions, logger.Component("vendor"))
	admin := service.NewAdminService(adminGateway, sessions)

	// --- Activity pipeline ---
	activity := service.NewActivityService(activityRepo, dedup, logger.Component("activity"))
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activity, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	e := api.NewRouter(api.Dependencies{
		Sessions:   sessions,
		TokenAuth:  sessions,
		Catalog:    catalog,
		Cart:       carts,
		Customers:  customers,
		Vendors:    vendors,
		Admin:      admin,
		Dispatcher: dispatcher,
		Mongo:      db,
		Redis:      rdb,
		Upstream:   client,
		Logger:     log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("storefront gateway up")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
