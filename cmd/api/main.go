package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxemarket/storefront-backend/api/routes"
	authsvc "github.com/luxemarket/storefront-backend/internal/auth"
	"github.com/luxemarket/storefront-backend/internal/cart"
	"github.com/luxemarket/storefront-backend/internal/catalog"
	checkoutsvc "github.com/luxemarket/storefront-backend/internal/checkout"
	"github.com/luxemarket/storefront-backend/internal/coupons"
	"github.com/luxemarket/storefront-backend/internal/orders"
	"github.com/luxemarket/storefront-backend/internal/pricing"
	"github.com/luxemarket/storefront-backend/internal/theme"
	"github.com/luxemarket/storefront-backend/internal/users"
	"github.com/luxemarket/storefront-backend/pkg/clock"
	"github.com/luxemarket/storefront-backend/pkg/config"
	"github.com/luxemarket/storefront-backend/pkg/logger"
	"github.com/luxemarket/storefront-backend/pkg/metrics"
	"github.com/luxemarket/storefront-backend/pkg/storage"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	snapshots, err := storage.Open(cfg.Store.Path)
	if err != nil {
		logg.Error(ctx, "failed to open snapshot store", err)
		os.Exit(1)
	}

	catalogStore, err := catalog.Seeded()
	if err != nil {
		logg.Error(ctx, "failed to seed catalog", err)
		os.Exit(1)
	}
	userStore, err := users.Seeded()
	if err != nil {
		logg.Error(ctx, "failed to seed users", err)
		os.Exit(1)
	}
	orderStore, err := orders.Seeded()
	if err != nil {
		logg.Error(ctx, "failed to seed orders", err)
		os.Exit(1)
	}

	ledger, err := cart.NewLedger(ctx, catalogStore, snapshots, logg)
	if err != nil {
		logg.Error(ctx, "failed to build cart ledger", err)
		os.Exit(1)
	}

	policy := pricing.PolicyFromConfig(cfg.Pricing)
	sleeper := clock.New()

	authService, err := authsvc.NewService(ctx, userStore, snapshots, cfg.JWT, sleeper, cfg.Mock.LoginDelay, logg)
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	sequencer, err := checkoutsvc.NewSequencer(ledger, orderStore, policy, sleeper,
		cfg.Mock.PlacementDelay, rand.New(rand.NewSource(time.Now().UnixNano())), logg)
	if err != nil {
		logg.Error(ctx, "failed to create checkout sequencer", err)
		os.Exit(1)
	}

	couponService, err := coupons.NewService(sleeper, cfg.Mock.CouponDelay)
	if err != nil {
		logg.Error(ctx, "failed to create coupon service", err)
		os.Exit(1)
	}

	themePref, err := theme.NewPreference(ctx, snapshots)
	if err != nil {
		logg.Error(ctx, "failed to load theme preference", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			Registry: registry,
			Metrics:  httpMetrics,
			Catalog:  catalogStore,
			Cart:     ledger,
			Orders:   orderStore,
			Policy:   policy,
			Auth:     authService,
			Checkout: sequencer,
			Coupons:  couponService,
			Theme:    themePref,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
