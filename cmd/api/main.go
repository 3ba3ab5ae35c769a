package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/bitebudget/internal/analytics"
	"github.com/MrJamesThe3rd/bitebudget/internal/auth"
	"github.com/MrJamesThe3rd/bitebudget/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/bitebudget/internal/budget/store"
	"github.com/MrJamesThe3rd/bitebudget/internal/config"
	"github.com/MrJamesThe3rd/bitebudget/internal/database"
	"github.com/MrJamesThe3rd/bitebudget/internal/events"
	"github.com/MrJamesThe3rd/bitebudget/internal/export"
	bbHttp "github.com/MrJamesThe3rd/bitebudget/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/bitebudget/internal/http/analytics"
	authHandler "github.com/MrJamesThe3rd/bitebudget/internal/http/auth"
	budgetHandler "github.com/MrJamesThe3rd/bitebudget/internal/http/budget"
	exportHandler "github.com/MrJamesThe3rd/bitebudget/internal/http/export"
	healthHandler "github.com/MrJamesThe3rd/bitebudget/internal/http/health"
	importHandler "github.com/MrJamesThe3rd/bitebudget/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/bitebudget/internal/http/matching"
	pricingHandler "github.com/MrJamesThe3rd/bitebudget/internal/http/pricing"
	productHandler "github.com/MrJamesThe3rd/bitebudget/internal/http/product"
	receiptHandler "github.com/MrJamesThe3rd/bitebudget/internal/http/receipt"
	"github.com/MrJamesThe3rd/bitebudget/internal/importer"
	"github.com/MrJamesThe3rd/bitebudget/internal/logging"
	"github.com/MrJamesThe3rd/bitebudget/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/bitebudget/internal/matching/store"
	"github.com/MrJamesThe3rd/bitebudget/internal/pricing"
	pricingStore "github.com/MrJamesThe3rd/bitebudget/internal/pricing/store"
	"github.com/MrJamesThe3rd/bitebudget/internal/product"
	productStore "github.com/MrJamesThe3rd/bitebudget/internal/product/store"
	"github.com/MrJamesThe3rd/bitebudget/internal/receipt"
	receiptStore "github.com/MrJamesThe3rd/bitebudget/internal/receipt/store"
	"github.com/MrJamesThe3rd/bitebudget/internal/user"
	userStore "github.com/MrJamesThe3rd/bitebudget/internal/user/store"
)

const shutdownTimeout = 10 * time.Second

type alertPublisher interface {
	pricing.AlertPublisher
	Close() error
}

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logging.New(os.Stdout, cfg.App.LogLevel, cfg.App.LogFormat)

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}

	cache, err := product.NewCache(cfg.Cache.ProductMaxCost, cfg.Cache.ProductTTL)
	if err != nil {
		return err
	}
	defer cache.Close()

	publisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	var (
		issuer          = auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		userService     = user.NewService(userStore.New(db))
		receiptService  = receipt.NewService(receiptStore.New(db))
		budgetService   = budget.NewService(budgetStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		importService   = importer.NewService(matchingService)
		productService  = product.NewService(productStore.New(db), cache)
		exportService   = export.NewService(receiptService)
		analyticsSvc    = analytics.NewService(receiptService, budgetService)
		pricingService  = pricing.NewService(
			pricingStore.New(db),
			receiptService,
			publisher,
			pricing.NewPredictor(cfg.Pricing.Mode),
		)
	)

	router := bbHttp.New(bbHttp.Handlers{
		Health:    healthHandler.NewHandler(cfg.App.Name, db),
		Auth:      authHandler.NewHandler(userService, issuer),
		Receipts:  receiptHandler.NewHandler(receiptService),
		Import:    importHandler.NewHandler(importService, receiptService),
		Budgets:   budgetHandler.NewHandler(budgetService),
		Analytics: analyticsHandler.NewHandler(analyticsSvc),
		Products:  productHandler.NewHandler(productService),
		Pricing:   pricingHandler.NewHandler(pricingService),
		Matching:  matchingHandler.NewHandler(matchingService),
		Export:    exportHandler.NewHandler(exportService),
	}, bbHttp.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
		Authenticate:   issuer.Middleware,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "pricing_mode", cfg.Pricing.Mode)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// newPublisher connects to RabbitMQ when AMQP_URL is set. Without a broker,
// alert events are dropped.
func newPublisher(cfg *config.Config) (alertPublisher, error) {
	if cfg.AMQP.URL == "" {
		slog.Info("AMQP_URL not set, price alert events are disabled")
		return events.Discard{}, nil
	}

	p, err := events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
	if err != nil {
		return nil, fmt.Errorf("connecting to broker: %w", err)
	}

	return p, nil
}
