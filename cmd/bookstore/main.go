package main

import (
	"os"

	"github.com/bookstore/backend/internal/application/store"
	"github.com/bookstore/backend/internal/domain/cart"
	"github.com/bookstore/backend/internal/domain/catalog"
	"github.com/bookstore/backend/internal/domain/order"
	"github.com/bookstore/backend/internal/domain/pricing"
	"github.com/bookstore/backend/internal/infrastructure/config"
	"github.com/bookstore/backend/internal/infrastructure/logger"
	"github.com/bookstore/backend/internal/interfaces/cli"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting bookstore session",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("tax_rate", cfg.Store.TaxRate),
	)

	// Session state: catalog, cart and ledger live for the process and
	// are owned here, not hidden behind package-level singletons.
	cat := catalog.NewSeededCatalog()
	sessionCart := cart.NewCartWithLimit(cat, cfg.Store.MaxPerLine)
	ledger := order.NewLedger()

	pricer, err := pricing.NewCalculator(cfg.TaxRateDecimal())
	if err != nil {
		log.Error("Invalid tax rate", zap.Error(err))
		os.Exit(1)
	}

	checkout := store.NewCheckoutService(cat, sessionCart, ledger, pricer, log)
	session := cli.NewSession(cat, sessionCart, pricer, checkout, log)

	if err := session.Run(); err != nil {
		log.Error("Session terminated", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Session finished",
		zap.Int("orders_placed", ledger.Len()),
	)
}
