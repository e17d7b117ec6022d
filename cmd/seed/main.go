package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/commerce/backend/internal/infrastructure/auth"
	"github.com/commerce/backend/internal/infrastructure/config"
	"github.com/commerce/backend/internal/infrastructure/logger"
	"github.com/commerce/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

const saveBatchSize = 500

func main() {
	var (
		customers   int
		maxOrders   int
		maxTotal    float64
		malformed   float64
		historyDays int
		seed        uint64
		printToken  bool
	)
	flag.IntVar(&customers, "customers", 200, "Number of customers to create")
	flag.IntVar(&maxOrders, "max-orders", 12, "Maximum orders per customer")
	flag.Float64Var(&maxTotal, "max-total", 8000, "Maximum order total")
	flag.Float64Var(&malformed, "malformed", 0.02, "Share of orders stored without a total")
	flag.IntVar(&historyDays, "history-days", 365, "Days of order history")
	flag.Uint64Var(&seed, "seed", 0, "Random seed (0 = random)")
	flag.BoolVar(&printToken, "print-token", false, "Print an admin bearer token and exit")
	flag.Parse()

	log, err := logger.New(&logger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	if printToken {
		token, expiresAt, err := auth.NewJWTService(cfg.JWT).Issue("seed-admin", "admin@example.com")
		if err != nil {
			log.Fatal("Failed to issue token", zap.Error(err))
		}
		log.Info("Issued admin token", zap.Time("expires_at", expiresAt))
		fmt.Println(token)
		return
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.Driver == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate sqlite schema", zap.Error(err))
		}
	}

	ds := NewGenerator(seed, GeneratorConfig{
		Customers:      customers,
		MaxOrders:      maxOrders,
		MaxOrderTotal:  maxTotal,
		MalformedRatio: malformed,
		History:        time.Duration(historyDays) * 24 * time.Hour,
	}, time.Now()).Generate()

	ctx := context.Background()
	customerStore := persistence.NewGormCustomerStore(db.DB)
	orderStore := persistence.NewGormOrderStore(db.DB)

	for start := 0; start < len(ds.Customers); start += saveBatchSize {
		end := min(start+saveBatchSize, len(ds.Customers))
		if err := customerStore.Save(ctx, ds.Customers[start:end]...); err != nil {
			log.Fatal("Failed to save customers", zap.Error(err))
		}
	}
	for start := 0; start < len(ds.Orders); start += saveBatchSize {
		end := min(start+saveBatchSize, len(ds.Orders))
		if err := orderStore.Save(ctx, ds.Orders[start:end]...); err != nil {
			log.Fatal("Failed to save orders", zap.Error(err))
		}
	}

	log.Info("Seed completed",
		zap.Int("customers", len(ds.Customers)),
		zap.Int("orders", len(ds.Orders)),
	)
}
