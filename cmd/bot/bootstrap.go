package main

import (
	"context"
	"fmt"
	"os"

	"fx-decision-bot/internal/database"
	"fx-decision-bot/internal/interfaces"
	"fx-decision-bot/internal/logger"
	"fx-decision-bot/internal/memstore"
	"fx-decision-bot/internal/store"
	"fx-decision-bot/internal/tradelog"
)

type stores struct {
	market     interfaces.MarketStore
	news       interfaces.NewsStore
	thresholds interfaces.ThresholdStore
	ledger     interfaces.TradeLedger
	close      func() error
}

// buildStores wires every store interface to Postgres in LIVE mode, or to
// a single shared in-memory store in DRY_RUN mode.
func buildStores(ctx context.Context, cfg *store.Config) (*stores, error) {
	if cfg.Mode == "LIVE" {
		db, err := database.Connect(cfg.Database.Host, cfg.Database.Port, cfg.Database.Name,
			cfg.Database.User, cfg.Database.Password)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		st := database.NewStore(db)
		logger.Info(ctx, "Connected to Postgres", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return &stores{market: st, news: st, thresholds: st, ledger: st, close: db.Close}, nil
	}

	logger.Warn(ctx, "Running in DRY_RUN mode - using in-memory stores")
	mem := memstore.New()
	return &stores{market: mem, news: mem, thresholds: mem, ledger: mem, close: func() error { return nil }}, nil
}

func configPath() string {
	if v := os.Getenv("FX_CONFIG"); v != "" {
		return v
	}
	return "config.yaml"
}

// compressOldLogs gzips decision files past the configured retention.
func compressOldLogs(ctx context.Context) {
	if v := os.Getenv("FX_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		if err := tradelog.CompressOlder(n); err != nil {
			logger.Warn(ctx, "Failed to compress old decision logs", "error", err)
		}
	}
}
