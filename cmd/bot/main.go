package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fx-decision-bot/internal/engine"
	"fx-decision-bot/internal/logger"
	"fx-decision-bot/internal/sim"
	"fx-decision-bot/internal/store"
)

func main() {
	_ = godotenv.Load()
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := store.LoadConfig(configPath())
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		os.Exit(1)
	}

	compressOldLogs(ctx)

	st, err := buildStores(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build stores", err)
		os.Exit(1)
	}
	defer st.close()

	eng := engine.New(cfg, st.market, st.news, st.thresholds, st.ledger, sim.New())

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	tick := time.NewTicker(time.Duration(cfg.PollSeconds) * time.Second)
	defer tick.Stop()

	logger.Info(ctx, "Decision loop started", "mode", cfg.Mode, "poll_seconds", cfg.PollSeconds, "pairs", cfg.Pairs)
	for {
		select {
		case <-tick.C:
			eng.Cycle(ctx)
		case <-sigc:
			logger.Info(ctx, "Shutting down")
			shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
			_ = logger.Shutdown(shCtx)
			shCancel()
			return
		case <-ctx.Done():
			return
		}
	}
}
