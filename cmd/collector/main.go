package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fx-decision-bot/internal/collector"
	"fx-decision-bot/internal/database"
	"fx-decision-bot/internal/interfaces"
	"fx-decision-bot/internal/logger"
	"fx-decision-bot/internal/memstore"
	"fx-decision-bot/internal/news"
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

	market, newsStore, closeStores, err := buildStores(ctx, cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to build stores", err)
		os.Exit(1)
	}
	defer closeStores()

	scraper := news.NewScraper(cfg.News.CalendarURL, time.Duration(cfg.News.TimeoutSeconds)*time.Second)
	svc := news.NewService(scraper, newsStore)
	go svc.Start(ctx, time.Duration(cfg.News.RefreshMinutes)*time.Minute)

	var onStore func()
	if cfg.Collector.FetchOnIngest {
		onStore = func() {
			go func() {
				if err := svc.Refresh(context.Background()); err != nil {
					logger.Warn(context.Background(), "Background news refresh failed", "error", err)
				}
			}()
		}
	}

	mux := http.NewServeMux()
	collector.NewHandler(market, onStore).Register(mux)
	srv := &http.Server{Addr: cfg.Collector.Listen, Handler: mux}

	go func() {
		logger.Info(ctx, "Collector listening", "addr", cfg.Collector.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorWithErr(ctx, "Collector server failed", err)
			cancel()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigc:
		logger.Info(ctx, "Shutting down")
	case <-ctx.Done():
	}

	shCtx, shCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shCancel()
	_ = srv.Shutdown(shCtx)
	_ = logger.Shutdown(shCtx)
}

func buildStores(ctx context.Context, cfg *store.Config) (interfaces.MarketStore, interfaces.NewsStore, func() error, error) {
	if cfg.Mode == "LIVE" {
		db, err := database.Connect(cfg.Database.Host, cfg.Database.Port, cfg.Database.Name,
			cfg.Database.User, cfg.Database.Password)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect database: %w", err)
		}
		st := database.NewStore(db)
		logger.Info(ctx, "Connected to Postgres", "host", cfg.Database.Host, "database", cfg.Database.Name)
		return st, st, db.Close, nil
	}

	logger.Warn(ctx, "Running in DRY_RUN mode - using in-memory stores")
	mem := memstore.New()
	return mem, mem, func() error { return nil }, nil
}

func configPath() string {
	if v := os.Getenv("FX_CONFIG"); v != "" {
		return v
	}
	return "config.yaml"
}
