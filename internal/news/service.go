package news

import (
	"context"
	"fmt"
	"time"

	"fx-decision-bot/internal/interfaces"
	"fx-decision-bot/internal/logger"
)

// Service ties the scraper to the news store. It runs outside the decision
// core and shares nothing with it but the store, so the core always sees
// an eventually consistent feed.
type Service struct {
	scraper *Scraper
	store   interfaces.NewsStore
}

func NewService(scraper *Scraper, store interfaces.NewsStore) *Service {
	return &Service{scraper: scraper, store: store}
}

// Refresh scrapes the calendar once and inserts anything new. Duplicate
// (title, event time) pairs are dropped by the store.
func (s *Service) Refresh(ctx context.Context) error {
	events, err := s.scraper.FetchCalendar(ctx)
	if err != nil {
		return fmt.Errorf("fetch calendar: %w", err)
	}
	if len(events) == 0 {
		logger.Warn(ctx, "Calendar scrape returned no events")
		return nil
	}
	inserted, err := s.store.InsertNews(ctx, events)
	if err != nil {
		return fmt.Errorf("insert news: %w", err)
	}
	logger.Info(ctx, "News refresh completed", "scraped", len(events), "inserted", inserted)
	return nil
}

// Start runs periodic refreshes until the context is cancelled. Errors are
// logged and the loop continues; a missed refresh only delays new events.
func (s *Service) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := s.Refresh(ctx); err != nil {
		logger.ErrorWithErr(ctx, "Initial news refresh failed", err)
	}
	for {
		select {
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				logger.ErrorWithErr(ctx, "News refresh failed", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
