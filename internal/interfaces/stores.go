package interfaces

import (
	"context"
	"errors"

	"fx-decision-bot/internal/types"
)

// ErrNotFound is returned by store reads when no matching row exists.
var ErrNotFound = errors.New("not found")

// MarketStore persists OHLC snapshots and their derived indicator rows.
type MarketStore interface {
	SaveSnapshot(ctx context.Context, snap *types.PriceSnapshot) (int64, error)
	SaveIndicators(ctx context.Context, ind *types.IndicatorSet) error
	SaveFibonacci(ctx context.Context, fib *types.FibonacciLevels) error
	LatestSnapshot(ctx context.Context, currency string) (*types.PriceSnapshot, error)
	Indicators(ctx context.Context, snapshotID int64) (*types.IndicatorSet, error)
	Fibonacci(ctx context.Context, snapshotID int64) (*types.FibonacciLevels, error)
}

// NewsStore persists calendar events. Insert deduplicates by
// (title, event time); the insert count reflects only new rows.
type NewsStore interface {
	InsertNews(ctx context.Context, events []types.NewsEvent) (int, error)
	LatestNews(ctx context.Context, currency string) (*types.NewsEvent, error)
	AllNewsWithImpact(ctx context.Context) ([]types.NewsEvent, error)
}

// ThresholdStore holds the live per-currency threshold sets.
// Fetch substitutes types.DefaultThresholds when no row exists.
type ThresholdStore interface {
	Fetch(ctx context.Context, currency string) (types.ThresholdSet, error)
	Save(ctx context.Context, set types.ThresholdSet) error
}

// TradeLedger records decisions, their outcomes, and the per-indicator
// audit stream.
type TradeLedger interface {
	RecordTrade(ctx context.Context, rec types.TradeRecord) (int64, error)
	RecordPerformance(ctx context.Context, tradeID int64, profitLoss float64) error
	CorrectTrade(ctx context.Context, tradeID int64, action types.Action, score float64) error
	DeleteTrade(ctx context.Context, tradeID int64) error
	RecordIndicatorEffect(ctx context.Context, name string, value float64, impact types.Impact) error
}
