package memstore

import (
	"context"
	"sync"
	"time"

	"fx-decision-bot/internal/interfaces"
	"fx-decision-bot/internal/types"
)

// IndicatorEffect is one row of the append-only indicator audit stream.
type IndicatorEffect struct {
	Timestamp time.Time
	Name      string
	Value     float64
	Impact    types.Impact
}

// Store is an in-memory implementation of every store interface. It backs
// DRY_RUN mode and the test suite; LIVE mode uses the Postgres store.
type Store struct {
	mu sync.RWMutex

	snapshots  map[int64]*types.PriceSnapshot
	indicators map[int64]*types.IndicatorSet
	fibonacci  map[int64]*types.FibonacciLevels
	news       []types.NewsEvent
	thresholds map[string]types.ThresholdSet
	trades     map[int64]*types.TradeRecord
	perf       []types.PerformanceEntry
	effects    []IndicatorEffect

	nextSnapshotID int64
	nextTradeID    int64
}

var (
	_ interfaces.MarketStore    = (*Store)(nil)
	_ interfaces.NewsStore      = (*Store)(nil)
	_ interfaces.ThresholdStore = (*Store)(nil)
	_ interfaces.TradeLedger    = (*Store)(nil)
)

func New() *Store {
	return &Store{
		snapshots:  map[int64]*types.PriceSnapshot{},
		indicators: map[int64]*types.IndicatorSet{},
		fibonacci:  map[int64]*types.FibonacciLevels{},
		thresholds: map[string]types.ThresholdSet{},
		trades:     map[int64]*types.TradeRecord{},
	}
}

func (s *Store) SaveSnapshot(_ context.Context, snap *types.PriceSnapshot) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSnapshotID++
	cp := *snap
	cp.ID = s.nextSnapshotID
	s.snapshots[cp.ID] = &cp
	return cp.ID, nil
}

func (s *Store) SaveIndicators(_ context.Context, ind *types.IndicatorSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ind
	s.indicators[cp.SnapshotID] = &cp
	return nil
}

func (s *Store) SaveFibonacci(_ context.Context, fib *types.FibonacciLevels) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *fib
	s.fibonacci[cp.SnapshotID] = &cp
	return nil
}

func (s *Store) LatestSnapshot(_ context.Context, currency string) (*types.PriceSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *types.PriceSnapshot
	for _, snap := range s.snapshots {
		if snap.CurrencyPair != currency {
			continue
		}
		if latest == nil || snap.Timestamp.After(latest.Timestamp) {
			latest = snap
		}
	}
	if latest == nil {
		return nil, interfaces.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (s *Store) Indicators(_ context.Context, snapshotID int64) (*types.IndicatorSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ind, ok := s.indicators[snapshotID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *ind
	return &cp, nil
}

func (s *Store) Fibonacci(_ context.Context, snapshotID int64) (*types.FibonacciLevels, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fib, ok := s.fibonacci[snapshotID]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	cp := *fib
	return &cp, nil
}

// InsertNews appends events, skipping any whose (title, event time) pair is
// already on record. It returns the number of rows actually inserted.
func (s *Store) InsertNews(_ context.Context, events []types.NewsEvent) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inserted := 0
	for _, ev := range events {
		if s.hasNewsLocked(ev.Title, ev.EventTime) {
			continue
		}
		s.news = append(s.news, ev)
		inserted++
	}
	return inserted, nil
}

func (s *Store) hasNewsLocked(title string, eventTime time.Time) bool {
	for _, ev := range s.news {
		if ev.Title == title && ev.EventTime.Equal(eventTime) {
			return true
		}
	}
	return false
}

func (s *Store) LatestNews(_ context.Context, currency string) (*types.NewsEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *types.NewsEvent
	for i := range s.news {
		ev := &s.news[i]
		if ev.Currency != currency {
			continue
		}
		if latest == nil || ev.EventTime.After(latest.EventTime) {
			latest = ev
		}
	}
	if latest == nil {
		return nil, interfaces.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (s *Store) AllNewsWithImpact(_ context.Context) ([]types.NewsEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.NewsEvent, len(s.news))
	copy(out, s.news)
	return out, nil
}

func (s *Store) Fetch(_ context.Context, currency string) (types.ThresholdSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if set, ok := s.thresholds[currency]; ok {
		return set, nil
	}
	return types.DefaultThresholds(currency), nil
}

func (s *Store) Save(_ context.Context, set types.ThresholdSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.thresholds[set.Currency] = set
	return nil
}

func (s *Store) RecordTrade(_ context.Context, rec types.TradeRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTradeID++
	rec.ID = s.nextTradeID
	s.trades[rec.ID] = &rec
	return rec.ID, nil
}

func (s *Store) RecordPerformance(_ context.Context, tradeID int64, profitLoss float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.perf = append(s.perf, types.PerformanceEntry{
		TradeID:    tradeID,
		Timestamp:  time.Now().UTC(),
		ProfitLoss: profitLoss,
	})
	return nil
}

func (s *Store) CorrectTrade(_ context.Context, tradeID int64, action types.Action, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.trades[tradeID]
	if !ok {
		return interfaces.ErrNotFound
	}
	rec.Action = action
	rec.PerformanceScore = score
	return nil
}

func (s *Store) DeleteTrade(_ context.Context, tradeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trades, tradeID)
	return nil
}

func (s *Store) RecordIndicatorEffect(_ context.Context, name string, value float64, impact types.Impact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects = append(s.effects, IndicatorEffect{
		Timestamp: time.Now().UTC(),
		Name:      name,
		Value:     value,
		Impact:    impact,
	})
	return nil
}

// Trade returns the stored trade record by ID, or nil when absent.
func (s *Store) Trade(tradeID int64) *types.TradeRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.trades[tradeID]
	if !ok {
		return nil
	}
	cp := *rec
	return &cp
}

// Performance returns a copy of the performance log.
func (s *Store) Performance() []types.PerformanceEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.PerformanceEntry, len(s.perf))
	copy(out, s.perf)
	return out
}

// IndicatorEffects returns a copy of the indicator audit stream.
func (s *Store) IndicatorEffects() []IndicatorEffect {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]IndicatorEffect, len(s.effects))
	copy(out, s.effects)
	return out
}
