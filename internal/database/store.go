package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fx-decision-bot/internal/interfaces"
	"fx-decision-bot/internal/types"
)

// Store implements the market, news, threshold, and ledger interfaces on
// top of Postgres.
type Store struct {
	db *gorm.DB
}

var (
	_ interfaces.MarketStore    = (*Store)(nil)
	_ interfaces.NewsStore      = (*Store)(nil)
	_ interfaces.ThresholdStore = (*Store)(nil)
	_ interfaces.TradeLedger    = (*Store)(nil)
)

func NewStore(db *DB) *Store {
	return &Store{db: db.Gorm()}
}

func (s *Store) SaveSnapshot(ctx context.Context, snap *types.PriceSnapshot) (int64, error) {
	row := PriceSnapshotRow{
		CurrencyPair: snap.CurrencyPair,
		Open:         snap.Open,
		High:         snap.High,
		Low:          snap.Low,
		Close:        snap.Close,
		Volume:       snap.Volume,
		Timestamp:    snap.Timestamp,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("SaveSnapshot: %w", err)
	}
	return row.ID, nil
}

func (s *Store) SaveIndicators(ctx context.Context, ind *types.IndicatorSet) error {
	row := IndicatorSetRow{
		SnapshotID:         ind.SnapshotID,
		SMA:                ind.SMA,
		SMAPeriod:          ind.SMAPeriod,
		RSI:                ind.RSI,
		RSIPeriod:          ind.RSIPeriod,
		MACDValue:          ind.MACDValue,
		MACDSignal:         ind.MACDSignal,
		MACDHistogram:      ind.MACDHistogram,
		BollingerUpper:     ind.BollingerUpper,
		BollingerMiddle:    ind.BollingerMiddle,
		BollingerLower:     ind.BollingerLower,
		BollingerPeriod:    ind.BollingerPeriod,
		BollingerDeviation: ind.BollingerDeviation,
		EMA:                ind.EMA,
		EMAPeriod:          ind.EMAPeriod,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("SaveIndicators: %w", err)
	}
	return nil
}

func (s *Store) SaveFibonacci(ctx context.Context, fib *types.FibonacciLevels) error {
	row := FibonacciRow{
		SnapshotID: fib.SnapshotID,
		Level236:   fib.Level236,
		Level382:   fib.Level382,
		Level500:   fib.Level500,
		Level618:   fib.Level618,
		Level100:   fib.Level100,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("SaveFibonacci: %w", err)
	}
	return nil
}

func (s *Store) LatestSnapshot(ctx context.Context, currency string) (*types.PriceSnapshot, error) {
	var row PriceSnapshotRow
	err := s.db.WithContext(ctx).
		Where("currency_pair = ?", currency).
		Order("timestamp DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("LatestSnapshot: %w", err)
	}
	return &types.PriceSnapshot{
		ID:           row.ID,
		CurrencyPair: row.CurrencyPair,
		Open:         row.Open,
		High:         row.High,
		Low:          row.Low,
		Close:        row.Close,
		Volume:       row.Volume,
		Timestamp:    row.Timestamp,
	}, nil
}

func (s *Store) Indicators(ctx context.Context, snapshotID int64) (*types.IndicatorSet, error) {
	var row IndicatorSetRow
	err := s.db.WithContext(ctx).Where("ohlc_id = ?", snapshotID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Indicators: %w", err)
	}
	return &types.IndicatorSet{
		SnapshotID:         row.SnapshotID,
		SMA:                row.SMA,
		SMAPeriod:          row.SMAPeriod,
		RSI:                row.RSI,
		RSIPeriod:          row.RSIPeriod,
		MACDValue:          row.MACDValue,
		MACDSignal:         row.MACDSignal,
		MACDHistogram:      row.MACDHistogram,
		BollingerUpper:     row.BollingerUpper,
		BollingerMiddle:    row.BollingerMiddle,
		BollingerLower:     row.BollingerLower,
		BollingerPeriod:    row.BollingerPeriod,
		BollingerDeviation: row.BollingerDeviation,
		EMA:                row.EMA,
		EMAPeriod:          row.EMAPeriod,
	}, nil
}

func (s *Store) Fibonacci(ctx context.Context, snapshotID int64) (*types.FibonacciLevels, error) {
	var row FibonacciRow
	err := s.db.WithContext(ctx).Where("ohlc_id = ?", snapshotID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Fibonacci: %w", err)
	}
	return &types.FibonacciLevels{
		SnapshotID: row.SnapshotID,
		Level236:   row.Level236,
		Level382:   row.Level382,
		Level500:   row.Level500,
		Level618:   row.Level618,
		Level100:   row.Level100,
	}, nil
}

// InsertNews inserts events one at a time, skipping (title, news_time)
// pairs already on record. Duplicates racing past the existence check are
// absorbed by the unique index.
func (s *Store) InsertNews(ctx context.Context, events []types.NewsEvent) (int, error) {
	inserted := 0
	for _, ev := range events {
		var count int64
		err := s.db.WithContext(ctx).Model(&NewsEventRow{}).
			Where("title = ? AND news_time = ?", ev.Title, ev.EventTime).
			Count(&count).Error
		if err != nil {
			return inserted, fmt.Errorf("InsertNews: %w", err)
		}
		if count > 0 {
			continue
		}
		row := NewsEventRow{
			Title:     ev.Title,
			Currency:  ev.Currency,
			Actual:    ev.Actual,
			Forecast:  ev.Forecast,
			Previous:  ev.Previous,
			Impact:    string(ev.Impact),
			EventTime: ev.EventTime,
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			if isDuplicateKey(err) {
				continue
			}
			return inserted, fmt.Errorf("InsertNews: %w", err)
		}
		inserted++
	}
	return inserted, nil
}

// isDuplicateKey recognizes a unique-index violation both as gorm's
// translated sentinel and as the raw Postgres error, in case the
// connection was opened without error translation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *Store) LatestNews(ctx context.Context, currency string) (*types.NewsEvent, error) {
	var row NewsEventRow
	err := s.db.WithContext(ctx).
		Where("currency = ?", currency).
		Order("news_time DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, interfaces.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("LatestNews: %w", err)
	}
	ev := newsEventFromRow(row)
	return &ev, nil
}

func (s *Store) AllNewsWithImpact(ctx context.Context) ([]types.NewsEvent, error) {
	var rows []NewsEventRow
	if err := s.db.WithContext(ctx).Order("news_time ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("AllNewsWithImpact: %w", err)
	}
	events := make([]types.NewsEvent, len(rows))
	for i, row := range rows {
		events[i] = newsEventFromRow(row)
	}
	return events, nil
}

func newsEventFromRow(row NewsEventRow) types.NewsEvent {
	return types.NewsEvent{
		Title:     row.Title,
		Currency:  row.Currency,
		Actual:    row.Actual,
		Forecast:  row.Forecast,
		Previous:  row.Previous,
		Impact:    types.Impact(row.Impact),
		EventTime: row.EventTime,
	}
}

func (s *Store) Fetch(ctx context.Context, currency string) (types.ThresholdSet, error) {
	var row ThresholdRow
	err := s.db.WithContext(ctx).Where("currency = ?", currency).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.DefaultThresholds(currency), nil
	}
	if err != nil {
		return types.ThresholdSet{}, fmt.Errorf("Fetch thresholds: %w", err)
	}
	return types.ThresholdSet{
		Currency:      row.Currency,
		SMA:           row.SMA,
		RSIBuy:        row.RSIBuy,
		RSISell:       row.RSISell,
		MACD:          row.MACD,
		BollingerBand: row.BollingerBand,
		EMA:           row.EMA,
	}, nil
}

func (s *Store) Save(ctx context.Context, set types.ThresholdSet) error {
	row := ThresholdRow{
		Currency:      set.Currency,
		SMA:           set.SMA,
		RSIBuy:        set.RSIBuy,
		RSISell:       set.RSISell,
		MACD:          set.MACD,
		BollingerBand: set.BollingerBand,
		EMA:           set.EMA,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "currency"}},
			UpdateAll: true,
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("Save thresholds: %w", err)
	}
	return nil
}

func (s *Store) RecordTrade(ctx context.Context, rec types.TradeRecord) (int64, error) {
	row := TradeRow{
		Action:           string(rec.Action),
		Currency:         rec.Currency,
		SMA:              rec.SMA,
		RSI:              rec.RSI,
		MACD:             rec.MACD,
		BollingerBand:    rec.BollingerBand,
		EMA:              rec.EMA,
		Result:           rec.Result,
		PositionSize:     rec.PositionSize,
		RiskLevel:        rec.RiskLevel,
		Strategy:         rec.Strategy,
		PerformanceScore: rec.PerformanceScore,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("RecordTrade: %w", err)
	}
	return row.ID, nil
}

func (s *Store) RecordPerformance(ctx context.Context, tradeID int64, profitLoss float64) error {
	row := PerformanceRow{
		TradeID:    tradeID,
		Timestamp:  time.Now().UTC(),
		ProfitLoss: profitLoss,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("RecordPerformance: %w", err)
	}
	return nil
}

func (s *Store) CorrectTrade(ctx context.Context, tradeID int64, action types.Action, score float64) error {
	err := s.db.WithContext(ctx).Model(&TradeRow{}).
		Where("id = ?", tradeID).
		Updates(map[string]any{"action": string(action), "performance_score": score}).Error
	if err != nil {
		return fmt.Errorf("CorrectTrade: %w", err)
	}
	return nil
}

func (s *Store) DeleteTrade(ctx context.Context, tradeID int64) error {
	if err := s.db.WithContext(ctx).Delete(&TradeRow{}, tradeID).Error; err != nil {
		return fmt.Errorf("DeleteTrade: %w", err)
	}
	return nil
}

func (s *Store) RecordIndicatorEffect(ctx context.Context, name string, value float64, impact types.Impact) error {
	row := IndicatorEffectRow{
		Timestamp:     time.Now().UTC(),
		IndicatorName: name,
		Value:         value,
		Impact:        string(impact),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("RecordIndicatorEffect: %w", err)
	}
	return nil
}
