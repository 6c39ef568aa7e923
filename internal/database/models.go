// Package database provides the Postgres-backed store implementations used
// in LIVE mode. Connections are managed with GORM; every model maps onto a
// table mirroring the ingestion schema.
package database

import "time"

// PriceSnapshotRow is one ingested OHLC bar.
type PriceSnapshotRow struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	CurrencyPair string    `gorm:"size:10;index;not null"`
	Open         float64   `gorm:"type:decimal(15,6);not null"`
	High         float64   `gorm:"type:decimal(15,6);not null"`
	Low          float64   `gorm:"type:decimal(15,6);not null"`
	Close        float64   `gorm:"type:decimal(15,6);not null"`
	Volume       float64   `gorm:"type:decimal(20,2);not null"`
	Timestamp    time.Time `gorm:"index;not null"`
}

func (PriceSnapshotRow) TableName() string { return "ohlc_data" }

// IndicatorSetRow holds the indicator battery for one snapshot.
type IndicatorSetRow struct {
	SnapshotID         int64   `gorm:"primaryKey;column:ohlc_id"`
	SMA                float64 `gorm:"column:sma_value"`
	SMAPeriod          int     `gorm:"column:sma_period"`
	RSI                float64 `gorm:"column:rsi"`
	RSIPeriod          int     `gorm:"column:rsi_period"`
	MACDValue          float64 `gorm:"column:macd_value"`
	MACDSignal         float64 `gorm:"column:macd_signal"`
	MACDHistogram      float64 `gorm:"column:macd_histogram"`
	BollingerUpper     float64 `gorm:"column:upper_band"`
	BollingerMiddle    float64 `gorm:"column:middle_band"`
	BollingerLower     float64 `gorm:"column:lower_band"`
	BollingerPeriod    int     `gorm:"column:bb_period"`
	BollingerDeviation float64 `gorm:"column:bb_deviation"`
	EMA                float64 `gorm:"column:ema_value"`
	EMAPeriod          int     `gorm:"column:ema_period"`
}

func (IndicatorSetRow) TableName() string { return "indicator_data" }

// FibonacciRow holds the retracement levels for one snapshot.
type FibonacciRow struct {
	SnapshotID int64   `gorm:"primaryKey;column:ohlc_id"`
	Level236   float64 `gorm:"column:fib_23_6"`
	Level382   float64 `gorm:"column:fib_38_2"`
	Level500   float64 `gorm:"column:fib_50"`
	Level618   float64 `gorm:"column:fib_61_8"`
	Level100   float64 `gorm:"column:fib_100"`
}

func (FibonacciRow) TableName() string { return "fibonacci_retracement_data" }

// NewsEventRow is one economic-calendar entry. The unique index on
// (title, news_time) enforces the dedup rule at the schema level.
type NewsEventRow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Title     string    `gorm:"size:255;not null;uniqueIndex:idx_news_title_time"`
	Currency  string    `gorm:"size:10;index;not null"`
	Actual    string    `gorm:"size:50"`
	Forecast  string    `gorm:"size:50"`
	Previous  string    `gorm:"size:50"`
	Impact    string    `gorm:"size:10;not null"`
	EventTime time.Time `gorm:"column:news_time;not null;uniqueIndex:idx_news_title_time"`
}

func (NewsEventRow) TableName() string { return "news_data" }

// ThresholdRow is the live decision threshold tuple for one currency.
type ThresholdRow struct {
	Currency      string  `gorm:"primaryKey;size:10"`
	SMA           float64 `gorm:"column:sma"`
	RSIBuy        float64 `gorm:"column:rsi_buy"`
	RSISell       float64 `gorm:"column:rsi_sell"`
	MACD          float64 `gorm:"column:macd"`
	BollingerBand float64 `gorm:"column:bollinger_band"`
	EMA           float64 `gorm:"column:ema"`
}

func (ThresholdRow) TableName() string { return "dynamic_thresholds" }

// TradeRow is one decision-cycle ledger entry.
type TradeRow struct {
	ID               int64   `gorm:"primaryKey;autoIncrement"`
	Action           string  `gorm:"size:10;not null"`
	Currency         string  `gorm:"size:10;index;not null"`
	SMA              float64 `gorm:"column:sma"`
	RSI              float64 `gorm:"column:rsi"`
	MACD             float64 `gorm:"column:macd"`
	BollingerBand    float64 `gorm:"column:bollinger_band"`
	EMA              float64 `gorm:"column:ema"`
	Result           float64 `gorm:"type:decimal(15,2)"`
	PositionSize     int     `gorm:"column:position_size"`
	RiskLevel        string  `gorm:"size:10"`
	Strategy         string  `gorm:"size:20"`
	PerformanceScore float64 `gorm:"column:performance_score"`
}

func (TradeRow) TableName() string { return "trade_log" }

// PerformanceRow is one append-only profit/loss entry for a trade.
type PerformanceRow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	TradeID    int64     `gorm:"index;not null"`
	Timestamp  time.Time `gorm:"not null"`
	ProfitLoss float64   `gorm:"type:decimal(15,2)"`
}

func (PerformanceRow) TableName() string { return "performance_log" }

// IndicatorEffectRow is one row of the indicator audit stream.
type IndicatorEffectRow struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Timestamp     time.Time `gorm:"index;not null"`
	IndicatorName string    `gorm:"size:30;not null"`
	Value         float64
	Impact        string `gorm:"size:10"`
}

func (IndicatorEffectRow) TableName() string { return "indicators_effect" }
