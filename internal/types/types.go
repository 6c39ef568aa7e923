package types

import "time"

// Action is the outcome of one decision cycle for a currency pair.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
	ActionHold Action = "hold"
)

// Impact is the severity class the calendar assigns to a news event.
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// PriceSnapshot is one ingested OHLC bar. Immutable once stored; the root
// of one decision cycle's data.
type PriceSnapshot struct {
	ID           int64
	CurrencyPair string
	Open         float64
	High         float64
	Low          float64
	Close        float64
	Volume       float64
	Timestamp    time.Time
}

// IndicatorSet holds the indicator battery derived from one snapshot.
type IndicatorSet struct {
	SnapshotID         int64
	SMA                float64
	SMAPeriod          int
	RSI                float64
	RSIPeriod          int
	MACDValue          float64
	MACDSignal         float64
	MACDHistogram      float64
	BollingerUpper     float64
	BollingerMiddle    float64
	BollingerLower     float64
	BollingerPeriod    int
	BollingerDeviation float64
	EMA                float64
	EMAPeriod          int
}

// FibonacciLevels are the retracement levels computed for one snapshot.
type FibonacciLevels struct {
	SnapshotID int64
	Level236   float64
	Level382   float64
	Level500   float64
	Level618   float64
	Level100   float64
}

// NewsEvent is one economic-calendar entry. Events are deduplicated by
// (Title, EventTime) on insert.
type NewsEvent struct {
	Title     string
	Currency  string
	Actual    string
	Forecast  string
	Previous  string
	Impact    Impact
	EventTime time.Time
}

// ThresholdSet is the tunable decision boundary tuple for one currency.
// Exactly one live set per currency; replaced wholesale by the adapter.
type ThresholdSet struct {
	Currency      string
	SMA           float64
	RSIBuy        float64
	RSISell       float64
	MACD          float64
	BollingerBand float64
	EMA           float64
}

// DefaultThresholds is the tuple substituted when a currency has no stored
// thresholds yet.
func DefaultThresholds(currency string) ThresholdSet {
	return ThresholdSet{
		Currency:      currency,
		SMA:           50,
		RSIBuy:        30,
		RSISell:       70,
		MACD:          0,
		BollingerBand: -2,
		EMA:           0,
	}
}

// TradeRecord is the ledger row written once per decision cycle. The action
// may later be rewritten to hold, and the whole record may be deleted on a
// severe loss.
type TradeRecord struct {
	ID               int64
	Action           Action
	Currency         string
	SMA              float64
	RSI              float64
	MACD             float64
	BollingerBand    float64
	EMA              float64
	Result           float64
	PositionSize     int
	RiskLevel        string
	Strategy         string
	PerformanceScore float64
}

// PerformanceEntry is the append-only profit/loss row for one trade.
type PerformanceEntry struct {
	TradeID    int64
	Timestamp  time.Time
	ProfitLoss float64
}
