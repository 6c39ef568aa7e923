package collector

import (
	"fmt"
	"strings"
	"time"

	"fx-decision-bot/internal/types"
)

// ingestTimeLayout matches the terminal's timestamp format.
const ingestTimeLayout = "2006.01.02 15:04"

// ohlcPayload is the wire format of one ingested bar. Required numeric
// fields are pointers so a missing key is distinguishable from zero.
type ohlcPayload struct {
	CurrencyPair  string   `json:"currency_pair"`
	Timestamp     string   `json:"timestamp"`
	Open          *float64 `json:"open"`
	High          *float64 `json:"high"`
	Low           *float64 `json:"low"`
	Close         *float64 `json:"close"`
	Volume        *float64 `json:"volume"`
	RSI           *float64 `json:"rsi"`
	RSIPeriod     int      `json:"rsi_period"`
	MACDValue     *float64 `json:"macd_value"`
	MACDSignal    *float64 `json:"macd_signal"`
	MACDHistogram *float64 `json:"macd_histogram"`
	SMA           *float64 `json:"sma"`
	SMAPeriod     int      `json:"sma_period"`
	UpperBand     *float64 `json:"upper_band"`
	MiddleBand    *float64 `json:"middle_band"`
	LowerBand     *float64 `json:"lower_band"`
	BBPeriod      int      `json:"bb_period"`
	BBDeviation   float64  `json:"bb_deviation"`
	EMAValue      *float64 `json:"ema_value"`
	EMAPeriod     int      `json:"ema_period"`
	Fib236        *float64 `json:"fib_23_6"`
	Fib382        *float64 `json:"fib_38_2"`
	Fib50         *float64 `json:"fib_50"`
	Fib618        *float64 `json:"fib_61_8"`
	Fib100        *float64 `json:"fib_100"`
}

func (p *ohlcPayload) validate() error {
	var missing []string
	if p.CurrencyPair == "" {
		missing = append(missing, "currency_pair")
	}
	if p.Timestamp == "" {
		missing = append(missing, "timestamp")
	}
	required := map[string]*float64{
		"open": p.Open, "high": p.High, "low": p.Low, "close": p.Close,
		"volume": p.Volume, "rsi": p.RSI, "macd_value": p.MACDValue,
		"macd_signal": p.MACDSignal, "macd_histogram": p.MACDHistogram,
		"sma": p.SMA, "upper_band": p.UpperBand, "middle_band": p.MiddleBand,
		"lower_band": p.LowerBand, "ema_value": p.EMAValue,
		"fib_23_6": p.Fib236, "fib_38_2": p.Fib382, "fib_50": p.Fib50,
		"fib_61_8": p.Fib618, "fib_100": p.Fib100,
	}
	for name, v := range required {
		if v == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (p *ohlcPayload) applyDefaults() {
	if p.RSIPeriod == 0 {
		p.RSIPeriod = 14
	}
	if p.SMAPeriod == 0 {
		p.SMAPeriod = 14
	}
	if p.BBPeriod == 0 {
		p.BBPeriod = 20
	}
	if p.BBDeviation == 0 {
		p.BBDeviation = 2
	}
	if p.EMAPeriod == 0 {
		p.EMAPeriod = 14
	}
}

// snapshot converts the payload to the domain snapshot. The currency pair
// is trimmed to its six-character symbol; some terminals append a broker
// suffix.
func (p *ohlcPayload) snapshot() (*types.PriceSnapshot, error) {
	ts, err := time.Parse(ingestTimeLayout, p.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("parse timestamp %q: %w", p.Timestamp, err)
	}
	pair := p.CurrencyPair
	if len(pair) > 6 {
		pair = pair[:6]
	}
	return &types.PriceSnapshot{
		CurrencyPair: pair,
		Open:         *p.Open,
		High:         *p.High,
		Low:          *p.Low,
		Close:        *p.Close,
		Volume:       *p.Volume,
		Timestamp:    ts,
	}, nil
}

func (p *ohlcPayload) indicators(snapshotID int64) *types.IndicatorSet {
	return &types.IndicatorSet{
		SnapshotID:         snapshotID,
		SMA:                *p.SMA,
		SMAPeriod:          p.SMAPeriod,
		RSI:                *p.RSI,
		RSIPeriod:          p.RSIPeriod,
		MACDValue:          *p.MACDValue,
		MACDSignal:         *p.MACDSignal,
		MACDHistogram:      *p.MACDHistogram,
		BollingerUpper:     *p.UpperBand,
		BollingerMiddle:    *p.MiddleBand,
		BollingerLower:     *p.LowerBand,
		BollingerPeriod:    p.BBPeriod,
		BollingerDeviation: p.BBDeviation,
		EMA:                *p.EMAValue,
		EMAPeriod:          p.EMAPeriod,
	}
}

func (p *ohlcPayload) fibonacci(snapshotID int64) *types.FibonacciLevels {
	return &types.FibonacciLevels{
		SnapshotID: snapshotID,
		Level236:   *p.Fib236,
		Level382:   *p.Fib382,
		Level500:   *p.Fib50,
		Level618:   *p.Fib618,
		Level100:   *p.Fib100,
	}
}
