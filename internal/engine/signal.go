package engine

import "fx-decision-bot/internal/types"

// Indicator names as they appear in the audit stream.
const (
	IndicatorSMA             = "SMA"
	IndicatorRSI             = "RSI"
	IndicatorMACD            = "MACD"
	IndicatorBollingerUpper  = "Bollinger_upper"
	IndicatorBollingerMiddle = "Bollinger_middle"
	IndicatorBollingerLower  = "Bollinger_lower"
	IndicatorEMA             = "EMA"
)

// indicatorOrder fixes the evaluation sequence. Votes overwrite each other,
// so the candidate action is decided by the last matching rule in this
// order. Middle and lower Bollinger readings are audited but never vote.
var indicatorOrder = [...]string{
	IndicatorSMA,
	IndicatorRSI,
	IndicatorMACD,
	IndicatorBollingerUpper,
	IndicatorBollingerMiddle,
	IndicatorBollingerLower,
	IndicatorEMA,
}

type reading struct {
	name  string
	value float64
}

// readings flattens an indicator set into the fixed evaluation order.
func readings(ind *types.IndicatorSet) []reading {
	byName := map[string]float64{
		IndicatorSMA:             ind.SMA,
		IndicatorRSI:             ind.RSI,
		IndicatorMACD:            ind.MACDValue,
		IndicatorBollingerUpper:  ind.BollingerUpper,
		IndicatorBollingerMiddle: ind.BollingerMiddle,
		IndicatorBollingerLower:  ind.BollingerLower,
		IndicatorEMA:             ind.EMA,
	}
	out := make([]reading, 0, len(indicatorOrder))
	for _, name := range indicatorOrder {
		out = append(out, reading{name: name, value: byName[name]})
	}
	return out
}

// vote maps one indicator reading against the currency's thresholds to a
// directional vote. The second return is false when the reading does not
// vote at all.
func vote(name string, value float64, th types.ThresholdSet) (types.Action, bool) {
	switch name {
	case IndicatorSMA:
		if value > th.SMA {
			return types.ActionBuy, true
		}
	case IndicatorRSI:
		if value < th.RSIBuy {
			return types.ActionBuy, true
		}
		if value > th.RSISell {
			return types.ActionSell, true
		}
	case IndicatorMACD:
		if value > th.MACD {
			return types.ActionBuy, true
		}
	case IndicatorBollingerUpper:
		if value < th.BollingerBand {
			return types.ActionBuy, true
		}
	case IndicatorEMA:
		if value > th.EMA {
			return types.ActionBuy, true
		}
	}
	return "", false
}

// applyRangeFilter applies the Fibonacci containment override after the
// signal rules. Both bands are tested unconditionally; the last assignment
// governs, so the sell band wins when the SMA sits in both.
func applyRangeFilter(action types.Action, sma float64, fib *types.FibonacciLevels) types.Action {
	if fib.Level382 < sma && sma < fib.Level618 {
		action = types.ActionBuy
	}
	if fib.Level500 < sma && sma < fib.Level100 {
		action = types.ActionSell
	}
	return action
}
