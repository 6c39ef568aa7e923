package engine

import "fx-decision-bot/internal/types"

// AdaptThresholds picks the replacement threshold tuple for a currency from
// the sign of the performance score. A positive score adopts the aggressive
// tuple; zero or negative adopts the conservative one. The returned set
// replaces the stored one wholesale, it never interpolates.
func AdaptThresholds(currency string, performanceScore float64) types.ThresholdSet {
	if performanceScore > 0 {
		return types.ThresholdSet{
			Currency:      currency,
			SMA:           55,
			RSIBuy:        32,
			RSISell:       68,
			MACD:          0.1,
			BollingerBand: -2.5,
			EMA:           0.05,
		}
	}
	return types.ThresholdSet{
		Currency:      currency,
		SMA:           45,
		RSIBuy:        28,
		RSISell:       72,
		MACD:          -0.1,
		BollingerBand: -1.5,
		EMA:           -0.05,
	}
}
