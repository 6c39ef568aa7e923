package engine

import (
	"testing"

	"fx-decision-bot/internal/types"
)

func defaultThresholds() types.ThresholdSet {
	return types.DefaultThresholds("EURUSD")
}

func TestVoteSMA(t *testing.T) {
	th := defaultThresholds()

	if a, ok := vote(IndicatorSMA, 60, th); !ok || a != types.ActionBuy {
		t.Errorf("SMA above threshold: expected buy vote, got %q ok=%v", a, ok)
	}
	if _, ok := vote(IndicatorSMA, 50, th); ok {
		t.Error("SMA equal to threshold should not vote")
	}
	if _, ok := vote(IndicatorSMA, 40, th); ok {
		t.Error("SMA below threshold should not vote")
	}
}

func TestVoteRSI(t *testing.T) {
	th := defaultThresholds()

	if a, ok := vote(IndicatorRSI, 25, th); !ok || a != types.ActionBuy {
		t.Errorf("RSI below buy threshold: expected buy vote, got %q ok=%v", a, ok)
	}
	if a, ok := vote(IndicatorRSI, 80, th); !ok || a != types.ActionSell {
		t.Errorf("RSI above sell threshold: expected sell vote, got %q ok=%v", a, ok)
	}
	if _, ok := vote(IndicatorRSI, 50, th); ok {
		t.Error("RSI between thresholds should not vote")
	}
}

func TestVoteMACDBollingerEMA(t *testing.T) {
	th := defaultThresholds()

	if a, ok := vote(IndicatorMACD, 0.2, th); !ok || a != types.ActionBuy {
		t.Errorf("MACD above threshold: expected buy vote, got %q ok=%v", a, ok)
	}
	if _, ok := vote(IndicatorMACD, -0.2, th); ok {
		t.Error("MACD below threshold should not vote")
	}

	if a, ok := vote(IndicatorBollingerUpper, -3, th); !ok || a != types.ActionBuy {
		t.Errorf("Bollinger upper below threshold: expected buy vote, got %q ok=%v", a, ok)
	}
	if _, ok := vote(IndicatorBollingerUpper, -1, th); ok {
		t.Error("Bollinger upper above threshold should not vote")
	}

	if a, ok := vote(IndicatorEMA, 0.1, th); !ok || a != types.ActionBuy {
		t.Errorf("EMA above threshold: expected buy vote, got %q ok=%v", a, ok)
	}
	if _, ok := vote(IndicatorEMA, 0, th); ok {
		t.Error("EMA equal to threshold should not vote")
	}
}

func TestVoteMiddleAndLowerBandsNeverVote(t *testing.T) {
	th := defaultThresholds()
	for _, name := range []string{IndicatorBollingerMiddle, IndicatorBollingerLower} {
		if _, ok := vote(name, -100, th); ok {
			t.Errorf("%s should never vote", name)
		}
	}
}

func TestReadingsOrder(t *testing.T) {
	ind := &types.IndicatorSet{
		SMA: 1, RSI: 2, MACDValue: 3,
		BollingerUpper: 4, BollingerMiddle: 5, BollingerLower: 6, EMA: 7,
	}
	rs := readings(ind)

	wantNames := []string{
		IndicatorSMA, IndicatorRSI, IndicatorMACD,
		IndicatorBollingerUpper, IndicatorBollingerMiddle, IndicatorBollingerLower,
		IndicatorEMA,
	}
	wantValues := []float64{1, 2, 3, 4, 5, 6, 7}
	if len(rs) != len(wantNames) {
		t.Fatalf("expected %d readings, got %d", len(wantNames), len(rs))
	}
	for i, r := range rs {
		if r.name != wantNames[i] || r.value != wantValues[i] {
			t.Errorf("reading %d: got (%s, %v), want (%s, %v)", i, r.name, r.value, wantNames[i], wantValues[i])
		}
	}
}

func TestRangeFilterBuyBand(t *testing.T) {
	fib := &types.FibonacciLevels{Level382: 55, Level500: 62, Level618: 65, Level100: 70}
	if a := applyRangeFilter(types.ActionSell, 60, fib); a != types.ActionBuy {
		t.Errorf("SMA inside buy band should force buy, got %q", a)
	}
}

func TestRangeFilterSellBand(t *testing.T) {
	fib := &types.FibonacciLevels{Level382: 10, Level500: 55, Level618: 58, Level100: 70}
	if a := applyRangeFilter(types.ActionBuy, 60, fib); a != types.ActionSell {
		t.Errorf("SMA inside sell band should force sell, got %q", a)
	}
}

func TestRangeFilterSellBandWinsWhenBothMatch(t *testing.T) {
	// Both containment checks hold; the sell assignment is tested second
	// and governs.
	fib := &types.FibonacciLevels{Level382: 55, Level500: 56, Level618: 65, Level100: 70}
	if a := applyRangeFilter(types.ActionHold, 60, fib); a != types.ActionSell {
		t.Errorf("expected sell when both bands contain the SMA, got %q", a)
	}
}

func TestRangeFilterNoMatchKeepsAction(t *testing.T) {
	fib := &types.FibonacciLevels{Level382: 100, Level500: 100, Level618: 110, Level100: 110}
	for _, action := range []types.Action{types.ActionBuy, types.ActionSell, types.ActionHold} {
		if a := applyRangeFilter(action, 60, fib); a != action {
			t.Errorf("expected %q preserved outside both bands, got %q", action, a)
		}
	}
}

func TestRangeFilterBoundsAreExclusive(t *testing.T) {
	fib := &types.FibonacciLevels{Level382: 55, Level500: 100, Level618: 65, Level100: 110}
	if a := applyRangeFilter(types.ActionHold, 55, fib); a != types.ActionHold {
		t.Errorf("SMA on the lower bound should not match, got %q", a)
	}
	if a := applyRangeFilter(types.ActionHold, 65, fib); a != types.ActionHold {
		t.Errorf("SMA on the upper bound should not match, got %q", a)
	}
}
