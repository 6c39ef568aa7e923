package sim

import (
	"context"
	"math"
	"testing"

	"fx-decision-bot/internal/types"
)

func TestEvaluateHoldIsExactlyZero(t *testing.T) {
	r := NewWithSeed(1)
	for i := 0; i < 10; i++ {
		if v := r.Evaluate(context.Background(), types.ActionHold, "EURUSD"); v != 0.0 {
			t.Fatalf("hold must score exactly 0.0, got %v", v)
		}
	}
}

func TestEvaluateRangeAndRounding(t *testing.T) {
	r := NewWithSeed(42)
	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		action := types.ActionBuy
		if i%2 == 1 {
			action = types.ActionSell
		}
		v := r.Evaluate(ctx, action, "EURUSD")
		if v < -50 || v > 100 {
			t.Fatalf("draw %d out of range: %v", i, v)
		}
		cents := v * 100
		if math.Abs(cents-math.Round(cents)) > 1e-9 {
			t.Fatalf("draw %d not rounded to cents: %v", i, v)
		}
	}
}

func TestEvaluateSeededDeterminism(t *testing.T) {
	a := NewWithSeed(7)
	b := NewWithSeed(7)
	ctx := context.Background()
	for i := 0; i < 50; i++ {
		va := a.Evaluate(ctx, types.ActionBuy, "EURUSD")
		vb := b.Evaluate(ctx, types.ActionBuy, "EURUSD")
		if va != vb {
			t.Fatalf("draw %d diverged: %v vs %v", i, va, vb)
		}
	}
}
