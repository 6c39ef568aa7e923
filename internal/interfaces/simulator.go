package interfaces

import (
	"context"

	"fx-decision-bot/internal/types"
)

// Simulator scores a decided action with a signed profit/loss figure.
// The production implementation draws a pseudo-random fill; a real broker
// adapter can replace it without touching the engine.
type Simulator interface {
	Evaluate(ctx context.Context, action types.Action, currency string) float64
}
