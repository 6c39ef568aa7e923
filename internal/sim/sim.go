// Package sim provides the mock outcome scoring that stands in for real
// trade execution.
package sim

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"fx-decision-bot/internal/interfaces"
	"fx-decision-bot/internal/logger"
	"fx-decision-bot/internal/types"
)

const (
	minProfitLoss = -50.0
	maxProfitLoss = 100.0
)

// Random scores buy and sell actions with a uniform draw from [-50, 100],
// rounded to cents. Hold always scores exactly zero.
type Random struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

var _ interfaces.Simulator = (*Random)(nil)

func New() *Random {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a simulator with a fixed seed, for reproducible runs.
func NewWithSeed(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

func (r *Random) Evaluate(ctx context.Context, action types.Action, currency string) float64 {
	if action != types.ActionBuy && action != types.ActionSell {
		return 0.0
	}
	logger.Debug(ctx, "Evaluating trade outcome", "currency", currency, "action", string(action))

	r.mu.Lock()
	v := minProfitLoss + r.rnd.Float64()*(maxProfitLoss-minProfitLoss)
	r.mu.Unlock()
	return math.Round(v*100) / 100
}
