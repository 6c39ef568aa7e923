// Package engine holds the decision core: the ordered signal rules, the
// Fibonacci range filter, the per-cycle correction state machine, and the
// threshold adaptation step that feeds trade outcomes back into future
// decisions.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fx-decision-bot/internal/interfaces"
	"fx-decision-bot/internal/logger"
	"fx-decision-bot/internal/store"
	"fx-decision-bot/internal/tradelog"
	"fx-decision-bot/internal/types"
)

// Losses below this delete the trade record outright.
const severeLossCutoff = -10.0

type Engine struct {
	cfg        *store.Config
	market     interfaces.MarketStore
	news       interfaces.NewsStore
	thresholds interfaces.ThresholdStore
	ledger     interfaces.TradeLedger
	sim        interfaces.Simulator
}

func New(cfg *store.Config, market interfaces.MarketStore, news interfaces.NewsStore,
	thresholds interfaces.ThresholdStore, ledger interfaces.TradeLedger, sim interfaces.Simulator) *Engine {
	return &Engine{
		cfg:        cfg,
		market:     market,
		news:       news,
		thresholds: thresholds,
		ledger:     ledger,
		sim:        sim,
	}
}

// Outcome describes what one decision cycle did to the ledger.
type Outcome struct {
	Currency   string
	Action     types.Action // final action, after any hold correction
	ProfitLoss float64
	TradeID    int64
	Corrected  bool
	Deleted    bool
}

// Cycle runs one decision pass: one cycle per news event currently stored.
// Failures abort only the offending event's cycle; the pass continues with
// the next event.
func (e *Engine) Cycle(ctx context.Context) {
	ctx, span := logger.StartSpan(ctx, "engine.cycle")
	defer span.End()

	events, err := e.news.AllNewsWithImpact(ctx)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch news events", err)
		return
	}
	logger.Debug(ctx, "Decision pass started", "events", len(events))

	for _, ev := range events {
		if !e.watchesCurrency(ev.Currency) {
			logger.Debug(ctx, "Currency not configured, skipping event", "currency", ev.Currency, "news_title", ev.Title)
			continue
		}
		if _, err := e.DecideForEvent(ctx, ev); err != nil {
			logger.ErrorWithErr(ctx, "Decision cycle failed", err, "currency", ev.Currency, "news_title", ev.Title)
		}
	}
}

// watchesCurrency reports whether a news currency falls under one of the
// configured pairs. Calendar rows carry either a full pair or a bare
// currency code, so a code matches any pair containing it.
func (e *Engine) watchesCurrency(currency string) bool {
	if currency == "" {
		return false
	}
	for _, pair := range e.cfg.Pairs {
		if strings.Contains(pair, currency) {
			return true
		}
	}
	return false
}

// DecideForEvent runs the full pipeline for one news event: signal rules,
// range filter, simulated outcome, ledger writes, threshold adaptation, and
// the bad-decision corrections. A nil Outcome with nil error means the
// cycle was skipped because required market data is missing.
func (e *Engine) DecideForEvent(ctx context.Context, ev types.NewsEvent) (*Outcome, error) {
	ctx, span := logger.StartSpan(ctx, "engine.decide")
	defer span.End()

	snap, err := e.market.LatestSnapshot(ctx, ev.Currency)
	if errors.Is(err, interfaces.ErrNotFound) {
		logger.Debug(ctx, "No snapshot for currency, skipping", "currency", ev.Currency)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}

	inds, err := e.market.Indicators(ctx, snap.ID)
	if errors.Is(err, interfaces.ErrNotFound) {
		logger.Debug(ctx, "Indicators missing for snapshot, skipping", "currency", ev.Currency, "snapshot_id", snap.ID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch indicators: %w", err)
	}

	fib, err := e.market.Fibonacci(ctx, snap.ID)
	if errors.Is(err, interfaces.ErrNotFound) {
		logger.Debug(ctx, "Fibonacci levels missing for snapshot, skipping", "currency", ev.Currency, "snapshot_id", snap.ID)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch fibonacci: %w", err)
	}

	action, err := e.decide(ctx, ev.Currency, ev.Impact, inds, fib)
	if err != nil {
		return nil, err
	}
	logger.Decision(ctx, ev.Currency, string(action), ev.Title, "impact", string(ev.Impact))

	result := e.sim.Evaluate(ctx, action, ev.Currency)

	rec := types.TradeRecord{
		Action:        action,
		Currency:      ev.Currency,
		SMA:           inds.SMA,
		RSI:           inds.RSI,
		MACD:          inds.MACDValue,
		BollingerBand: inds.BollingerUpper,
		EMA:           inds.EMA,
		Result:        result,
		PositionSize:  e.cfg.Trade.PositionSize,
		RiskLevel:     e.cfg.Trade.RiskLevel,
		Strategy:      e.cfg.Trade.Strategy,
	}
	tradeID, err := e.ledger.RecordTrade(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("record trade: %w", err)
	}
	if err := e.ledger.RecordPerformance(ctx, tradeID, result); err != nil {
		return nil, fmt.Errorf("record performance: %w", err)
	}

	// The adapter is fed a score that starts at zero each cycle and is
	// never derived from the realized profit/loss, so every cycle adopts
	// the conservative tuple.
	// TODO: feed `result` into AdaptThresholds once the intended
	// adaptation policy is confirmed; wiring it changes which tuple wins.
	performanceScore := 0.0
	if err := e.thresholds.Save(ctx, AdaptThresholds(ev.Currency, performanceScore)); err != nil {
		return nil, fmt.Errorf("save thresholds: %w", err)
	}

	out := &Outcome{
		Currency:   ev.Currency,
		Action:     action,
		ProfitLoss: result,
		TradeID:    tradeID,
	}

	// Bad-decision handling. Both rules are tested independently: any loss
	// rewrites the record to hold, a severe loss additionally deletes it.
	if result < 0 {
		if err := e.ledger.CorrectTrade(ctx, tradeID, types.ActionHold, 0); err != nil {
			return nil, fmt.Errorf("correct trade: %w", err)
		}
		out.Action = types.ActionHold
		out.Corrected = true
		logger.Info(ctx, "Bad decision corrected to hold", "trade_id", tradeID, "currency", ev.Currency, "profit_loss", result)
	}
	if result < severeLossCutoff {
		if err := e.ledger.DeleteTrade(ctx, tradeID); err != nil {
			return nil, fmt.Errorf("delete trade: %w", err)
		}
		out.Deleted = true
		logger.Info(ctx, "Bad decision deleted after severe loss", "trade_id", tradeID, "currency", ev.Currency, "profit_loss", result)
	}

	if out.Action != types.ActionHold {
		e.executeTrade(ctx, ev.Currency, out.Action, result, tradeID)
	}

	e.appendDecisionLog(ev, out, inds)
	return out, nil
}

// decide runs the ordered signal rules and then the range filter over one
// indicator set, producing the candidate action. Every reading is recorded
// to the indicator audit stream whether or not it votes.
func (e *Engine) decide(ctx context.Context, currency string, impact types.Impact,
	inds *types.IndicatorSet, fib *types.FibonacciLevels) (types.Action, error) {
	th, err := e.thresholds.Fetch(ctx, currency)
	if err != nil {
		return "", fmt.Errorf("fetch thresholds: %w", err)
	}

	action := types.ActionHold
	for _, r := range readings(inds) {
		if err := e.ledger.RecordIndicatorEffect(ctx, r.name, r.value, impact); err != nil {
			return "", fmt.Errorf("record indicator effect: %w", err)
		}
		if v, ok := vote(r.name, r.value, th); ok {
			action = v
		}
	}

	return applyRangeFilter(action, inds.SMA, fib), nil
}

// executeTrade is the logged-only stand-in for routing an order to a broker.
func (e *Engine) executeTrade(ctx context.Context, currency string, action types.Action, profitLoss float64, tradeID int64) {
	logger.Trade(ctx, currency, string(action), profitLoss, tradeID)
}

func (e *Engine) appendDecisionLog(ev types.NewsEvent, out *Outcome, inds *types.IndicatorSet) {
	_ = tradelog.AppendDecision(tradelog.DecisionEntry{
		Currency:   out.Currency,
		Action:     string(out.Action),
		NewsTitle:  ev.Title,
		Impact:     string(ev.Impact),
		ProfitLoss: out.ProfitLoss,
		TradeID:    out.TradeID,
		Corrected:  out.Corrected,
		Deleted:    out.Deleted,
		Indicators: map[string]float64{
			IndicatorSMA:            inds.SMA,
			IndicatorRSI:            inds.RSI,
			IndicatorMACD:           inds.MACDValue,
			IndicatorBollingerUpper: inds.BollingerUpper,
			IndicatorEMA:            inds.EMA,
		},
	})
}
