// Package collector exposes the ingestion API that upstream terminals POST
// OHLC bars and their indicator battery to.
package collector

import (
	"encoding/json"
	"io"
	"net/http"

	"fx-decision-bot/internal/interfaces"
	"fx-decision-bot/internal/logger"
)

// Handler receives raw indicator payloads and writes them to the market
// store. An optional hook fires after every successful ingest, used to kick
// off a background news refresh.
type Handler struct {
	market  interfaces.MarketStore
	onStore func()
}

func NewHandler(market interfaces.MarketStore, onStore func()) *Handler {
	return &Handler{market: market, onStore: onStore}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/ohlc_data", h.handleOHLC)
}

func (h *Handler) handleOHLC(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to read request body", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid data"})
		return
	}

	var payload ohlcPayload
	if err := json.Unmarshal([]byte(CleanPayload(raw)), &payload); err != nil {
		logger.Warn(ctx, "Rejected payload with invalid JSON", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON format"})
		return
	}

	if err := payload.validate(); err != nil {
		logger.Warn(ctx, "Rejected payload with missing fields", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid data"})
		return
	}
	payload.applyDefaults()

	snap, err := payload.snapshot()
	if err != nil {
		logger.Warn(ctx, "Rejected payload with bad timestamp", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid data"})
		return
	}

	snapshotID, err := h.market.SaveSnapshot(ctx, snap)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to store snapshot", err, "currency", snap.CurrencyPair)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Database error"})
		return
	}
	if err := h.market.SaveIndicators(ctx, payload.indicators(snapshotID)); err != nil {
		logger.ErrorWithErr(ctx, "Failed to store indicators", err, "snapshot_id", snapshotID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Database error"})
		return
	}
	if err := h.market.SaveFibonacci(ctx, payload.fibonacci(snapshotID)); err != nil {
		logger.ErrorWithErr(ctx, "Failed to store fibonacci levels", err, "snapshot_id", snapshotID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Database error"})
		return
	}

	logger.Info(ctx, "Snapshot ingested", "currency", snap.CurrencyPair, "snapshot_id", snapshotID, "timestamp", snap.Timestamp)

	if h.onStore != nil {
		h.onStore()
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
