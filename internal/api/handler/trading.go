// internal/api/handler/trading.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/service"
	"goldenia-ledger/internal/util"
)

// TradingHandler handles HTTP requests for prices and buy/sell conversions.
type TradingHandler struct {
	tradingService service.TradingService
	logger         *slog.Logger
}

// NewTradingHandler creates a new TradingHandler.
func NewTradingHandler(tradingSvc service.TradingService, logger *slog.Logger) *TradingHandler {
	return &TradingHandler{
		tradingService: tradingSvc,
		logger:         logger,
	}
}

// GetPrices handles GET /trading/prices.
func (h *TradingHandler) GetPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.tradingService.GetCurrentPrices(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"prices": prices})
}

// TradeRequest represents the request body for buy and sell.
// Amount is USD to spend for a buy, grams to sell for a sell.
type TradeRequest struct {
	Asset  domain.Asset    `json:"asset"`
	Amount decimal.Decimal `json:"amount"`
}

// Buy handles POST /trading/buy.
func (h *TradingHandler) Buy(w http.ResponseWriter, r *http.Request) {
	userID := ownerID(r)
	if userID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	trade, err := h.tradingService.Buy(r.Context(), userID, req.Asset, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Purchase successful",
		"trade":   trade,
	})
}

// Sell handles POST /trading/sell.
func (h *TradingHandler) Sell(w http.ResponseWriter, r *http.Request) {
	userID := ownerID(r)
	if userID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	trade, err := h.tradingService.Sell(r.Context(), userID, req.Asset, req.Amount)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Sale successful",
		"trade":   trade,
	})
}

// GetTrades handles GET /trading/trades — the caller's trade history.
func (h *TradingHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	userID := ownerID(r)
	if userID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	trades, err := h.tradingService.GetUserTrades(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"trades": trades})
}

// UpdatePriceRequest represents the request body for the admin price update.
type UpdatePriceRequest struct {
	PriceUSD decimal.Decimal `json:"price_usd"`
}

// UpdatePrice handles PUT /admin/prices/{asset}. Authorization for the admin
// role happens upstream; here it is just another caller of the contract.
func (h *TradingHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	asset := domain.Asset(chi.URLParam(r, "asset"))

	var req UpdatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	price, err := h.tradingService.UpdatePrice(r.Context(), asset, req.PriceUSD)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Price updated",
		"price":   price,
	})
}
