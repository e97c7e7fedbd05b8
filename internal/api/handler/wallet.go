// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"goldenia-ledger/internal/api/types"
	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/service"
	"goldenia-ledger/internal/util"
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	walletService service.WalletService
	queryService  service.QueryService
	logger        *slog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc service.WalletService, querySvc service.QueryService, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{
		walletService: walletSvc,
		queryService:  querySvc,
		logger:        logger,
	}
}

// requireOwnedWallet loads a wallet and verifies it belongs to the caller.
func (h *WalletHandler) requireOwnedWallet(r *http.Request, walletID string) (*domain.Wallet, error) {
	wallet, err := h.walletService.GetWallet(r.Context(), walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != ownerID(r) {
		return nil, util.ErrForbidden
	}
	return wallet, nil
}

// GetUserWallets handles GET /wallets — all wallets for the caller.
func (h *WalletHandler) GetUserWallets(w http.ResponseWriter, r *http.Request) {
	userID := ownerID(r)
	if userID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	wallets, err := h.walletService.GetUserWallets(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"wallets": wallets})
}

// ProvisionWallets handles POST /wallets/provision — creates the four
// wallets for a freshly registered user.
func (h *WalletHandler) ProvisionWallets(w http.ResponseWriter, r *http.Request) {
	userID := ownerID(r)
	if userID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	wallets, err := h.walletService.ProvisionWallets(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, map[string]interface{}{"wallets": wallets})
}

// GetWallet handles GET /wallets/{walletID}.
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.requireOwnedWallet(r, chi.URLParam(r, "walletID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"wallet": wallet})
}

// TransferRequest represents the request body for transfer.
type TransferRequest struct {
	FromWalletID string          `json:"from_wallet_id"`
	ToWalletID   string          `json:"to_wallet_id"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
}

// Transfer handles POST /transfers.
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.FromWalletID == "" || req.ToWalletID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	// The source wallet must belong to the caller. The destination may
	// belong to anyone.
	if _, err := h.requireOwnedWallet(r, req.FromWalletID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	transaction, err := h.walletService.Transfer(r.Context(), req.FromWalletID, req.ToWalletID, req.Amount, req.Description)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":     "Transfer successful",
		"transaction": transaction,
	})
}

// DepositRequest represents the request body for deposit.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Deposit handles POST /wallets/{walletID}/deposit.
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletID")

	var req DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if _, err := h.requireOwnedWallet(r, walletID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	wallet, transaction, err := h.walletService.Deposit(r.Context(), walletID, req.Amount, req.Description, "")
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":        "Deposit successful",
		"wallet_id":      wallet.ID,
		"new_balance":    wallet.Balance,
		"transaction_id": transaction.ID,
	})
}

// PaymentWebhookRequest is the payload forwarded by the payment-processor
// integration once a checkout completes. Signature verification happens
// upstream; this endpoint is a thin pass-through into the ledger.
type PaymentWebhookRequest struct {
	WalletID  string          `json:"wallet_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference"`
}

// PaymentWebhook handles POST /payments/webhook. The reference makes the
// deposit idempotent across webhook retries.
func (h *WalletHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	var req PaymentWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.WalletID == "" || req.Reference == "" || req.Amount.IsNegative() || req.Amount.IsZero() {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	wallet, transaction, err := h.walletService.Deposit(r.Context(), req.WalletID, req.Amount, "Card deposit", req.Reference)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message":        "Payment processed",
		"wallet_id":      wallet.ID,
		"new_balance":    wallet.Balance,
		"transaction_id": transaction.ID,
	})
}

// GetTransactionHistory handles GET /wallets/{walletID}/transactions.
func (h *WalletHandler) GetTransactionHistory(w http.ResponseWriter, r *http.Request) {
	walletID := chi.URLParam(r, "walletID")

	if _, err := h.requireOwnedWallet(r, walletID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	transactions, totalCount, err := h.walletService.GetTransactionHistory(r.Context(), walletID, limit, offset)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.PaginatedResponse[domain.Transaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}

// ListTransactions handles GET /transactions — the caller's unified ledger.
func (h *WalletHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := ownerID(r)
	if userID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	transactions, err := h.queryService.ListUserTransactions(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"transactions": transactions})
}

// SearchTransactions handles GET /transactions/search.
// Query params: type (sent|received|trade|all), q, start_date, end_date
// (RFC 3339; both bounds inclusive).
func (h *WalletHandler) SearchTransactions(w http.ResponseWriter, r *http.Request) {
	userID := ownerID(r)
	if userID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	filters := service.SearchFilters{
		Type: service.TransactionFilter(r.URL.Query().Get("type")),
		Text: r.URL.Query().Get("q"),
	}
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
		filters.StartDate = &t
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
		filters.EndDate = &t
	}

	transactions, err := h.queryService.Search(r.Context(), userID, filters)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"transactions": transactions})
}

// ExportTransactions handles GET /transactions/export.csv.
func (h *WalletHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	userID := ownerID(r)
	if userID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	csvData, err := h.queryService.ExportCSV(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csvData))
}

// GetStats handles GET /transactions/stats — dashboard summary.
func (h *WalletHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID := ownerID(r)
	if userID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	stats, err := h.queryService.GetStats(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"stats": stats})
}
