// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"goldenia-ledger/internal/api/handler"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(walletHandler *handler.WalletHandler, tradingHandler *handler.TradingHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Wallet routes
	r.Route("/wallets", func(r chi.Router) {
		r.Get("/", walletHandler.GetUserWallets)
		r.Post("/provision", walletHandler.ProvisionWallets)
		r.Get("/{walletID}", walletHandler.GetWallet)
		r.Post("/{walletID}/deposit", walletHandler.Deposit)
		r.Get("/{walletID}/transactions", walletHandler.GetTransactionHistory)
	})

	// Transfer is a separate top-level endpoint as it involves two wallets
	r.Post("/transfers", walletHandler.Transfer)

	// Unified ledger reporting
	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", walletHandler.ListTransactions)
		r.Get("/search", walletHandler.SearchTransactions)
		r.Get("/export.csv", walletHandler.ExportTransactions)
		r.Get("/stats", walletHandler.GetStats)
	})

	// Trading routes
	r.Route("/trading", func(r chi.Router) {
		r.Get("/prices", tradingHandler.GetPrices)
		r.Post("/buy", tradingHandler.Buy)
		r.Post("/sell", tradingHandler.Sell)
		r.Get("/trades", tradingHandler.GetTrades)
	})

	// Administrative price registry write; role check happens upstream
	r.Put("/admin/prices/{asset}", tradingHandler.UpdatePrice)

	// Payment-processor webhook pass-through
	r.Post("/payments/webhook", walletHandler.PaymentWebhook)

	return r
}
