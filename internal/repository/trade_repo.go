// internal/repository/trade_repo.go
package repository

import (
	"context"

	"goldenia-ledger/internal/domain"
)

// TradeRepository defines the interface for trade record operations.
type TradeRepository interface {
	// CreateTrade appends one trade record.
	CreateTrade(ctx context.Context, q DBExecutor, trade *domain.Trade) error
	// GetTradesByUserID retrieves a user's trades, newest first.
	GetTradesByUserID(ctx context.Context, q DBExecutor, userID string) ([]domain.Trade, error)
}
