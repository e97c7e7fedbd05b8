// internal/repository/postgres/trade_pg.go
package postgres

import (
	"context"
	"fmt"

	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/repository"
)

// TradeRepository implements repository.TradeRepository for PostgreSQL.
type TradeRepository struct{}

// NewTradeRepository creates a new TradeRepository.
func NewTradeRepository() repository.TradeRepository {
	return &TradeRepository{}
}

// CreateTrade appends one trade record.
func (r *TradeRepository) CreateTrade(ctx context.Context, q repository.DBExecutor, trade *domain.Trade) error {
	query := `INSERT INTO trades (id, user_id, trade_type, asset, amount_grams, price_per_gram, total_usd, status, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := q.ExecContext(ctx, query,
		trade.ID,
		trade.UserID,
		trade.Type,
		trade.Asset,
		trade.AmountGrams,
		trade.PricePerGram,
		trade.TotalUSD,
		trade.Status,
		trade.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}
	return nil
}

// GetTradesByUserID retrieves a user's trades, newest first.
func (r *TradeRepository) GetTradesByUserID(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Trade, error) {
	trades := []domain.Trade{}
	query := `
		SELECT id, user_id, trade_type, asset, amount_grams, price_per_gram, total_usd, status, created_at
		FROM trades
		WHERE user_id = $1
		ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &trades, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch trades for user %s: %w", userID, err)
	}
	return trades, nil
}
