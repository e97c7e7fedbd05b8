// internal/domain/trade.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeType defines the direction of a fiat/asset conversion.
type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// Trade records one executed fiat/metal conversion at a specific price.
// It is written alongside (not instead of) the general ledger entry so the
// conversion also appears in unified transaction history.
type Trade struct {
	ID           string            `db:"id" json:"id"`                       // Primary key, UUID
	UserID       string            `db:"user_id" json:"user_id"`             // Owner of both wallets involved
	Type         TradeType         `db:"trade_type" json:"trade_type"`       // buy or sell
	Asset        Asset             `db:"asset" json:"asset"`                 // gold or silver
	AmountGrams  decimal.Decimal   `db:"amount_grams" json:"amount_grams"`   // Grams moved into or out of the asset wallet
	PricePerGram decimal.Decimal   `db:"price_per_gram" json:"price_per_gram"` // Registry price at execution time
	TotalUSD     decimal.Decimal   `db:"total_usd" json:"total_usd"`         // Fiat leg of the conversion
	Status       TransactionStatus `db:"status" json:"status"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
}

// NewTrade creates a completed Trade record.
func NewTrade(userID string, tradeType TradeType, asset Asset, amountGrams, pricePerGram, totalUSD decimal.Decimal) *Trade {
	return &Trade{
		ID:           uuid.NewString(),
		UserID:       userID,
		Type:         tradeType,
		Asset:        asset,
		AmountGrams:  amountGrams,
		PricePerGram: pricePerGram,
		TotalUSD:     totalUSD,
		Status:       TransactionStatusCompleted,
		CreatedAt:    time.Now().UTC(),
	}
}
