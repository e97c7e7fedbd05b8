// internal/repository/price_repo.go
package repository

import (
	"context"

	"goldenia-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// AssetPriceRepository defines the interface for the price registry.
type AssetPriceRepository interface {
	// GetPrice retrieves the current price for an asset, or ErrNotFound.
	GetPrice(ctx context.Context, q DBExecutor, asset domain.Asset) (*domain.AssetPrice, error)
	// ListPrices retrieves all current prices.
	ListPrices(ctx context.Context, q DBExecutor) ([]domain.AssetPrice, error)
	// UpdatePrice overwrites the registry entry for an asset. Last writer
	// wins; no history is retained.
	UpdatePrice(ctx context.Context, q DBExecutor, asset domain.Asset, price decimal.Decimal) (*domain.AssetPrice, error)
}
