// internal/repository/postgres/price_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/repository"
	"goldenia-ledger/internal/util"

	"github.com/shopspring/decimal"
)

// AssetPriceRepository implements repository.AssetPriceRepository for PostgreSQL.
type AssetPriceRepository struct{}

// NewAssetPriceRepository creates a new AssetPriceRepository.
func NewAssetPriceRepository() repository.AssetPriceRepository {
	return &AssetPriceRepository{}
}

// GetPrice retrieves the current price for an asset.
func (r *AssetPriceRepository) GetPrice(ctx context.Context, q repository.DBExecutor, asset domain.Asset) (*domain.AssetPrice, error) {
	var price domain.AssetPrice
	query := `SELECT asset, price_usd, updated_at FROM asset_prices WHERE asset = $1`
	err := q.GetContext(ctx, &price, query, asset)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get price for asset %s: %w", asset, err)
	}
	return &price, nil
}

// ListPrices retrieves all current prices.
func (r *AssetPriceRepository) ListPrices(ctx context.Context, q repository.DBExecutor) ([]domain.AssetPrice, error) {
	prices := []domain.AssetPrice{}
	query := `SELECT asset, price_usd, updated_at FROM asset_prices ORDER BY asset ASC`
	if err := q.SelectContext(ctx, &prices, query); err != nil {
		return nil, fmt.Errorf("failed to list asset prices: %w", err)
	}
	return prices, nil
}

// UpdatePrice overwrites the registry entry for an asset.
func (r *AssetPriceRepository) UpdatePrice(ctx context.Context, q repository.DBExecutor, asset domain.Asset, price decimal.Decimal) (*domain.AssetPrice, error) {
	updatedAt := time.Now().UTC()
	query := `UPDATE asset_prices SET price_usd = $1, updated_at = $2 WHERE asset = $3`
	result, err := q.ExecContext(ctx, query, price, updatedAt, asset)
	if err != nil {
		return nil, fmt.Errorf("failed to update price for asset %s: %w", asset, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected updating price for asset %s: %w", asset, err)
	}
	if rowsAffected == 0 {
		return nil, util.ErrNotFound
	}
	return &domain.AssetPrice{Asset: asset, PriceUSD: price, UpdatedAt: updatedAt}, nil
}
