// internal/domain/asset_price.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset names a tradable precious metal.
type Asset string

const (
	AssetGold   Asset = "gold"
	AssetSilver Asset = "silver"
)

// ValidAsset reports whether the asset is in the supported set.
func ValidAsset(asset Asset) bool {
	return asset == AssetGold || asset == AssetSilver
}

// WalletKind returns the wallet kind that holds this asset.
func (a Asset) WalletKind() WalletKind {
	if a == AssetSilver {
		return WalletKindSilver
	}
	return WalletKindGold
}

// AssetPrice is the current administrator-set USD-per-gram price for a
// tradable asset. Exactly one row exists per asset; no history is kept
// beyond the price copied into each executed Trade.
type AssetPrice struct {
	Asset     Asset           `db:"asset" json:"asset"`
	PriceUSD  decimal.Decimal `db:"price_usd" json:"price_usd"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}
