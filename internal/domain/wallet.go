// internal/domain/wallet.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// WalletKind identifies which asset a wallet holds.
type WalletKind string

const (
	WalletKindFiat   WalletKind = "fiat"
	WalletKindGold   WalletKind = "gold"
	WalletKindSilver WalletKind = "silver"
	WalletKindBPC    WalletKind = "bpc"
)

// WalletStatus defines whether a wallet accepts balance mutations.
type WalletStatus string

const (
	WalletStatusActive WalletStatus = "active"
	WalletStatusFrozen WalletStatus = "frozen"
)

// AllWalletKinds lists every wallet provisioned for a user account, in
// creation order.
var AllWalletKinds = []WalletKind{WalletKindFiat, WalletKindGold, WalletKindSilver, WalletKindBPC}

// CurrencyForKind returns the unit label a wallet of the given kind is
// denominated in.
func CurrencyForKind(kind WalletKind) string {
	switch kind {
	case WalletKindGold, WalletKindSilver:
		return "grams"
	case WalletKindBPC:
		return "bpc"
	default:
		return "USD"
	}
}

// Wallet represents a per-user, per-asset-kind balance record.
// Exactly one wallet exists per (user, kind) pair and its balance never
// goes below zero.
type Wallet struct {
	ID        string          `db:"id" json:"id"`                 // Primary key, UUID
	UserID    string          `db:"user_id" json:"user_id"`       // Owner id supplied by the identity layer
	Kind      WalletKind      `db:"kind" json:"kind"`             // fiat, gold, silver or bpc
	Currency  string          `db:"currency" json:"currency"`     // "USD", "grams" or "bpc"
	Balance   decimal.Decimal `db:"balance" json:"balance"`       // Current balance, NUMERIC in DB
	Status    WalletStatus    `db:"status" json:"status"`         // active or frozen
	CreatedAt time.Time       `db:"created_at" json:"created_at"` // Timestamp of creation
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"` // Timestamp of last update
}

// NewWallet creates a zero-balance active wallet for the given owner and kind.
func NewWallet(userID string, kind WalletKind) *Wallet {
	now := time.Now().UTC()
	return &Wallet{
		ID:        uuid.NewString(),
		UserID:    userID,
		Kind:      kind,
		Currency:  CurrencyForKind(kind),
		Balance:   decimal.Zero,
		Status:    WalletStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive reports whether the wallet may be debited or credited.
func (w *Wallet) IsActive() bool {
	return w.Status == WalletStatusActive
}
