// internal/repository/wallet_repo.go
package repository

import (
	"context"

	"goldenia-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data operations.
type WalletRepository interface {
	// CreateWallet adds a new wallet row.
	CreateWallet(ctx context.Context, q DBExecutor, wallet *domain.Wallet) error
	// GetWalletByID retrieves a wallet by its ID.
	GetWalletByID(ctx context.Context, q DBExecutor, id string) (*domain.Wallet, error)
	// GetWalletByIDForUpdate retrieves a wallet and takes a row lock on it.
	// Must be called inside a unit of work.
	GetWalletByIDForUpdate(ctx context.Context, q DBExecutor, id string) (*domain.Wallet, error)
	// GetWalletByUserIDAndKind retrieves the single wallet of a kind owned by a user.
	GetWalletByUserIDAndKind(ctx context.Context, q DBExecutor, userID string, kind domain.WalletKind) (*domain.Wallet, error)
	// GetWalletsByUserID retrieves all wallets for a user, ordered by kind.
	GetWalletsByUserID(ctx context.Context, q DBExecutor, userID string) ([]domain.Wallet, error)
	// CreditWallet increases a wallet balance by amount.
	CreditWallet(ctx context.Context, q DBExecutor, walletID string, amount decimal.Decimal) error
	// DebitWallet decreases a wallet balance by amount. The update is
	// conditional on balance >= amount so a balance can never go negative,
	// even against a concurrent writer; it returns ErrInsufficientFunds when
	// the condition does not hold.
	DebitWallet(ctx context.Context, q DBExecutor, walletID string, amount decimal.Decimal) error
}
