// internal/repository/postgres/wallet_pg.go
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

const walletColumns = `id, user_id, kind, currency, balance, status, created_at, updated_at`

// WalletRepository implements repository.WalletRepository for PostgreSQL.
// Methods receive a DBExecutor so they work both on the pool and inside a
// unit of work.
type WalletRepository struct{}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository() repository.WalletRepository {
	return &WalletRepository{}
}

// CreateWallet inserts a new wallet row.
func (r *WalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	query := `INSERT INTO wallets (id, user_id, kind, currency, balance, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := q.ExecContext(ctx, query,
		wallet.ID, wallet.UserID, wallet.Kind, wallet.Currency,
		wallet.Balance, wallet.Status, wallet.CreatedAt, wallet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

// GetWalletByID retrieves a wallet by its ID.
func (r *WalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	err := q.GetContext(ctx, &wallet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wallet by ID %s: %w", id, err)
	}
	return &wallet, nil
}

// GetWalletByIDForUpdate retrieves a wallet and takes a row lock on it, so a
// concurrent operation against the same wallet serializes behind this unit
// of work and the sufficiency check is never evaluated against stale data.
func (r *WalletRepository) GetWalletByIDForUpdate(ctx context.Context, q repository.DBExecutor, id string) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &wallet, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet %s: %w", id, err)
	}
	return &wallet, nil
}

// GetWalletByUserIDAndKind retrieves the single wallet of a kind owned by a user.
func (r *WalletRepository) GetWalletByUserIDAndKind(ctx context.Context, q repository.DBExecutor, userID string, kind domain.WalletKind) (*domain.Wallet, error) {
	var wallet domain.Wallet
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND kind = $2`
	err := q.GetContext(ctx, &wallet, query, userID, kind)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s wallet for user %s: %w", kind, userID, err)
	}
	return &wallet, nil
}

// GetWalletsByUserID retrieves all wallets for a user, ordered by kind.
func (r *WalletRepository) GetWalletsByUserID(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Wallet, error) {
	wallets := []domain.Wallet{}
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 ORDER BY kind ASC`
	if err := q.SelectContext(ctx, &wallets, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get wallets for user %s: %w", userID, err)
	}
	return wallets, nil
}

// CreditWallet increases a wallet balance by amount.
func (r *WalletRepository) CreditWallet(ctx context.Context, q repository.DBExecutor, walletID string, amount decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance + $1, updated_at = $2 WHERE id = $3`
	result, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to credit wallet %s: %w", walletID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected crediting wallet %s: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return util.ErrWalletNotFound
	}
	return nil
}

// DebitWallet decreases a wallet balance by amount. The balance >= amount
// condition is part of the UPDATE itself, so even under concurrent debits the
// row can never go negative; the schema CHECK (balance >= 0) backs this up.
func (r *WalletRepository) DebitWallet(ctx context.Context, q repository.DBExecutor, walletID string, amount decimal.Decimal) error {
	query := `UPDATE wallets SET balance = balance - $1, updated_at = $2 WHERE id = $3 AND balance >= $1`
	result, err := q.ExecContext(ctx, query, amount, time.Now().UTC(), walletID)
	if err != nil {
		return fmt.Errorf("failed to debit wallet %s: %w", walletID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected debiting wallet %s: %w", walletID, err)
	}
	if rowsAffected == 0 {
		return util.ErrInsufficientFunds
	}
	return nil
}
