// internal/repository/transaction_repo.go
package repository

import (
	"context"

	"goldenia-ledger/internal/domain"
)

// TransactionRepository defines the interface for ledger data operations.
// The ledger is append-only: rows are never updated or deleted.
type TransactionRepository interface {
	// CreateTransaction appends one ledger entry.
	CreateTransaction(ctx context.Context, q DBExecutor, transaction *domain.Transaction) error
	// GetTransactionsByWalletID retrieves a paginated list of entries where
	// the wallet appears as source or destination, newest first, with the
	// total count.
	GetTransactionsByWalletID(ctx context.Context, q DBExecutor, walletID string, limit, offset int) ([]domain.Transaction, int64, error)
	// GetTransactionsByUserID retrieves all entries touching any of the
	// user's wallets, de-duplicated, newest first.
	GetTransactionsByUserID(ctx context.Context, q DBExecutor, userID string) ([]domain.Transaction, error)
	// GetTransactionByReference retrieves the entry carrying an external
	// payment reference, or ErrNotFound.
	GetTransactionByReference(ctx context.Context, q DBExecutor, reference string) (*domain.Transaction, error)
}
