// internal/repository/postgres/transaction_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/repository"
	"goldenia-ledger/internal/util"
)

const transactionColumns = `id, from_wallet_id, to_wallet_id, amount, currency, type, status, description, reference, created_at`

// TransactionRepository implements repository.TransactionRepository for PostgreSQL.
type TransactionRepository struct{}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository() repository.TransactionRepository {
	return &TransactionRepository{}
}

// CreateTransaction appends one ledger entry.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	query := `INSERT INTO transactions (id, from_wallet_id, to_wallet_id, amount, currency, type, status, description, reference, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := q.ExecContext(ctx, query,
		transaction.ID,
		transaction.FromWalletID,
		transaction.ToWalletID,
		transaction.Amount,
		transaction.Currency,
		transaction.Type,
		transaction.Status,
		transaction.Description,
		transaction.Reference,
		transaction.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetTransactionsByWalletID retrieves a paginated list of entries for a
// wallet, newest first, along with the total count.
func (r *TransactionRepository) GetTransactionsByWalletID(ctx context.Context, q repository.DBExecutor, walletID string, limit, offset int) ([]domain.Transaction, int64, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE from_wallet_id = $1 OR to_wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	if err := q.SelectContext(ctx, &transactions, query, walletID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions for wallet %s: %w", walletID, err)
	}

	var totalCount int64
	countQuery := `
		SELECT COUNT(*)
		FROM transactions
		WHERE from_wallet_id = $1 OR to_wallet_id = $1`
	if err := q.GetContext(ctx, &totalCount, countQuery, walletID); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for wallet %s: %w", walletID, err)
	}

	return transactions, totalCount, nil
}

// GetTransactionsByUserID retrieves all entries where any of the user's
// wallets appears as source or destination, newest first. The single query
// de-duplicates by construction.
func (r *TransactionRepository) GetTransactionsByUserID(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE from_wallet_id IN (SELECT id FROM wallets WHERE user_id = $1)
		   OR to_wallet_id IN (SELECT id FROM wallets WHERE user_id = $1)
		ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &transactions, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions for user %s: %w", userID, err)
	}
	return transactions, nil
}

// GetTransactionByReference retrieves the entry carrying an external payment
// reference.
func (r *TransactionRepository) GetTransactionByReference(ctx context.Context, q repository.DBExecutor, reference string) (*domain.Transaction, error) {
	var transaction domain.Transaction
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference = $1`
	err := q.GetContext(ctx, &transaction, query, reference)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by reference %s: %w", reference, err)
	}
	return &transaction, nil
}
