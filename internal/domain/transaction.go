// internal/domain/transaction.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// TransactionType defines the type of a ledger entry.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeBuy      TransactionType = "buy"
	TransactionTypeSell     TransactionType = "sell"
)

// TransactionStatus defines the status of a ledger entry.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// Transaction is an immutable, append-only record of one balance-affecting
// event. A pure deposit references the same wallet on both sides.
type Transaction struct {
	ID           string            `db:"id" json:"id"`                         // Primary key, UUID
	FromWalletID string            `db:"from_wallet_id" json:"from_wallet_id"` // Source wallet
	ToWalletID   string            `db:"to_wallet_id" json:"to_wallet_id"`     // Destination wallet (== source for deposits)
	Amount       decimal.Decimal   `db:"amount" json:"amount"`                 // Positive amount, NUMERIC in DB
	Currency     string            `db:"currency" json:"currency"`             // Currency of the recorded amount
	Type         TransactionType   `db:"type" json:"type"`                     // deposit, transfer, buy or sell
	Status       TransactionStatus `db:"status" json:"status"`                 // completed, pending or failed
	Description  *string           `db:"description" json:"description"`       // Optional free-text description
	Reference    *string           `db:"reference" json:"reference"`           // External reference (payment session id), unique when set
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`         // Timestamp of record creation
}

// NewTransaction creates a new completed Transaction instance.
func NewTransaction(
	fromWalletID, toWalletID string,
	amount decimal.Decimal,
	currency string,
	txType TransactionType,
	description *string,
	reference *string,
) *Transaction {
	return &Transaction{
		ID:           uuid.NewString(),
		FromWalletID: fromWalletID,
		ToWalletID:   toWalletID,
		Amount:       amount,
		Currency:     currency,
		Type:         txType,
		Status:       TransactionStatusCompleted,
		Description:  description,
		Reference:    reference,
		CreatedAt:    time.Now().UTC(),
	}
}

// IsTrade reports whether the entry was produced by a buy or sell conversion.
func (t *Transaction) IsTrade() bool {
	return t.Type == TransactionTypeBuy || t.Type == TransactionTypeSell
}
