// internal/service/wallet_service.go
package service

import (
	"context"
	"fmt"

	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/repository"
	"goldenia-ledger/internal/util"
	"goldenia-ledger/pkg/db"

	"github.com/shopspring/decimal"
)

// WalletService defines the interface for wallet ledger business logic.
type WalletService interface {
	ProvisionWallets(ctx context.Context, userID string) ([]domain.Wallet, error)
	GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error)
	GetUserWallets(ctx context.Context, userID string) ([]domain.Wallet, error)
	Transfer(ctx context.Context, fromWalletID, toWalletID string, amount decimal.Decimal, description string) (*domain.Transaction, error)
	Deposit(ctx context.Context, walletID string, amount decimal.Decimal, description, reference string) (*domain.Wallet, *domain.Transaction, error)
	GetTransactionHistory(ctx context.Context, walletID string, limit, offset int) ([]domain.Transaction, int64, error)
}

// walletService implements the WalletService interface.
type walletService struct {
	dbBeginner      db.DBTxBeginner       // For starting units of work (e.g. *sqlx.DB)
	dbExecutor      repository.DBExecutor // For non-transactional reads
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewWalletService creates a new instance of WalletService.
func NewWalletService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) WalletService {
	return &walletService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// ProvisionWallets creates the full wallet set (fiat, gold, silver, bpc) for
// a newly registered user in one atomic unit. Wallets are never deleted
// afterwards, so a second call fails with ErrDuplicateEntry.
func (s *walletService) ProvisionWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	if userID == "" {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("provision wallets: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("provision wallets: transaction controller does not implement DBExecutor")
	}

	existing, err := s.walletRepo.GetWalletsByUserID(ctx, txExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("provision wallets: failed to check existing wallets: %w", err)
	}
	if len(existing) > 0 {
		return nil, util.ErrDuplicateEntry
	}

	wallets := make([]domain.Wallet, 0, len(domain.AllWalletKinds))
	for _, kind := range domain.AllWalletKinds {
		wallet := domain.NewWallet(userID, kind)
		if err := s.walletRepo.CreateWallet(ctx, txExecutor, wallet); err != nil {
			return nil, fmt.Errorf("provision wallets: failed to create %s wallet: %w", kind, err)
		}
		wallets = append(wallets, *wallet)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("provision wallets: failed to commit transaction: %w", err)
	}

	return wallets, nil
}

// GetWallet retrieves one wallet by id.
func (s *walletService) GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, walletID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("get wallet: failed to get wallet %s: %w", walletID, err)
	}
	return wallet, nil
}

// GetUserWallets retrieves all wallets owned by a user.
func (s *walletService) GetUserWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	wallets, err := s.walletRepo.GetWalletsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get user wallets: %w", err)
	}
	return wallets, nil
}

// Transfer moves a fixed amount from one wallet to another as one atomic
// unit: both wallets are row-locked, the sufficiency and active-status checks
// are re-evaluated against the locked rows, both balances change, and one
// ledger entry is appended. A failure at any step leaves everything untouched.
func (s *walletService) Transfer(ctx context.Context, fromWalletID, toWalletID string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}
	if fromWalletID == toWalletID {
		return nil, util.ErrSameWalletTransfer
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("transfer: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("transfer: transaction controller does not implement DBExecutor")
	}

	wallets, err := lockWallets(ctx, txExecutor, s.walletRepo, fromWalletID, toWalletID)
	if err != nil {
		return nil, err
	}
	fromWallet := wallets[fromWalletID]
	toWallet := wallets[toWalletID]

	if !fromWallet.IsActive() || !toWallet.IsActive() {
		return nil, util.ErrWalletFrozen
	}
	if fromWallet.Balance.LessThan(amount) {
		return nil, util.ErrInsufficientFunds
	}

	if err := s.walletRepo.DebitWallet(ctx, txExecutor, fromWalletID, amount); err != nil {
		return nil, fmt.Errorf("transfer: failed to debit source wallet: %w", err)
	}
	if err := s.walletRepo.CreditWallet(ctx, txExecutor, toWalletID, amount); err != nil {
		return nil, fmt.Errorf("transfer: failed to credit destination wallet: %w", err)
	}

	if description == "" {
		description = "Wallet transfer"
	}
	transaction := domain.NewTransaction(fromWalletID, toWalletID, amount, fromWallet.Currency, domain.TransactionTypeTransfer, &description, nil)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, fmt.Errorf("transfer: failed to create transaction: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("transfer: failed to commit transaction: %w", err)
	}

	return transaction, nil
}

// Deposit credits a wallet and records a deposit ledger entry whose source
// and destination are the same wallet. A non-empty reference makes the call
// idempotent: a deposit already recorded under that reference is returned
// as-is without crediting again, so a replayed payment webhook cannot add
// money twice.
func (s *walletService) Deposit(ctx context.Context, walletID string, amount decimal.Decimal, description, reference string) (*domain.Wallet, *domain.Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, nil, fmt.Errorf("deposit: transaction controller does not implement DBExecutor")
	}

	var referencePtr *string
	if reference != "" {
		existing, err := s.transactionRepo.GetTransactionByReference(ctx, txExecutor, reference)
		if err == nil {
			wallet, werr := s.walletRepo.GetWalletByID(ctx, txExecutor, walletID)
			if werr != nil {
				return nil, nil, fmt.Errorf("deposit: failed to get wallet %s: %w", walletID, werr)
			}
			return wallet, existing, nil
		}
		if !util.IsError(err, util.ErrNotFound) {
			return nil, nil, fmt.Errorf("deposit: failed to check reference %s: %w", reference, err)
		}
		referencePtr = &reference
	}

	wallet, err := s.walletRepo.GetWalletByIDForUpdate(ctx, txExecutor, walletID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil, util.ErrWalletNotFound
		}
		return nil, nil, fmt.Errorf("deposit: failed to get wallet %s: %w", walletID, err)
	}
	if !wallet.IsActive() {
		return nil, nil, util.ErrWalletFrozen
	}

	if err := s.walletRepo.CreditWallet(ctx, txExecutor, walletID, amount); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to credit wallet: %w", err)
	}

	if description == "" {
		description = "Deposit to wallet"
	}
	transaction := domain.NewTransaction(walletID, walletID, amount, wallet.Currency, domain.TransactionTypeDeposit, &description, referencePtr)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, transaction); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to create transaction: %w", err)
	}

	updatedWallet, err := s.walletRepo.GetWalletByID(ctx, txExecutor, walletID)
	if err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to re-fetch updated wallet %s: %w", walletID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, nil, fmt.Errorf("deposit: failed to commit transaction: %w", err)
	}

	return updatedWallet, transaction, nil
}

// GetTransactionHistory retrieves a paginated list of ledger entries for a
// specific wallet, newest first.
func (s *walletService) GetTransactionHistory(ctx context.Context, walletID string, limit, offset int) ([]domain.Transaction, int64, error) {
	if _, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, walletID); err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, 0, util.ErrWalletNotFound
		}
		return nil, 0, fmt.Errorf("failed to check wallet existence: %w", err)
	}

	transactions, totalCount, err := s.transactionRepo.GetTransactionsByWalletID(ctx, s.dbExecutor, walletID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve transaction history: %w", err)
	}

	return transactions, totalCount, nil
}
