// internal/service/wallet_service_test.go
package service

import (
	"context"
	"testing"

	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newWalletServiceForTest(walletRepo *MockWalletRepository, transactionRepo *MockTransactionRepository, txController *MockTxController, dbExecutor *MockDBExecutor) WalletService {
	beginTx, commitTx, rollbackTx := testTxFuncs(txController)
	return NewWalletService(nil, dbExecutor, walletRepo, transactionRepo, beginTx, commitTx, rollbackTx)
}

func activeWallet(id, userID string, kind domain.WalletKind, balance decimal.Decimal) *domain.Wallet {
	wallet := domain.NewWallet(userID, kind)
	wallet.ID = id
	wallet.Balance = balance
	return wallet
}

// TestTransfer tests the Transfer method of WalletService.
func TestTransfer(t *testing.T) {
	fromWalletID := "wallet-a"
	toWalletID := "wallet-b"
	userID := "user-1"

	t.Run("SuccessfulTransfer", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		amount := decimal.NewFromFloat(500.00)
		fromWallet := activeWallet(fromWalletID, userID, domain.WalletKindFiat, decimal.NewFromFloat(1000.00))
		toWallet := activeWallet(toWalletID, userID, domain.WalletKindBPC, decimal.Zero)

		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Maybe()

		// Wallets lock in sorted id order.
		mockWalletRepo.On("GetWalletByIDForUpdate", ctx, mock.Anything, fromWalletID).Return(fromWallet, nil).Once()
		mockWalletRepo.On("GetWalletByIDForUpdate", ctx, mock.Anything, toWalletID).Return(toWallet, nil).Once()
		mockWalletRepo.On("DebitWallet", ctx, mock.Anything, fromWalletID, amount).Return(nil).Once()
		mockWalletRepo.On("CreditWallet", ctx, mock.Anything, toWalletID, amount).Return(nil).Once()
		mockTransactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()

		transaction, err := service.Transfer(ctx, fromWalletID, toWalletID, amount, "savings top-up")

		assert.NoError(t, err)
		assert.NotNil(t, transaction)
		assert.Equal(t, domain.TransactionTypeTransfer, transaction.Type)
		assert.Equal(t, domain.TransactionStatusCompleted, transaction.Status)
		assert.Equal(t, fromWalletID, transaction.FromWalletID)
		assert.Equal(t, toWalletID, transaction.ToWalletID)
		assert.True(t, transaction.Amount.Equal(amount))

		mock.AssertExpectationsForObjects(t, mockTxController, mockWalletRepo, mockTransactionRepo)
	})

	t.Run("InsufficientBalance", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		fromWallet := activeWallet(fromWalletID, userID, domain.WalletKindFiat, decimal.NewFromFloat(1000.00))
		toWallet := activeWallet(toWalletID, userID, domain.WalletKindBPC, decimal.Zero)

		mockWalletRepo.On("GetWalletByIDForUpdate", ctx, mock.Anything, fromWalletID).Return(fromWallet, nil).Once()
		mockWalletRepo.On("GetWalletByIDForUpdate", ctx, mock.Anything, toWalletID).Return(toWallet, nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		transaction, err := service.Transfer(ctx, fromWalletID, toWalletID, decimal.NewFromFloat(10000.00), "")

		assert.ErrorIs(t, err, util.ErrInsufficientFunds)
		assert.Nil(t, transaction)

		// Nothing was applied: no balance mutation, no ledger append, no commit.
		mockWalletRepo.AssertNotCalled(t, "DebitWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockWalletRepo.AssertNotCalled(t, "CreditWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockTransactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
		mockTxController.AssertNotCalled(t, "Commit")

		mock.AssertExpectationsForObjects(t, mockTxController, mockWalletRepo, mockTransactionRepo)
	})

	t.Run("SameWalletRejected", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		transaction, err := service.Transfer(ctx, fromWalletID, fromWalletID, decimal.NewFromFloat(10.00), "")

		assert.ErrorIs(t, err, util.ErrSameWalletTransfer)
		assert.Nil(t, transaction)
		mockTxController.AssertNotCalled(t, "Commit")
		mockTxController.AssertNotCalled(t, "Rollback")
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		transaction, err := service.Transfer(ctx, fromWalletID, toWalletID, decimal.Zero, "")

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, transaction)
		mockTxController.AssertNotCalled(t, "Commit")
	})

	t.Run("WalletNotFound", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		mockWalletRepo.On("GetWalletByIDForUpdate", ctx, mock.Anything, fromWalletID).Return(nil, util.ErrNotFound).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		transaction, err := service.Transfer(ctx, fromWalletID, toWalletID, decimal.NewFromFloat(10.00), "")

		assert.ErrorIs(t, err, util.ErrWalletNotFound)
		assert.Nil(t, transaction)
		mockTxController.AssertNotCalled(t, "Commit")

		mock.AssertExpectationsForObjects(t, mockTxController, mockWalletRepo)
	})

	t.Run("FrozenWalletRejected", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		fromWallet := activeWallet(fromWalletID, userID, domain.WalletKindFiat, decimal.NewFromFloat(1000.00))
		toWallet := activeWallet(toWalletID, userID, domain.WalletKindBPC, decimal.Zero)
		toWallet.Status = domain.WalletStatusFrozen

		mockWalletRepo.On("GetWalletByIDForUpdate", ctx, mock.Anything, fromWalletID).Return(fromWallet, nil).Once()
		mockWalletRepo.On("GetWalletByIDForUpdate", ctx, mock.Anything, toWalletID).Return(toWallet, nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		transaction, err := service.Transfer(ctx, fromWalletID, toWalletID, decimal.NewFromFloat(10.00), "")

		assert.ErrorIs(t, err, util.ErrWalletFrozen)
		assert.Nil(t, transaction)
		mockWalletRepo.AssertNotCalled(t, "DebitWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockTxController.AssertNotCalled(t, "Commit")

		mock.AssertExpectationsForObjects(t, mockTxController, mockWalletRepo)
	})
}

// TestDeposit tests the Deposit method of WalletService.
func TestDeposit(t *testing.T) {
	walletID := "wallet-a"
	userID := "user-1"

	t.Run("SuccessfulDeposit", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		amount := decimal.NewFromFloat(1000.00)
		wallet := activeWallet(walletID, userID, domain.WalletKindFiat, decimal.Zero)
		updatedWallet := activeWallet(walletID, userID, domain.WalletKindFiat, amount)

		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Maybe()

		mockWalletRepo.On("GetWalletByIDForUpdate", ctx, mock.Anything, walletID).Return(wallet, nil).Once()
		mockWalletRepo.On("CreditWallet", ctx, mock.Anything, walletID, amount).Return(nil).Once()
		mockTransactionRepo.On("CreateTransaction", ctx, mock.Anything, mock.AnythingOfType("*domain.Transaction")).Return(nil).Once()
		mockWalletRepo.On("GetWalletByID", ctx, mock.Anything, walletID).Return(updatedWallet, nil).Once()

		resWallet, transaction, err := service.Deposit(ctx, walletID, amount, "", "")

		assert.NoError(t, err)
		assert.NotNil(t, resWallet)
		assert.NotNil(t, transaction)
		assert.True(t, resWallet.Balance.Equal(amount))
		assert.Equal(t, domain.TransactionTypeDeposit, transaction.Type)
		// A pure deposit references the same wallet on both sides.
		assert.Equal(t, walletID, transaction.FromWalletID)
		assert.Equal(t, walletID, transaction.ToWalletID)

		mock.AssertExpectationsForObjects(t, mockTxController, mockWalletRepo, mockTransactionRepo)
	})

	t.Run("IdempotentByReference", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		amount := decimal.NewFromFloat(250.00)
		reference := "cs_session_123"
		wallet := activeWallet(walletID, userID, domain.WalletKindFiat, amount)
		existing := domain.NewTransaction(walletID, walletID, amount, "USD", domain.TransactionTypeDeposit, nil, &reference)

		mockTransactionRepo.On("GetTransactionByReference", ctx, mock.Anything, reference).Return(existing, nil).Once()
		mockWalletRepo.On("GetWalletByID", ctx, mock.Anything, walletID).Return(wallet, nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		resWallet, transaction, err := service.Deposit(ctx, walletID, amount, "", reference)

		assert.NoError(t, err)
		assert.Equal(t, existing, transaction)
		assert.NotNil(t, resWallet)

		// The replayed webhook never credits the wallet a second time.
		mockWalletRepo.AssertNotCalled(t, "CreditWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockTransactionRepo.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
		mockTxController.AssertNotCalled(t, "Commit")

		mock.AssertExpectationsForObjects(t, mockTxController, mockWalletRepo, mockTransactionRepo)
	})

	t.Run("FrozenWalletRejected", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		wallet := activeWallet(walletID, userID, domain.WalletKindFiat, decimal.Zero)
		wallet.Status = domain.WalletStatusFrozen

		mockWalletRepo.On("GetWalletByIDForUpdate", ctx, mock.Anything, walletID).Return(wallet, nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		resWallet, transaction, err := service.Deposit(ctx, walletID, decimal.NewFromFloat(10.00), "", "")

		assert.ErrorIs(t, err, util.ErrWalletFrozen)
		assert.Nil(t, resWallet)
		assert.Nil(t, transaction)
		mockWalletRepo.AssertNotCalled(t, "CreditWallet", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockTxController.AssertNotCalled(t, "Commit")

		mock.AssertExpectationsForObjects(t, mockTxController, mockWalletRepo)
	})

	t.Run("InvalidAmount", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		resWallet, transaction, err := service.Deposit(ctx, walletID, decimal.NewFromFloat(-10.00), "", "")

		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Nil(t, resWallet)
		assert.Nil(t, transaction)
		mockTxController.AssertNotCalled(t, "Commit")
		mockTxController.AssertNotCalled(t, "Rollback")
	})
}

// TestProvisionWallets tests account wallet provisioning.
func TestProvisionWallets(t *testing.T) {
	userID := "user-1"

	t.Run("CreatesAllFourKinds", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		mockTxController.On("Commit").Return(nil).Once()
		mockTxController.On("Rollback").Return(nil).Maybe()
		mockWalletRepo.On("GetWalletsByUserID", ctx, mock.Anything, userID).Return([]domain.Wallet{}, nil).Once()
		mockWalletRepo.On("CreateWallet", ctx, mock.Anything, mock.AnythingOfType("*domain.Wallet")).Return(nil).Times(4)

		wallets, err := service.ProvisionWallets(ctx, userID)

		assert.NoError(t, err)
		assert.Len(t, wallets, 4)
		kinds := make([]domain.WalletKind, 0, len(wallets))
		for _, w := range wallets {
			kinds = append(kinds, w.Kind)
			assert.True(t, w.Balance.IsZero())
			assert.Equal(t, domain.WalletStatusActive, w.Status)
			assert.Equal(t, userID, w.UserID)
		}
		assert.Equal(t, domain.AllWalletKinds, kinds)

		mock.AssertExpectationsForObjects(t, mockTxController, mockWalletRepo)
	})

	t.Run("AlreadyProvisioned", func(t *testing.T) {
		ctx := context.Background()
		mockWalletRepo := new(MockWalletRepository)
		mockTransactionRepo := new(MockTransactionRepository)
		mockTxController := new(MockTxController)
		service := newWalletServiceForTest(mockWalletRepo, mockTransactionRepo, mockTxController, new(MockDBExecutor))

		existing := []domain.Wallet{*activeWallet("wallet-a", userID, domain.WalletKindFiat, decimal.Zero)}
		mockWalletRepo.On("GetWalletsByUserID", ctx, mock.Anything, userID).Return(existing, nil).Once()
		mockTxController.On("Rollback").Return(nil).Once()

		wallets, err := service.ProvisionWallets(ctx, userID)

		assert.ErrorIs(t, err, util.ErrDuplicateEntry)
		assert.Nil(t, wallets)
		mockWalletRepo.AssertNotCalled(t, "CreateWallet", mock.Anything, mock.Anything, mock.Anything)
		mockTxController.AssertNotCalled(t, "Commit")

		mock.AssertExpectationsForObjects(t, mockTxController, mockWalletRepo)
	})
}
