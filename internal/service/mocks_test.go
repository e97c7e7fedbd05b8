// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/repository"
	"goldenia-ledger/pkg/db"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockWalletRepository is a mock implementation of repository.WalletRepository.
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) CreateWallet(ctx context.Context, q repository.DBExecutor, wallet *domain.Wallet) error {
	args := m.Called(ctx, q, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetWalletByID(ctx context.Context, q repository.DBExecutor, id string) (*domain.Wallet, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByIDForUpdate(ctx context.Context, q repository.DBExecutor, id string) (*domain.Wallet, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletByUserIDAndKind(ctx context.Context, q repository.DBExecutor, userID string, kind domain.WalletKind) (*domain.Wallet, error) {
	args := m.Called(ctx, q, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetWalletsByUserID(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) CreditWallet(ctx context.Context, q repository.DBExecutor, walletID string, amount decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, amount)
	return args.Error(0)
}

func (m *MockWalletRepository) DebitWallet(ctx context.Context, q repository.DBExecutor, walletID string, amount decimal.Decimal) error {
	args := m.Called(ctx, q, walletID, amount)
	return args.Error(0)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransaction(ctx context.Context, q repository.DBExecutor, transaction *domain.Transaction) error {
	args := m.Called(ctx, q, transaction)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetTransactionsByWalletID(ctx context.Context, q repository.DBExecutor, walletID string, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, q, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) GetTransactionsByUserID(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetTransactionByReference(ctx context.Context, q repository.DBExecutor, reference string) (*domain.Transaction, error) {
	args := m.Called(ctx, q, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// MockTradeRepository is a mock implementation of repository.TradeRepository.
type MockTradeRepository struct {
	mock.Mock
}

func (m *MockTradeRepository) CreateTrade(ctx context.Context, q repository.DBExecutor, trade *domain.Trade) error {
	args := m.Called(ctx, q, trade)
	return args.Error(0)
}

func (m *MockTradeRepository) GetTradesByUserID(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Trade, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}

// MockAssetPriceRepository is a mock implementation of repository.AssetPriceRepository.
type MockAssetPriceRepository struct {
	mock.Mock
}

func (m *MockAssetPriceRepository) GetPrice(ctx context.Context, q repository.DBExecutor, asset domain.Asset) (*domain.AssetPrice, error) {
	args := m.Called(ctx, q, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetPrice), args.Error(1)
}

func (m *MockAssetPriceRepository) ListPrices(ctx context.Context, q repository.DBExecutor) ([]domain.AssetPrice, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetPrice), args.Error(1)
}

func (m *MockAssetPriceRepository) UpdatePrice(ctx context.Context, q repository.DBExecutor, asset domain.Asset, price decimal.Decimal) (*domain.AssetPrice, error) {
	args := m.Called(ctx, q, asset, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetPrice), args.Error(1)
}

// MockTxController is a mock implementation of db.TxController.
// It embeds MockDBExecutor so it also satisfies repository.DBExecutor, the
// same dual role *sqlx.Tx plays in production.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// testTxFuncs routes the injected unit-of-work functions to the given mock
// controller.
func testTxFuncs(txController *MockTxController) (db.BeginTxFunc, db.CommitTxFunc, db.RollbackTxFunc) {
	beginTx := func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
		return txController, nil
	}
	commitTx := func(tx db.TxController) error {
		return txController.Commit()
	}
	rollbackTx := func(tx db.TxController) {
		_ = txController.Rollback()
	}
	return beginTx, commitTx, rollbackTx
}
