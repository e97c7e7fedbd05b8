// internal/api/handler/mocks_test.go
package handler_test

import (
	"context"

	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockWalletService is a mock implementation of service.WalletService.
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) ProvisionWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletService) GetWallet(ctx context.Context, walletID string) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) GetUserWallets(ctx context.Context, userID string) ([]domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}

func (m *MockWalletService) Transfer(ctx context.Context, fromWalletID, toWalletID string, amount decimal.Decimal, description string) (*domain.Transaction, error) {
	args := m.Called(ctx, fromWalletID, toWalletID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockWalletService) Deposit(ctx context.Context, walletID string, amount decimal.Decimal, description, reference string) (*domain.Wallet, *domain.Transaction, error) {
	args := m.Called(ctx, walletID, amount, description, reference)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Wallet), args.Get(1).(*domain.Transaction), args.Error(2)
}

func (m *MockWalletService) GetTransactionHistory(ctx context.Context, walletID string, limit, offset int) ([]domain.Transaction, int64, error) {
	args := m.Called(ctx, walletID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Get(1).(int64), args.Error(2)
}

// MockQueryService is a mock implementation of service.QueryService.
type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) ListUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockQueryService) Search(ctx context.Context, userID string, filters service.SearchFilters) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockQueryService) ExportCSV(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockQueryService) GetStats(ctx context.Context, userID string) (*service.DashboardStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DashboardStats), args.Error(1)
}

// MockTradingService is a mock implementation of service.TradingService.
type MockTradingService struct {
	mock.Mock
}

func (m *MockTradingService) GetCurrentPrices(ctx context.Context) ([]domain.AssetPrice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetPrice), args.Error(1)
}

func (m *MockTradingService) Buy(ctx context.Context, userID string, asset domain.Asset, amountUSD decimal.Decimal) (*domain.Trade, error) {
	args := m.Called(ctx, userID, asset, amountUSD)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradingService) Sell(ctx context.Context, userID string, asset domain.Asset, amountGrams decimal.Decimal) (*domain.Trade, error) {
	args := m.Called(ctx, userID, asset, amountGrams)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trade), args.Error(1)
}

func (m *MockTradingService) UpdatePrice(ctx context.Context, asset domain.Asset, newPrice decimal.Decimal) (*domain.AssetPrice, error) {
	args := m.Called(ctx, asset, newPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetPrice), args.Error(1)
}

func (m *MockTradingService) GetUserTrades(ctx context.Context, userID string) ([]domain.Trade, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trade), args.Error(1)
}
