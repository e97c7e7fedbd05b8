// internal/service/trading_service.go
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

// TradingService converts between a user's fiat wallet and a precious-metal
// wallet at the current registry price, in either direction.
type TradingService interface {
	GetCurrentPrices(ctx context.Context) ([]domain.AssetPrice, error)
	Buy(ctx context.Context, userID string, asset domain.Asset, amountUSD decimal.Decimal) (*domain.Trade, error)
	Sell(ctx context.Context, userID string, asset domain.Asset, amountGrams decimal.Decimal) (*domain.Trade, error)
	UpdatePrice(ctx context.Context, asset domain.Asset, newPrice decimal.Decimal) (*domain.AssetPrice, error)
	GetUserTrades(ctx context.Context, userID string) ([]domain.Trade, error)
}

// tradingService implements the TradingService interface.
type tradingService struct {
	dbBeginner      db.DBTxBeginner
	dbExecutor      repository.DBExecutor
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	tradeRepo       repository.TradeRepository
	priceRepo       repository.AssetPriceRepository
	beginTx         db.BeginTxFunc
	commitTx        db.CommitTxFunc
	rollbackTx      db.RollbackTxFunc
}

// NewTradingService creates a new instance of TradingService.
func NewTradingService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	walletRepo repository.WalletRepository,
	transactionRepo repository.TransactionRepository,
	tradeRepo repository.TradeRepository,
	priceRepo repository.AssetPriceRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) TradingService {
	return &tradingService{
		dbBeginner:      dbBeginner,
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		tradeRepo:       tradeRepo,
		priceRepo:       priceRepo,
		beginTx:         beginTx,
		commitTx:        commitTx,
		rollbackTx:      rollbackTx,
	}
}

// GetCurrentPrices returns the current registry price for every tradable asset.
func (s *tradingService) GetCurrentPrices(ctx context.Context) ([]domain.AssetPrice, error) {
	prices, err := s.priceRepo.ListPrices(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("get current prices: %w", err)
	}
	return prices, nil
}

// Buy converts fiat into metal: the user's fiat wallet is debited by
// amountUSD and the asset wallet is credited with amountUSD / price grams.
// Both balance changes, the general ledger entry and the trade record commit
// as one atomic unit.
func (s *tradingService) Buy(ctx context.Context, userID string, asset domain.Asset, amountUSD decimal.Decimal) (*domain.Trade, error) {
	if amountUSD.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}
	if !domain.ValidAsset(asset) {
		return nil, util.ErrInvalidAsset
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("buy: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("buy: transaction controller does not implement DBExecutor")
	}

	price, err := s.priceRepo.GetPrice(ctx, txExecutor, asset)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrInvalidAsset
		}
		return nil, fmt.Errorf("buy: failed to get price for %s: %w", asset, err)
	}

	gramsReceived := amountUSD.Div(price.PriceUSD)

	fiatWallet, assetWallet, err := s.lockTradeWallets(ctx, txExecutor, userID, asset)
	if err != nil {
		return nil, err
	}
	if fiatWallet.Balance.LessThan(amountUSD) {
		return nil, util.ErrInsufficientFunds
	}

	if err := s.walletRepo.DebitWallet(ctx, txExecutor, fiatWallet.ID, amountUSD); err != nil {
		return nil, fmt.Errorf("buy: failed to debit fiat wallet: %w", err)
	}
	if err := s.walletRepo.CreditWallet(ctx, txExecutor, assetWallet.ID, gramsReceived); err != nil {
		return nil, fmt.Errorf("buy: failed to credit %s wallet: %w", asset, err)
	}

	// The fiat leg also lands in the general ledger so trades show up in
	// unified transaction history and the trade search filter.
	description := fmt.Sprintf("Buy %s grams of %s", gramsReceived.String(), asset)
	ledgerEntry := domain.NewTransaction(fiatWallet.ID, assetWallet.ID, amountUSD, fiatWallet.Currency, domain.TransactionTypeBuy, &description, nil)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, ledgerEntry); err != nil {
		return nil, fmt.Errorf("buy: failed to create ledger entry: %w", err)
	}

	trade := domain.NewTrade(userID, domain.TradeTypeBuy, asset, gramsReceived, price.PriceUSD, amountUSD)
	if err := s.tradeRepo.CreateTrade(ctx, txExecutor, trade); err != nil {
		return nil, fmt.Errorf("buy: failed to create trade record: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("buy: failed to commit transaction: %w", err)
	}

	return trade, nil
}

// Sell converts metal back into fiat: the asset wallet is debited by
// amountGrams and the fiat wallet is credited with amountGrams * price USD.
func (s *tradingService) Sell(ctx context.Context, userID string, asset domain.Asset, amountGrams decimal.Decimal) (*domain.Trade, error) {
	if amountGrams.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}
	if !domain.ValidAsset(asset) {
		return nil, util.ErrInvalidAsset
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("sell: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("sell: transaction controller does not implement DBExecutor")
	}

	price, err := s.priceRepo.GetPrice(ctx, txExecutor, asset)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrInvalidAsset
		}
		return nil, fmt.Errorf("sell: failed to get price for %s: %w", asset, err)
	}

	usdReceived := amountGrams.Mul(price.PriceUSD)

	fiatWallet, assetWallet, err := s.lockTradeWallets(ctx, txExecutor, userID, asset)
	if err != nil {
		return nil, err
	}
	if assetWallet.Balance.LessThan(amountGrams) {
		return nil, util.ErrInsufficientFunds
	}

	if err := s.walletRepo.DebitWallet(ctx, txExecutor, assetWallet.ID, amountGrams); err != nil {
		return nil, fmt.Errorf("sell: failed to debit %s wallet: %w", asset, err)
	}
	if err := s.walletRepo.CreditWallet(ctx, txExecutor, fiatWallet.ID, usdReceived); err != nil {
		return nil, fmt.Errorf("sell: failed to credit fiat wallet: %w", err)
	}

	description := fmt.Sprintf("Sell %s grams of %s", amountGrams.String(), asset)
	ledgerEntry := domain.NewTransaction(assetWallet.ID, fiatWallet.ID, usdReceived, fiatWallet.Currency, domain.TransactionTypeSell, &description, nil)
	if err := s.transactionRepo.CreateTransaction(ctx, txExecutor, ledgerEntry); err != nil {
		return nil, fmt.Errorf("sell: failed to create ledger entry: %w", err)
	}

	trade := domain.NewTrade(userID, domain.TradeTypeSell, asset, amountGrams, price.PriceUSD, usdReceived)
	if err := s.tradeRepo.CreateTrade(ctx, txExecutor, trade); err != nil {
		return nil, fmt.Errorf("sell: failed to create trade record: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("sell: failed to commit transaction: %w", err)
	}

	return trade, nil
}

// UpdatePrice overwrites the registry price for an asset. Administrative
// path; last writer wins.
func (s *tradingService) UpdatePrice(ctx context.Context, asset domain.Asset, newPrice decimal.Decimal) (*domain.AssetPrice, error) {
	if !domain.ValidAsset(asset) {
		return nil, util.ErrInvalidAsset
	}
	if newPrice.LessThanOrEqual(decimal.Zero) {
		return nil, util.ErrInvalidInput
	}

	price, err := s.priceRepo.UpdatePrice(ctx, s.dbExecutor, asset, newPrice)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrInvalidAsset
		}
		return nil, fmt.Errorf("update price: %w", err)
	}
	return price, nil
}

// GetUserTrades retrieves a user's trade history, newest first.
func (s *tradingService) GetUserTrades(ctx context.Context, userID string) ([]domain.Trade, error) {
	trades, err := s.tradeRepo.GetTradesByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get user trades: %w", err)
	}
	return trades, nil
}

// lockTradeWallets locates the user's fiat and asset wallets, row-locks both
// and checks that both are active.
func (s *tradingService) lockTradeWallets(ctx context.Context, q repository.DBExecutor, userID string, asset domain.Asset) (fiat, metal *domain.Wallet, err error) {
	fiatWallet, err := s.walletRepo.GetWalletByUserIDAndKind(ctx, q, userID, domain.WalletKindFiat)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil, util.ErrWalletNotFound
		}
		return nil, nil, fmt.Errorf("failed to get fiat wallet for user %s: %w", userID, err)
	}
	assetWallet, err := s.walletRepo.GetWalletByUserIDAndKind(ctx, q, userID, asset.WalletKind())
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, nil, util.ErrWalletNotFound
		}
		return nil, nil, fmt.Errorf("failed to get %s wallet for user %s: %w", asset, userID, err)
	}

	locked, err := lockWallets(ctx, q, s.walletRepo, fiatWallet.ID, assetWallet.ID)
	if err != nil {
		return nil, nil, err
	}
	fiatWallet = locked[fiatWallet.ID]
	assetWallet = locked[assetWallet.ID]

	if !fiatWallet.IsActive() || !assetWallet.IsActive() {
		return nil, nil, util.ErrWalletFrozen
	}
	return fiatWallet, assetWallet, nil
}
