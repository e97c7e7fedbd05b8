// internal/service/query_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/repository"
	"goldenia-ledger/internal/util"

	"github.com/shopspring/decimal"
)

// TransactionFilter selects which slice of a user's ledger to return.
type TransactionFilter string

const (
	FilterAll      TransactionFilter = "all"
	FilterSent     TransactionFilter = "sent"
	FilterReceived TransactionFilter = "received"
	FilterTrade    TransactionFilter = "trade"
)

// SearchFilters narrows a user's transaction listing. Zero values mean
// "no filtering" for that dimension; date bounds are inclusive.
type SearchFilters struct {
	Type      TransactionFilter
	Text      string
	StartDate *time.Time
	EndDate   *time.Time
}

// DashboardStats summarizes a user's wallets and recent activity.
type DashboardStats struct {
	TotalUSDBalance    decimal.Decimal      `json:"total_usd_balance"`
	TotalTransactions  int                  `json:"total_transactions"`
	TotalWallets       int                  `json:"total_wallets"`
	RecentTransactions []domain.Transaction `json:"recent_transactions"`
}

// QueryService is the read-only reporting surface over the ledger. It never
// mutates state, so it runs outside any unit of work.
type QueryService interface {
	ListUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error)
	Search(ctx context.Context, userID string, filters SearchFilters) ([]domain.Transaction, error)
	ExportCSV(ctx context.Context, userID string) (string, error)
	GetStats(ctx context.Context, userID string) (*DashboardStats, error)
}

type queryService struct {
	dbExecutor      repository.DBExecutor
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
}

// NewQueryService creates a new instance of QueryService.
func NewQueryService(dbExecutor repository.DBExecutor, walletRepo repository.WalletRepository, transactionRepo repository.TransactionRepository) QueryService {
	return &queryService{
		dbExecutor:      dbExecutor,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
	}
}

// ListUserTransactions returns every ledger entry touching any of the user's
// wallets, newest first.
func (s *queryService) ListUserTransactions(ctx context.Context, userID string) ([]domain.Transaction, error) {
	transactions, err := s.transactionRepo.GetTransactionsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list user transactions: %w", err)
	}
	return transactions, nil
}

// Search filters a user's unified transaction listing.
//
// Filter semantics: "sent" keeps entries whose source wallet belongs to the
// user; "received" keeps entries whose destination wallet belongs to the user
// AND whose source does not, so a transfer between the user's own wallets is
// never double-labeled; "trade" keeps buy/sell entries. The text filter
// matches case-insensitively against description or stringified amount.
func (s *queryService) Search(ctx context.Context, userID string, filters SearchFilters) ([]domain.Transaction, error) {
	transactions, err := s.ListUserTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	wallets, err := s.walletRepo.GetWalletsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("search transactions: failed to get wallets: %w", err)
	}
	owned := make(map[string]bool, len(wallets))
	for _, w := range wallets {
		owned[w.ID] = true
	}

	filtered := make([]domain.Transaction, 0, len(transactions))
	searchText := strings.ToLower(filters.Text)
	for _, t := range transactions {
		switch filters.Type {
		case FilterSent:
			if !owned[t.FromWalletID] {
				continue
			}
		case FilterReceived:
			if !owned[t.ToWalletID] || owned[t.FromWalletID] {
				continue
			}
		case FilterTrade:
			if !t.IsTrade() {
				continue
			}
		}

		if searchText != "" {
			descMatch := t.Description != nil && strings.Contains(strings.ToLower(*t.Description), searchText)
			amountMatch := strings.Contains(t.Amount.String(), searchText)
			if !descMatch && !amountMatch {
				continue
			}
		}

		if filters.StartDate != nil && t.CreatedAt.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && t.CreatedAt.After(*filters.EndDate) {
			continue
		}

		filtered = append(filtered, t)
	}

	return filtered, nil
}

// csvHeader is the fixed export column set.
const csvHeader = `"Date","Type","From Wallet","To Wallet","Amount","Currency","Status","Description"`

// ExportCSV renders a user's full transaction history as CSV, newest first.
// Every value is quoted, matching the export contract consumed by the
// frontend download.
func (s *queryService) ExportCSV(ctx context.Context, userID string) (string, error) {
	transactions, err := s.ListUserTransactions(ctx, userID)
	if err != nil {
		return "", err
	}

	wallets, err := s.walletRepo.GetWalletsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return "", fmt.Errorf("export csv: failed to get wallets: %w", err)
	}
	walletsByID := make(map[string]*domain.Wallet, len(wallets))
	for i := range wallets {
		walletsByID[wallets[i].ID] = &wallets[i]
	}

	var sb strings.Builder
	sb.WriteString(csvHeader)
	sb.WriteByte('\n')

	for _, t := range transactions {
		fromWallet, err := s.resolveWallet(ctx, walletsByID, t.FromWalletID)
		if err != nil {
			return "", err
		}
		toWallet, err := s.resolveWallet(ctx, walletsByID, t.ToWalletID)
		if err != nil {
			return "", err
		}

		description := ""
		if t.Description != nil {
			description = *t.Description
		}

		row := []string{
			t.CreatedAt.Format("2006-01-02 15:04:05"),
			string(t.Type),
			string(fromWallet.Kind),
			string(toWallet.Kind),
			t.Amount.String(),
			fromWallet.Currency,
			string(t.Status),
			description,
		}
		for i, value := range row {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(value, `"`, `""`))
			sb.WriteByte('"')
		}
		sb.WriteByte('\n')
	}

	return sb.String(), nil
}

// GetStats summarizes a user's wallets and recent activity for the dashboard.
func (s *queryService) GetStats(ctx context.Context, userID string) (*DashboardStats, error) {
	wallets, err := s.walletRepo.GetWalletsByUserID(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("get stats: failed to get wallets: %w", err)
	}

	totalUSD := decimal.Zero
	for _, w := range wallets {
		if w.Kind == domain.WalletKindFiat {
			totalUSD = totalUSD.Add(w.Balance)
		}
	}

	transactions, err := s.ListUserTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent := transactions
	if len(recent) > 5 {
		recent = recent[:5]
	}

	return &DashboardStats{
		TotalUSDBalance:    totalUSD,
		TotalTransactions:  len(transactions),
		TotalWallets:       len(wallets),
		RecentTransactions: recent,
	}, nil
}

// resolveWallet looks a wallet up in the owner's set first, falling back to a
// fetch for counterpart wallets owned by other users.
func (s *queryService) resolveWallet(ctx context.Context, cache map[string]*domain.Wallet, walletID string) (*domain.Wallet, error) {
	if wallet, ok := cache[walletID]; ok {
		return wallet, nil
	}
	wallet, err := s.walletRepo.GetWalletByID(ctx, s.dbExecutor, walletID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to resolve wallet %s: %w", walletID, err)
	}
	cache[walletID] = wallet
	return wallet, nil
}
