// internal/service/locking.go
package service

import (
	"context"
	"fmt"
	"sort"

	"goldenia-ledger/internal/domain"
	"goldenia-ledger/internal/repository"
	"goldenia-ledger/internal/util"
)

// lockWallets row-locks the given wallets inside the current unit of work and
// returns them keyed by id. Wallets are locked in sorted id order so two
// concurrent operations touching the same pair cannot deadlock.
func lockWallets(ctx context.Context, q repository.DBExecutor, walletRepo repository.WalletRepository, ids ...string) (map[string]*domain.Wallet, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	wallets := make(map[string]*domain.Wallet, len(sorted))
	for _, id := range sorted {
		if _, ok := wallets[id]; ok {
			continue
		}
		wallet, err := walletRepo.GetWalletByIDForUpdate(ctx, q, id)
		if err != nil {
			if util.IsError(err, util.ErrNotFound) {
				return nil, util.ErrWalletNotFound
			}
			return nil, fmt.Errorf("failed to lock wallet %s: %w", id, err)
		}
		wallets[id] = wallet
	}
	return wallets, nil
}
