// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrWalletNotFound     = errors.New("wallet not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrWalletFrozen       = errors.New("wallet is not active")
	ErrInvalidAsset       = errors.New("invalid asset")
	ErrSameWalletTransfer = errors.New("cannot transfer to the same wallet")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrForbidden          = errors.New("access denied")
)

// IsError reports whether target appears in err's chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
