// Package treasury implements the multisig-gated treasury. Withdrawals need
// a threshold of distinct roster signatures, respect a per-withdrawal limit
// and a cooldown between payouts.
package treasury

import (
	"errors"

	"github.com/mort-network/gmort/common"
)

// State is the treasury record, created at bootstrap.
type State struct {
	Authority          common.Address   `json:"authority"`
	WithdrawalLimit    uint64           `json:"withdrawalLimit"`
	RequiredSignatures uint8            `json:"requiredSignatures"`
	TotalBalance       uint64           `json:"totalBalance"`
	CooldownPeriod     int64            `json:"cooldownPeriod"`
	LastWithdrawal     int64            `json:"lastWithdrawal"`
	TotalDistributed   uint64           `json:"totalDistributed"`
	Signers            []common.Address `json:"signers"`
}

var (
	ErrTreasuryNotFound        = errors.New("treasury: not initialized")
	ErrTreasuryExists          = errors.New("treasury: already initialized")
	ErrInsufficientSignatures  = errors.New("treasury: insufficient signatures")
	ErrInvalidAuthority        = errors.New("treasury: signer not on roster")
	ErrWithdrawalLimitExceeded = errors.New("treasury: withdrawal limit exceeded")
	ErrCooldownActive          = errors.New("treasury: withdrawal cooldown active")
	ErrInsufficientBalance     = errors.New("treasury: insufficient balance")
	ErrInvalidAmount           = errors.New("treasury: invalid amount")
)
