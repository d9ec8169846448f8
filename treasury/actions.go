package treasury

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"
	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/common/math"
	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/params"
	"github.com/mort-network/gmort/transfer"
)

// Bootstrap writes the initial treasury record from cfg. The authority is
// always part of the signer roster.
func Bootstrap(db mortdb.KeyValueStore, cfg *params.ProtocolConfig) error {
	if _, err := ReadState(db); err == nil {
		return ErrTreasuryExists
	}
	roster := cfg.Signers
	onRoster := false
	for _, signer := range roster {
		if signer == cfg.Authority {
			onRoster = true
			break
		}
	}
	if !onRoster {
		roster = append([]common.Address{cfg.Authority}, roster...)
	}
	state := &State{
		Authority:          cfg.Authority,
		WithdrawalLimit:    cfg.WithdrawalLimit,
		RequiredSignatures: cfg.RequiredSignatures,
		CooldownPeriod:     cfg.TreasuryCooldown,
		Signers:            roster,
	}
	return WriteState(db, state)
}

// Deposit moves amount from `from` into treasury custody.
func Deposit(db mortdb.KeyValueStore, mover transfer.Mover, from common.Address, amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	state, err := ReadState(db)
	if err != nil {
		return err
	}
	newBalance, err := math.CheckedAdd(state.TotalBalance, amount)
	if err != nil {
		return err
	}
	if err := mover.Move(from, params.TreasuryAddress, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
	}
	state.TotalBalance = newBalance
	return WriteState(db, state)
}

// Withdraw pays amount to destination, authorized by a threshold of
// distinct roster signers.
func Withdraw(db mortdb.KeyValueStore, mover transfer.Mover, amount uint64, destination common.Address, signers []common.Address, now int64) error {
	state, err := ReadState(db)
	if err != nil {
		return err
	}
	roster := mapset.NewSet()
	for _, signer := range state.Signers {
		roster.Add(signer)
	}
	distinct := mapset.NewSet()
	for _, signer := range signers {
		if !roster.Contains(signer) {
			return fmt.Errorf("%w: %s", ErrInvalidAuthority, signer)
		}
		distinct.Add(signer)
	}
	if distinct.Cardinality() < int(state.RequiredSignatures) {
		return ErrInsufficientSignatures
	}
	if amount == 0 || amount > state.WithdrawalLimit {
		return ErrWithdrawalLimitExceeded
	}
	if state.LastWithdrawal > 0 && now-state.LastWithdrawal < state.CooldownPeriod {
		return ErrCooldownActive
	}
	if amount > state.TotalBalance {
		return ErrInsufficientBalance
	}
	distributed, err := math.CheckedAdd(state.TotalDistributed, amount)
	if err != nil {
		return err
	}
	if err := mover.Move(params.TreasuryAddress, destination, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
	}
	state.TotalBalance -= amount
	state.TotalDistributed = distributed
	state.LastWithdrawal = now
	return WriteState(db, state)
}

// SetWithdrawalLimit changes the per-withdrawal cap. Used by governance
// execution.
func SetWithdrawalLimit(db mortdb.KeyValueStore, limit uint64) error {
	state, err := ReadState(db)
	if err != nil {
		return err
	}
	state.WithdrawalLimit = limit
	return WriteState(db, state)
}
