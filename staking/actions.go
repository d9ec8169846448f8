package staking

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/common/math"
	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/params"
	"github.com/mort-network/gmort/transfer"
)

// Stake deposits amount of principal for from. Pending rewards are settled
// at the old balance before the deposit takes effect.
func Stake(db mortdb.KeyValueStore, mover transfer.Mover, from common.Address, amount uint64, now int64) error {
	pool, err := ReadPool(db)
	if err != nil {
		return err
	}
	if pool.Paused {
		return ErrProtocolPaused
	}
	if amount == 0 || amount < pool.MinStake || (pool.MaxStake > 0 && amount > pool.MaxStake) {
		return ErrInvalidStakeAmount
	}
	user, err := ReadUserStake(db, from)
	if err != nil {
		return err
	}
	if err := Settle(user, pool.YieldRateBPS, now); err != nil {
		return err
	}
	newStaked, err := math.CheckedAdd(user.StakedAmount, amount)
	if err != nil {
		return err
	}
	newTotal, err := math.CheckedAdd(pool.TotalStaked, amount)
	if err != nil {
		return err
	}
	if err := mover.Move(from, params.StakingAddress, amount); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
	}
	user.StakedAmount = newStaked
	user.Tier = TierForStake(newStaked)
	pool.TotalStaked = newTotal
	if err := WriteUserStake(db, user); err != nil {
		return err
	}
	return WritePool(db, pool)
}

// Unstake withdraws amount of principal for from. The pending reward is
// settled first; with auto-compound enabled it folds back into the remaining
// stake, otherwise it is paid out alongside the principal.
func Unstake(db mortdb.KeyValueStore, mover transfer.Mover, from common.Address, amount uint64, now int64) error {
	pool, err := ReadPool(db)
	if err != nil {
		return err
	}
	if pool.Paused {
		return ErrProtocolPaused
	}
	user, err := ReadUserStake(db, from)
	if err != nil {
		return err
	}
	if amount == 0 || amount > user.StakedAmount {
		return ErrInvalidUnstakeAmount
	}
	if err := Settle(user, pool.YieldRateBPS, now); err != nil {
		return err
	}
	reward := user.RewardTally

	newStaked := user.StakedAmount - amount
	newTotal, err := math.CheckedSub(pool.TotalStaked, amount)
	if err != nil {
		return err
	}
	payout := amount
	if user.AutoCompound {
		if newStaked, err = math.CheckedAdd(newStaked, reward); err != nil {
			return err
		}
		if newTotal, err = math.CheckedAdd(newTotal, reward); err != nil {
			return err
		}
	} else {
		if payout, err = math.CheckedAdd(amount, reward); err != nil {
			return err
		}
	}
	cumulative, err := math.CheckedAdd(user.CumulativeRewards, reward)
	if err != nil {
		return err
	}
	distributed, err := math.CheckedAdd(pool.TotalRewardsDistributed, reward)
	if err != nil {
		return err
	}
	if err := mover.Move(params.StakingAddress, from, payout); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
	}
	user.StakedAmount = newStaked
	user.RewardTally = 0
	user.CumulativeRewards = cumulative
	user.Tier = TierForStake(newStaked)
	pool.TotalStaked = newTotal
	pool.TotalRewardsDistributed = distributed
	if err := WriteUserStake(db, user); err != nil {
		return err
	}
	return WritePool(db, pool)
}

// Compound folds the pending reward of from into its staked principal.
func Compound(db mortdb.KeyValueStore, from common.Address, now int64) error {
	pool, err := ReadPool(db)
	if err != nil {
		return err
	}
	user, err := ReadUserStake(db, from)
	if err != nil {
		return err
	}
	if err := Settle(user, pool.YieldRateBPS, now); err != nil {
		return err
	}
	reward := user.RewardTally
	if reward == 0 {
		return ErrNoRewardsAvailable
	}
	newStaked, err := math.CheckedAdd(user.StakedAmount, reward)
	if err != nil {
		return err
	}
	newTotal, err := math.CheckedAdd(pool.TotalStaked, reward)
	if err != nil {
		return err
	}
	cumulative, err := math.CheckedAdd(user.CumulativeRewards, reward)
	if err != nil {
		return err
	}
	distributed, err := math.CheckedAdd(pool.TotalRewardsDistributed, reward)
	if err != nil {
		return err
	}
	user.StakedAmount = newStaked
	user.RewardTally = 0
	user.CumulativeRewards = cumulative
	user.Tier = TierForStake(newStaked)
	pool.TotalStaked = newTotal
	pool.TotalRewardsDistributed = distributed
	if err := WriteUserStake(db, user); err != nil {
		return err
	}
	return WritePool(db, pool)
}

// ClaimRewards pays out the pending reward of from without touching its
// staked principal.
func ClaimRewards(db mortdb.KeyValueStore, mover transfer.Mover, from common.Address, now int64) error {
	pool, err := ReadPool(db)
	if err != nil {
		return err
	}
	user, err := ReadUserStake(db, from)
	if err != nil {
		return err
	}
	if err := Settle(user, pool.YieldRateBPS, now); err != nil {
		return err
	}
	reward := user.RewardTally
	if reward == 0 {
		return ErrNoRewardsAvailable
	}
	cumulative, err := math.CheckedAdd(user.CumulativeRewards, reward)
	if err != nil {
		return err
	}
	distributed, err := math.CheckedAdd(pool.TotalRewardsDistributed, reward)
	if err != nil {
		return err
	}
	if err := mover.Move(params.StakingAddress, from, reward); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
	}
	user.RewardTally = 0
	user.CumulativeRewards = cumulative
	pool.TotalRewardsDistributed = distributed
	if err := WriteUserStake(db, user); err != nil {
		return err
	}
	return WritePool(db, pool)
}

// Delegate moves amount of staked principal from delegator to delegatee.
// The pool total is unchanged: delegation only changes who the principal
// accrues for.
func Delegate(db mortdb.KeyValueStore, delegator, delegatee common.Address, amount uint64, now int64) error {
	if delegator == delegatee {
		return ErrSelfDelegation
	}
	pool, err := ReadPool(db)
	if err != nil {
		return err
	}
	src, err := ReadUserStake(db, delegator)
	if err != nil {
		return err
	}
	if amount == 0 || amount > src.StakedAmount {
		return ErrInsufficientStake
	}
	dst, err := ReadUserStake(db, delegatee)
	if err != nil {
		return err
	}
	// Both sides settle before principal moves, so the elapsed window earns
	// against the pre-delegation balances.
	if err := Settle(src, pool.YieldRateBPS, now); err != nil {
		return err
	}
	if err := Settle(dst, pool.YieldRateBPS, now); err != nil {
		return err
	}
	delegated, err := math.CheckedAdd(src.DelegatedStake, amount)
	if err != nil {
		return err
	}
	received, err := math.CheckedAdd(dst.StakedAmount, amount)
	if err != nil {
		return err
	}
	src.StakedAmount -= amount
	src.DelegatedStake = delegated
	src.Tier = TierForStake(src.StakedAmount)
	dst.StakedAmount = received
	dst.Tier = TierForStake(received)
	if err := WriteUserStake(db, src); err != nil {
		return err
	}
	return WriteUserStake(db, dst)
}

// UpdateYieldRate changes the pool yield rate. Only the pool authority may
// call it, the rate is bounded, and updates are spaced at least
// params.RateAdjustmentInterval apart.
func UpdateYieldRate(db mortdb.KeyValueStore, caller common.Address, newRateBPS uint64, now int64) error {
	pool, err := ReadPool(db)
	if err != nil {
		return err
	}
	if caller != pool.Authority {
		return ErrInvalidAuthority
	}
	if newRateBPS > params.MaxYieldRateBPS {
		return ErrInvalidYieldRate
	}
	if now < pool.NextRateUpdate {
		return ErrRateUpdateTooEarly
	}
	pool.YieldRateBPS = newRateBPS
	pool.LastRateUpdate = now
	pool.NextRateUpdate = now + params.RateAdjustmentInterval
	return WritePool(db, pool)
}

// SetYieldRate changes the pool yield rate without the interval gate. Used
// by governance execution, where the vote itself is the gate.
func SetYieldRate(db mortdb.KeyValueStore, newRateBPS uint64, now int64) error {
	pool, err := ReadPool(db)
	if err != nil {
		return err
	}
	if newRateBPS > params.MaxYieldRateBPS {
		return ErrInvalidYieldRate
	}
	pool.YieldRateBPS = newRateBPS
	pool.LastRateUpdate = now
	return WritePool(db, pool)
}

// EmergencyWithdraw pulls amount of principal out immediately, available
// even while the protocol is paused. A flat penalty is withheld from the
// payout and each principal is limited to one emergency withdrawal per
// cooldown window.
func EmergencyWithdraw(db mortdb.KeyValueStore, mover transfer.Mover, from common.Address, amount uint64, now int64) error {
	pool, err := ReadPool(db)
	if err != nil {
		return err
	}
	user, err := ReadUserStake(db, from)
	if err != nil {
		return err
	}
	if user.LastEmergencyWithdraw > 0 && now-user.LastEmergencyWithdraw < pool.EmergencyCooldown {
		return ErrCooldownActive
	}
	if amount == 0 || amount > user.StakedAmount {
		return ErrInsufficientBalance
	}
	if err := Settle(user, pool.YieldRateBPS, now); err != nil {
		return err
	}
	newTotal, err := math.CheckedSub(pool.TotalStaked, amount)
	if err != nil {
		return err
	}
	// The penalty share stays in custody; only the remainder pays out.
	penalty := new(uint256.Int).Mul(uint256.NewInt(amount), uint256.NewInt(params.EmergencyPenaltyBPS))
	penalty.Div(penalty, uint256.NewInt(params.BPSDenominator))
	payout := amount - penalty.Uint64()

	if err := mover.Move(params.StakingAddress, from, payout); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientBalance, err)
	}
	user.StakedAmount -= amount
	user.Tier = TierForStake(user.StakedAmount)
	user.LastEmergencyWithdraw = now
	pool.TotalStaked = newTotal
	if err := WriteUserStake(db, user); err != nil {
		return err
	}
	return WritePool(db, pool)
}

// SetAutoCompound toggles reward auto-compounding for from. The pending
// reward settles first so the flag flip only affects rewards accrued after
// this call.
func SetAutoCompound(db mortdb.KeyValueStore, from common.Address, enabled bool, now int64) error {
	pool, err := ReadPool(db)
	if err != nil {
		return err
	}
	user, err := ReadUserStake(db, from)
	if err != nil {
		return err
	}
	if err := Settle(user, pool.YieldRateBPS, now); err != nil {
		return err
	}
	user.AutoCompound = enabled
	return WriteUserStake(db, user)
}

// SetPaused toggles the protocol pause flag. Authority only.
func SetPaused(db mortdb.KeyValueStore, caller common.Address, paused bool) error {
	pool, err := ReadPool(db)
	if err != nil {
		return err
	}
	if caller != pool.Authority {
		return ErrInvalidAuthority
	}
	pool.Paused = paused
	return WritePool(db, pool)
}
