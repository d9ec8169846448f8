package staking

import (
	"github.com/holiman/uint256"
	"github.com/mort-network/gmort/common/math"
	"github.com/mort-network/gmort/params"
)

// Accrue returns the reward earned on staked principal at rateBPS basis
// points per year over elapsed seconds. The computation widens to 256 bits,
// truncates on division, then adds a 10% tenure bonus for positions held
// strictly longer than the bonus threshold.
func Accrue(staked, rateBPS uint64, elapsed int64) (uint64, error) {
	if elapsed <= 0 || staked == 0 || rateBPS == 0 {
		return 0, nil
	}
	num := uint256.NewInt(staked)
	num.Mul(num, uint256.NewInt(rateBPS))
	num.Mul(num, uint256.NewInt(uint64(elapsed)))

	den := uint256.NewInt(params.SecondsPerYear)
	den.Mul(den, uint256.NewInt(params.PercentDenominator))

	reward := num.Div(num, den)
	if elapsed > params.TenureBonusThreshold {
		bonus := new(uint256.Int).Mul(reward, uint256.NewInt(params.TenureBonusBPS))
		bonus.Div(bonus, uint256.NewInt(params.BPSDenominator))
		reward.Add(reward, bonus)
	}
	if !reward.IsUint64() {
		return 0, math.ErrOverflow
	}
	return reward.Uint64(), nil
}

// TierForStake maps a staked amount onto its tier.
func TierForStake(staked uint64) Tier {
	switch {
	case staked >= params.Tier5Stake:
		return Tier5
	case staked >= params.Tier4Stake:
		return Tier4
	case staked >= params.Tier3Stake:
		return Tier3
	case staked >= params.Tier2Stake:
		return Tier2
	case staked >= params.Tier1Stake:
		return Tier1
	default:
		return TierNone
	}
}

// Settle folds rewards accrued since the last accrual timestamp into the
// user's running tally and advances the accrual clock. Settlement happens
// before any mutation of the staked principal so that the old balance earns
// at the old rate for the elapsed window.
func Settle(user *UserStake, rateBPS uint64, now int64) error {
	if user.StakedAmount == 0 {
		user.LastAccrual = now
		return nil
	}
	reward, err := Accrue(user.StakedAmount, rateBPS, now-user.LastAccrual)
	if err != nil {
		return err
	}
	tally, err := math.CheckedAdd(user.RewardTally, reward)
	if err != nil {
		return err
	}
	user.RewardTally = tally
	user.LastAccrual = now
	return nil
}
