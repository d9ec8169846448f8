package staking

import (
	"errors"

	"github.com/mort-network/gmort/common"
)

// Tier is the incentive bracket of a principal, derived from stake size.
type Tier uint8

const (
	TierNone Tier = 0
	Tier1    Tier = 1
	Tier2    Tier = 2
	Tier3    Tier = 3
	Tier4    Tier = 4
	Tier5    Tier = 5
)

// Pool is the protocol-wide staking record. A single Pool exists per
// deployment, created at bootstrap.
type Pool struct {
	Authority               common.Address `json:"authority"`
	YieldRateBPS            uint64         `json:"yieldRateBps"`
	MinStake                uint64         `json:"minStake"`
	MaxStake                uint64         `json:"maxStake"`
	EmergencyCooldown       int64          `json:"emergencyCooldown"`
	Paused                  bool           `json:"paused"`
	TotalStaked             uint64         `json:"totalStaked"`
	TotalRewardsDistributed uint64         `json:"totalRewardsDistributed"`
	LastRateUpdate          int64          `json:"lastRateUpdate"`
	NextRateUpdate          int64          `json:"nextRateUpdate"`
}

// UserStake is the per-principal staking record, created on first stake.
type UserStake struct {
	Owner                 common.Address `json:"owner"`
	StakedAmount          uint64         `json:"stakedAmount"`
	LastAccrual           int64          `json:"lastAccrual"`
	RewardTally           uint64         `json:"rewardTally"`
	CumulativeRewards     uint64         `json:"cumulativeRewards"`
	Tier                  Tier           `json:"tier"`
	DelegatedStake        uint64         `json:"delegatedStake"`
	AutoCompound          bool           `json:"autoCompound"`
	WithdrawalPending     bool           `json:"withdrawalPending"`
	WithdrawalAmount      uint64         `json:"withdrawalAmount"`
	LastEmergencyWithdraw int64          `json:"lastEmergencyWithdraw"`
}

var (
	ErrPoolNotFound         = errors.New("staking: pool not initialized")
	ErrPoolExists           = errors.New("staking: pool already initialized")
	ErrProtocolPaused       = errors.New("staking: protocol is paused")
	ErrInvalidStakeAmount   = errors.New("staking: invalid stake amount")
	ErrInvalidUnstakeAmount = errors.New("staking: invalid unstake amount")
	ErrInsufficientStake    = errors.New("staking: insufficient stake")
	ErrInsufficientBalance  = errors.New("staking: insufficient balance")
	ErrNoRewardsAvailable   = errors.New("staking: no rewards available")
	ErrInvalidAuthority     = errors.New("staking: invalid authority")
	ErrInvalidYieldRate     = errors.New("staking: yield rate out of bounds")
	ErrRateUpdateTooEarly   = errors.New("staking: rate adjustment interval not elapsed")
	ErrCooldownActive       = errors.New("staking: emergency cooldown active")
	ErrSelfDelegation       = errors.New("staking: cannot delegate to self")
)
