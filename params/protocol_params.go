package params

const (
	// BPSDenominator converts basis points to a fraction (10_000 bps = 100%).
	BPSDenominator uint64 = 10_000

	// PercentDenominator converts whole percents to a fraction.
	PercentDenominator uint64 = 100

	// SecondsPerYear is the accrual horizon for the yield formula (365 days).
	SecondsPerYear uint64 = 365 * 24 * 60 * 60

	// MinYieldRateBPS and MaxYieldRateBPS bound the pool yield rate.
	MinYieldRateBPS uint64 = 0
	MaxYieldRateBPS uint64 = 1_000 // 10% APY

	// RateAdjustmentInterval is the minimum spacing between two yield rate
	// updates, in seconds.
	RateAdjustmentInterval int64 = 24 * 60 * 60

	// TenureBonusThreshold is the accrual span beyond which the tenure bonus
	// applies, in seconds. The bonus applies strictly beyond the threshold.
	TenureBonusThreshold int64 = 30 * 24 * 60 * 60

	// TenureBonusBPS is the additive long-tenure bonus on the base reward.
	TenureBonusBPS uint64 = 1_000 // +10%

	// EmergencyPenaltyBPS is withheld from emergency withdrawal payouts.
	EmergencyPenaltyBPS uint64 = 2_000 // 20%

	// EmergencyCooldown is the minimum spacing between two emergency
	// withdrawals by the same principal, in seconds.
	EmergencyCooldown int64 = 7 * 24 * 60 * 60

	// MaxWithdrawalBatch caps how many queued withdrawal requests a single
	// WITHDRAW_PROCESS action may pay out.
	MaxWithdrawalBatch uint64 = 10

	// DefaultRequiredSignatures is the treasury multisig threshold applied at
	// bootstrap when the config does not override it.
	DefaultRequiredSignatures uint8 = 3

	// DefaultVotingPeriod is the governance voting window applied at
	// bootstrap when the config does not override it, in seconds.
	DefaultVotingPeriod int64 = 7 * 24 * 60 * 60

	// DefaultQuorum is the minimum combined vote weight for a proposal to be
	// eligible to pass, applied at bootstrap unless overridden.
	DefaultQuorum uint64 = 100
)

// Incentive tier thresholds, in staked base units. A principal's tier is the
// highest threshold its stake reaches; tier 0 means below Tier1Stake.
const (
	Tier1Stake uint64 = 1_000
	Tier2Stake uint64 = 5_000
	Tier3Stake uint64 = 10_000
	Tier4Stake uint64 = 50_000
	Tier5Stake uint64 = 100_000
)
