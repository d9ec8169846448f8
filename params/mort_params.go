package params

import "github.com/mort-network/gmort/common"

// MORT system addresses — fixed, well-known custody accounts used by the
// protocol. External transfers in and out of the ledger always cross one of
// these.
var (
	// StakingAddress is the custody account holding staked principal.
	StakingAddress = common.HexToAddress("0x00000000000000000000000000004D4F525431") // "MORT1"

	// TreasuryAddress is the custody account holding pooled treasury funds
	// and locked bond principal.
	TreasuryAddress = common.HexToAddress("0x00000000000000000000000000004D4F525432") // "MORT2"
)
