package params

// These are the multipliers for MORT denominations.
// Ledger amounts are kept in base units; one MORT is 1e9 base units so the
// full supply stays comfortably inside uint64.
const (
	Base = 1
	MORT = 1e9
)
