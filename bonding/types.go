// Package bonding implements the fixed-term bond vault. Principal locks for
// a class-defined duration and pays a deterministic, class-fixed bonus on
// claim after maturity.
package bonding

import (
	"errors"

	"github.com/mort-network/gmort/common"
)

// BondClass identifies a bond term.
type BondClass uint8

const (
	BondShort  BondClass = 0 // 30 days, +2%
	BondMedium BondClass = 1 // 90 days, +5%
	BondLong   BondClass = 2 // 180 days, +12%
)

// Duration returns the lock term of the class in seconds.
func (c BondClass) Duration() int64 {
	switch c {
	case BondShort:
		return 30 * 24 * 60 * 60
	case BondMedium:
		return 90 * 24 * 60 * 60
	case BondLong:
		return 180 * 24 * 60 * 60
	}
	return 0
}

// BonusBPS returns the class-fixed claim bonus in basis points.
func (c BondClass) BonusBPS() uint64 {
	switch c {
	case BondShort:
		return 200
	case BondMedium:
		return 500
	case BondLong:
		return 1_200
	}
	return 0
}

func (c BondClass) String() string {
	switch c {
	case BondShort:
		return "short"
	case BondMedium:
		return "medium"
	case BondLong:
		return "long"
	}
	return "unknown"
}

// ParseBondClass maps a class name onto its BondClass.
func ParseBondClass(s string) (BondClass, error) {
	switch s {
	case "short":
		return BondShort, nil
	case "medium":
		return BondMedium, nil
	case "long":
		return BondLong, nil
	}
	return 0, ErrInvalidBondClass
}

// VaultState is the vault-wide bonding record.
type VaultState struct {
	TotalBonded uint64 `json:"totalBonded"`
}

// Bond is a single fixed-term position. Seq numbers are sequential per
// owner, assigned at creation.
type Bond struct {
	Owner     common.Address `json:"owner"`
	Class     BondClass      `json:"class"`
	Amount    uint64         `json:"amount"`
	CreatedAt int64          `json:"createdAt"`
	MaturesAt int64          `json:"maturesAt"`
	Claimed   bool           `json:"claimed"`
	Seq       uint64         `json:"seq"`
}

var (
	ErrInvalidBondClass   = errors.New("bonding: unknown bond class")
	ErrInvalidBondAmount  = errors.New("bonding: invalid bond amount")
	ErrBondNotFound       = errors.New("bonding: bond not found")
	ErrBondNotMature      = errors.New("bonding: bond not yet mature")
	ErrBondAlreadyClaimed = errors.New("bonding: bond already claimed")
	ErrInsufficientFunds  = errors.New("bonding: insufficient funds")
)
