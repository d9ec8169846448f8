package bonding

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/common/math"
	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/params"
	"github.com/mort-network/gmort/transfer"
)

// CreateBond locks amount in a new bond of the given class and returns its
// per-owner sequence number.
func CreateBond(db mortdb.KeyValueStore, mover transfer.Mover, owner common.Address, class BondClass, amount uint64, now int64) (uint64, error) {
	if class.Duration() == 0 {
		return 0, ErrInvalidBondClass
	}
	if amount == 0 {
		return 0, ErrInvalidBondAmount
	}
	vault, err := ReadVault(db)
	if err != nil {
		return 0, err
	}
	seq, err := ReadBondCount(db, owner)
	if err != nil {
		return 0, err
	}
	newTotal, err := math.CheckedAdd(vault.TotalBonded, amount)
	if err != nil {
		return 0, err
	}
	if err := mover.Move(owner, params.TreasuryAddress, amount); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInsufficientFunds, err)
	}
	bond := &Bond{
		Owner:     owner,
		Class:     class,
		Amount:    amount,
		CreatedAt: now,
		MaturesAt: now + class.Duration(),
		Seq:       seq,
	}
	if err := WriteBond(db, bond); err != nil {
		return 0, err
	}
	if err := writeBondCount(db, owner, seq+1); err != nil {
		return 0, err
	}
	vault.TotalBonded = newTotal
	return seq, WriteVault(db, vault)
}

// ClaimBond pays out a matured bond exactly once: principal plus the
// class-fixed bonus.
func ClaimBond(db mortdb.KeyValueStore, mover transfer.Mover, owner common.Address, seq uint64, now int64) error {
	bond, err := ReadBond(db, owner, seq)
	if err != nil {
		return err
	}
	if bond.Claimed {
		return ErrBondAlreadyClaimed
	}
	if now < bond.MaturesAt {
		return ErrBondNotMature
	}
	vault, err := ReadVault(db)
	if err != nil {
		return err
	}
	newTotal, err := math.CheckedSub(vault.TotalBonded, bond.Amount)
	if err != nil {
		return err
	}
	bonus := new(uint256.Int).Mul(uint256.NewInt(bond.Amount), uint256.NewInt(bond.Class.BonusBPS()))
	bonus.Div(bonus, uint256.NewInt(params.BPSDenominator))
	payout, err := math.CheckedAdd(bond.Amount, bonus.Uint64())
	if err != nil {
		return err
	}
	if err := mover.Move(params.TreasuryAddress, owner, payout); err != nil {
		return fmt.Errorf("%w: %v", ErrInsufficientFunds, err)
	}
	bond.Claimed = true
	if err := WriteBond(db, bond); err != nil {
		return err
	}
	vault.TotalBonded = newTotal
	return WriteVault(db, vault)
}
