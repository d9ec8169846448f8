package transfer

import (
	"encoding/binary"
	"fmt"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/common/math"
	"github.com/mort-network/gmort/mortdb"
)

func balanceKey(addr common.Address) []byte {
	return append([]byte("balances/"), addr.Bytes()...)
}

// Ledger is a Mover backed by a key-value store, used where balances must
// outlive the process. Pointing it at the same overlay an operation writes
// its state through makes the value movement roll back with the rest of a
// failed operation.
type Ledger struct {
	db mortdb.KeyValueStore
}

// NewLedger returns a Ledger over db.
func NewLedger(db mortdb.KeyValueStore) *Ledger {
	return &Ledger{db: db}
}

// BalanceOf returns the stored balance of addr, zero if absent.
func (l *Ledger) BalanceOf(addr common.Address) (uint64, error) {
	blob, err := l.db.Get(balanceKey(addr))
	if err != nil {
		return 0, nil
	}
	if len(blob) != 8 {
		return 0, fmt.Errorf("transfer: corrupt balance record for %s", addr)
	}
	return binary.BigEndian.Uint64(blob), nil
}

func (l *Ledger) setBalance(addr common.Address, amount uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], amount)
	return l.db.Put(balanceKey(addr), buf[:])
}

// Mint credits amount to addr. Bootstrap helper.
func (l *Ledger) Mint(addr common.Address, amount uint64) error {
	balance, err := l.BalanceOf(addr)
	if err != nil {
		return err
	}
	next, err := math.CheckedAdd(balance, amount)
	if err != nil {
		return err
	}
	return l.setBalance(addr, next)
}

// Move transfers amount from one account to another, failing without any
// effect when funds are short.
func (l *Ledger) Move(from, to common.Address, amount uint64) error {
	if from.IsZero() || to.IsZero() {
		return ErrZeroAddress
	}
	src, err := l.BalanceOf(from)
	if err != nil {
		return err
	}
	if src < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, from, src, amount)
	}
	dst, err := l.BalanceOf(to)
	if err != nil {
		return err
	}
	next, err := math.CheckedAdd(dst, amount)
	if err != nil {
		return err
	}
	if err := l.setBalance(from, src-amount); err != nil {
		return err
	}
	return l.setBalance(to, next)
}
