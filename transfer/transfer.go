// Package transfer defines the value-movement capability the ledger core
// depends on. The core never moves value itself: every payout and deposit
// goes through an injected Mover, so the custody mechanics stay outside the
// state machine and unit tests can run against an in-memory book.
package transfer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/common/math"
)

var (
	// ErrInsufficientFunds is returned when the source account cannot cover
	// the transfer amount.
	ErrInsufficientFunds = errors.New("transfer: insufficient funds")

	// ErrZeroAddress is returned for transfers touching the zero address.
	ErrZeroAddress = errors.New("transfer: zero address")
)

// Mover moves fungible value between custodial accounts. A Move either
// completes fully or fails with no effect.
type Mover interface {
	Move(from, to common.Address, amount uint64) error
}

// Book is an in-memory balance book implementing Mover. It backs unit tests
// and the mortctl demo ledger; a production deployment injects the real
// custody bridge instead.
type Book struct {
	mu       sync.Mutex
	balances map[common.Address]uint64
}

// NewBook returns an empty balance book.
func NewBook() *Book {
	return &Book{balances: make(map[common.Address]uint64)}
}

// Mint credits amount to addr out of thin air. Test and bootstrap helper.
func (b *Book) Mint(addr common.Address, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := math.CheckedAdd(b.balances[addr], amount)
	if err != nil {
		return err
	}
	b.balances[addr] = next
	return nil
}

// Move transfers amount from one account to another, failing without any
// effect when funds are short or the arithmetic would overflow.
func (b *Book) Move(from, to common.Address, amount uint64) error {
	if from.IsZero() || to.IsZero() {
		return ErrZeroAddress
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	src := b.balances[from]
	if src < amount {
		return fmt.Errorf("%w: %s has %d, needs %d", ErrInsufficientFunds, from, src, amount)
	}
	dst, err := math.CheckedAdd(b.balances[to], amount)
	if err != nil {
		return err
	}
	b.balances[from] = src - amount
	b.balances[to] = dst
	return nil
}

// BalanceOf returns the current balance of addr.
func (b *Book) BalanceOf(addr common.Address) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[addr]
}

// TotalSupply returns the sum of all balances in the book.
func (b *Book) TotalSupply() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	var total uint64
	for _, bal := range b.balances {
		total += bal
	}
	return total
}
