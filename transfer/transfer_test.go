package transfer

import (
	"errors"
	"math"
	"testing"

	"github.com/mort-network/gmort/common"
	cmath "github.com/mort-network/gmort/common/math"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

func TestMoveConservesSupply(t *testing.T) {
	book := NewBook()
	book.Mint(alice, 1000)

	if err := book.Move(alice, bob, 400); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if have := book.BalanceOf(alice); have != 600 {
		t.Fatalf("alice balance: have %d want 600", have)
	}
	if have := book.BalanceOf(bob); have != 400 {
		t.Fatalf("bob balance: have %d want 400", have)
	}
	if have := book.TotalSupply(); have != 1000 {
		t.Fatalf("supply changed: have %d want 1000", have)
	}
}

func TestMoveInsufficientFundsHasNoEffect(t *testing.T) {
	book := NewBook()
	book.Mint(alice, 100)

	err := book.Move(alice, bob, 101)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, have %v", err)
	}
	if have := book.BalanceOf(alice); have != 100 {
		t.Fatalf("failed move mutated source: have %d want 100", have)
	}
	if have := book.BalanceOf(bob); have != 0 {
		t.Fatalf("failed move mutated destination: have %d", have)
	}
}

func TestMoveRejectsZeroAddress(t *testing.T) {
	book := NewBook()
	book.Mint(alice, 100)

	if err := book.Move(alice, common.Address{}, 1); !errors.Is(err, ErrZeroAddress) {
		t.Fatalf("expected ErrZeroAddress, have %v", err)
	}
}

func TestMoveOverflowFails(t *testing.T) {
	book := NewBook()
	book.Mint(alice, 10)
	book.Mint(bob, math.MaxUint64-5)

	err := book.Move(alice, bob, 10)
	if !errors.Is(err, cmath.ErrOverflow) {
		t.Fatalf("expected overflow, have %v", err)
	}
	if have := book.BalanceOf(alice); have != 10 {
		t.Fatalf("failed move mutated source: have %d want 10", have)
	}
}
