package transfer

import (
	"errors"
	"testing"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/mortdb/memorydb"
	"github.com/mort-network/gmort/mortdb/overlaydb"
)

func TestLedgerMoveRoundTrip(t *testing.T) {
	ledger := NewLedger(memorydb.New())
	if err := ledger.Mint(alice, 1_000); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if err := ledger.Move(alice, bob, 400); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	for _, tt := range []struct {
		addr common.Address
		want uint64
	}{{alice, 600}, {bob, 400}} {
		balance, err := ledger.BalanceOf(tt.addr)
		if err != nil {
			t.Fatalf("balance failed: %v", err)
		}
		if balance != tt.want {
			t.Fatalf("balance mismatch for %s: have %d want %d", tt.addr, balance, tt.want)
		}
	}
	if err := ledger.Move(alice, bob, 601); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("overdraw: have %v want %v", err, ErrInsufficientFunds)
	}
}

func TestLedgerRollsBackWithOverlay(t *testing.T) {
	backing := memorydb.New()
	if err := NewLedger(backing).Mint(alice, 1_000); err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	overlay := overlaydb.New(backing)
	if err := NewLedger(overlay).Move(alice, bob, 700); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if err := overlay.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	// The dropped overlay takes the transfer with it.
	balance, err := NewLedger(backing).BalanceOf(alice)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 1_000 {
		t.Fatalf("balance mismatch: have %d want %d", balance, 1_000)
	}
}
