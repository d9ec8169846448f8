package bonding

import (
	"errors"
	"testing"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/mortdb/memorydb"
	"github.com/mort-network/gmort/params"
	"github.com/mort-network/gmort/transfer"
)

var testOwner = common.HexToAddress("0x00000000000000000000000000000000000000c1")

const testNow = int64(1_700_000_000)

func newTestVault(t *testing.T) (mortdb.KeyValueStore, *transfer.Book) {
	t.Helper()
	db := memorydb.New()
	book := transfer.NewBook()
	for _, addr := range []common.Address{testOwner, params.TreasuryAddress} {
		if err := book.Mint(addr, 1_000_000); err != nil {
			t.Fatalf("mint failed: %v", err)
		}
	}
	return db, book
}

func TestBondClassTerms(t *testing.T) {
	tests := []struct {
		class    BondClass
		duration int64
		bonus    uint64
	}{
		{BondShort, 30 * 86_400, 200},
		{BondMedium, 90 * 86_400, 500},
		{BondLong, 180 * 86_400, 1_200},
	}
	for _, tt := range tests {
		if d := tt.class.Duration(); d != tt.duration {
			t.Fatalf("%s duration mismatch: have %d want %d", tt.class, d, tt.duration)
		}
		if b := tt.class.BonusBPS(); b != tt.bonus {
			t.Fatalf("%s bonus mismatch: have %d want %d", tt.class, b, tt.bonus)
		}
		parsed, err := ParseBondClass(tt.class.String())
		if err != nil || parsed != tt.class {
			t.Fatalf("%s round trip failed: %v %v", tt.class, parsed, err)
		}
	}
	if _, err := ParseBondClass("eternal"); !errors.Is(err, ErrInvalidBondClass) {
		t.Fatalf("unknown class: have %v want %v", err, ErrInvalidBondClass)
	}
}

func TestCreateBondLocksPrincipal(t *testing.T) {
	db, book := newTestVault(t)

	seq, err := CreateBond(db, book, testOwner, BondMedium, 10_000, testNow)
	if err != nil {
		t.Fatalf("create bond failed: %v", err)
	}
	if seq != 0 {
		t.Fatalf("first seq mismatch: have %d want 0", seq)
	}
	bond, err := ReadBond(db, testOwner, seq)
	if err != nil {
		t.Fatalf("read bond failed: %v", err)
	}
	if bond.MaturesAt != testNow+BondMedium.Duration() {
		t.Fatalf("maturity mismatch: have %d want %d", bond.MaturesAt, testNow+BondMedium.Duration())
	}
	if bal := book.BalanceOf(testOwner); bal != 1_000_000-10_000 {
		t.Fatalf("balance mismatch: have %d want %d", bal, 1_000_000-10_000)
	}
	vault, err := ReadVault(db)
	if err != nil {
		t.Fatalf("read vault failed: %v", err)
	}
	if vault.TotalBonded != 10_000 {
		t.Fatalf("total bonded mismatch: have %d want %d", vault.TotalBonded, 10_000)
	}

	// Sequence numbers are per owner and strictly increasing.
	if seq, err = CreateBond(db, book, testOwner, BondShort, 500, testNow); err != nil || seq != 1 {
		t.Fatalf("second bond: seq %d err %v", seq, err)
	}
}

func TestCreateBondRejectsInvalid(t *testing.T) {
	db, book := newTestVault(t)

	if _, err := CreateBond(db, book, testOwner, BondClass(9), 100, testNow); !errors.Is(err, ErrInvalidBondClass) {
		t.Fatalf("bad class: have %v want %v", err, ErrInvalidBondClass)
	}
	if _, err := CreateBond(db, book, testOwner, BondShort, 0, testNow); !errors.Is(err, ErrInvalidBondAmount) {
		t.Fatalf("zero amount: have %v want %v", err, ErrInvalidBondAmount)
	}
	if _, err := CreateBond(db, book, testOwner, BondShort, 2_000_000, testNow); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("unfunded bond: have %v want %v", err, ErrInsufficientFunds)
	}
}

func TestClaimBondPaysOnceAfterMaturity(t *testing.T) {
	db, book := newTestVault(t)
	seq, err := CreateBond(db, book, testOwner, BondLong, 10_000, testNow)
	if err != nil {
		t.Fatalf("create bond failed: %v", err)
	}

	if err := ClaimBond(db, book, testOwner, seq, testNow+BondLong.Duration()-1); !errors.Is(err, ErrBondNotMature) {
		t.Fatalf("early claim: have %v want %v", err, ErrBondNotMature)
	}
	if err := ClaimBond(db, book, testOwner, seq, testNow+BondLong.Duration()); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	// Principal back plus the fixed 12% bonus.
	if bal := book.BalanceOf(testOwner); bal != 1_000_000+1_200 {
		t.Fatalf("balance mismatch: have %d want %d", bal, 1_000_000+1_200)
	}
	vault, err := ReadVault(db)
	if err != nil {
		t.Fatalf("read vault failed: %v", err)
	}
	if vault.TotalBonded != 0 {
		t.Fatalf("total bonded mismatch: have %d want 0", vault.TotalBonded)
	}

	// Second claim fails and pays nothing.
	if err := ClaimBond(db, book, testOwner, seq, testNow+2*BondLong.Duration()); !errors.Is(err, ErrBondAlreadyClaimed) {
		t.Fatalf("double claim: have %v want %v", err, ErrBondAlreadyClaimed)
	}
	if bal := book.BalanceOf(testOwner); bal != 1_000_000+1_200 {
		t.Fatalf("double claim changed balance: have %d", bal)
	}
}

func TestClaimUnknownBond(t *testing.T) {
	db, book := newTestVault(t)
	if err := ClaimBond(db, book, testOwner, 7, testNow); !errors.Is(err, ErrBondNotFound) {
		t.Fatalf("unknown bond: have %v want %v", err, ErrBondNotFound)
	}
}
