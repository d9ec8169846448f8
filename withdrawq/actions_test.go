package withdrawq

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/mortdb/memorydb"
	"github.com/mort-network/gmort/params"
	"github.com/mort-network/gmort/staking"
	"github.com/mort-network/gmort/transfer"
)

var testAuthority = common.HexToAddress("0x00000000000000000000000000000000000000aa")

const testNow = int64(1_700_000_000)

func testUser(i int) common.Address {
	return common.HexToAddress(fmt.Sprintf("0x%040x", 0xd000+i))
}

func newTestQueue(t *testing.T, users int) (mortdb.KeyValueStore, *transfer.Book) {
	t.Helper()
	db := memorydb.New()
	cfg := params.DefaultConfig()
	cfg.Authority = testAuthority
	cfg.MinStake = 1
	cfg.MaxStake = 1_000_000
	if err := staking.Bootstrap(db, &cfg, testNow); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	book := transfer.NewBook()
	if err := book.Mint(params.StakingAddress, 10_000_000); err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	for i := 0; i < users; i++ {
		if err := book.Mint(testUser(i), 100_000); err != nil {
			t.Fatalf("mint failed: %v", err)
		}
		if err := staking.Stake(db, book, testUser(i), 10_000, testNow); err != nil {
			t.Fatalf("stake failed: %v", err)
		}
	}
	return db, book
}

func TestEnqueueChecksStakeAndPending(t *testing.T) {
	db, _ := newTestQueue(t, 1)
	user := testUser(0)

	if _, err := Enqueue(db, user, 0, testNow); !errors.Is(err, ErrInvalidWithdrawalAmount) {
		t.Fatalf("zero amount: have %v want %v", err, ErrInvalidWithdrawalAmount)
	}
	if _, err := Enqueue(db, user, 10_001, testNow); !errors.Is(err, ErrInvalidWithdrawalAmount) {
		t.Fatalf("over stake: have %v want %v", err, ErrInvalidWithdrawalAmount)
	}
	index, err := Enqueue(db, user, 4_000, testNow)
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if index != 0 {
		t.Fatalf("index mismatch: have %d want 0", index)
	}
	if _, err := Enqueue(db, user, 1_000, testNow); !errors.Is(err, ErrWithdrawalPending) {
		t.Fatalf("second enqueue: have %v want %v", err, ErrWithdrawalPending)
	}
	queue, err := ReadQueue(db)
	if err != nil {
		t.Fatalf("read queue failed: %v", err)
	}
	if queue.Tail != 1 || queue.TotalQueued != 4_000 {
		t.Fatalf("queue state mismatch: tail %d total %d", queue.Tail, queue.TotalQueued)
	}
}

func TestEnqueueRejectedWhenPaused(t *testing.T) {
	db, _ := newTestQueue(t, 1)

	if err := SetPaused(db, testUser(0), true); !errors.Is(err, ErrInvalidAuthority) {
		t.Fatalf("pause by non-authority: have %v want %v", err, ErrInvalidAuthority)
	}
	if err := SetPaused(db, testAuthority, true); err != nil {
		t.Fatalf("pause failed: %v", err)
	}
	if _, err := Enqueue(db, testUser(0), 1_000, testNow); !errors.Is(err, ErrQueuePaused) {
		t.Fatalf("enqueue while paused: have %v want %v", err, ErrQueuePaused)
	}
}

func TestProcessBatchStrictFIFO(t *testing.T) {
	db, book := newTestQueue(t, 3)
	for i := 0; i < 3; i++ {
		if _, err := Enqueue(db, testUser(i), uint64(1_000*(i+1)), testNow+int64(i)); err != nil {
			t.Fatalf("enqueue %d failed: %v", i, err)
		}
	}

	if _, err := ProcessBatch(db, book, testUser(0), testNow+100); !errors.Is(err, ErrInvalidAuthority) {
		t.Fatalf("process by non-authority: have %v want %v", err, ErrInvalidAuthority)
	}
	paid, err := ProcessBatch(db, book, testAuthority, testNow+100)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if paid != 3 {
		t.Fatalf("paid mismatch: have %d want 3", paid)
	}
	for i := 0; i < 3; i++ {
		req, err := ReadRequest(db, uint64(i))
		if err != nil {
			t.Fatalf("read request %d failed: %v", i, err)
		}
		if !req.Processed {
			t.Fatalf("request %d not processed", i)
		}
		want := uint64(100_000 - 10_000 + 1_000*(i+1))
		if bal := book.BalanceOf(testUser(i)); bal != want {
			t.Fatalf("user %d balance mismatch: have %d want %d", i, bal, want)
		}
	}
	queue, err := ReadQueue(db)
	if err != nil {
		t.Fatalf("read queue failed: %v", err)
	}
	if queue.Head != 3 || queue.TotalQueued != 0 {
		t.Fatalf("queue state mismatch: head %d total %d", queue.Head, queue.TotalQueued)
	}
	if queue.LastProcess != testNow+100 {
		t.Fatalf("last process mismatch: have %d want %d", queue.LastProcess, testNow+100)
	}
}

func TestProcessBatchIsBounded(t *testing.T) {
	users := int(params.MaxWithdrawalBatch) + 3
	db, book := newTestQueue(t, users)
	for i := 0; i < users; i++ {
		if _, err := Enqueue(db, testUser(i), 500, testNow); err != nil {
			t.Fatalf("enqueue %d failed: %v", i, err)
		}
	}

	paid, err := ProcessBatch(db, book, testAuthority, testNow+1)
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if paid != int(params.MaxWithdrawalBatch) {
		t.Fatalf("paid mismatch: have %d want %d", paid, params.MaxWithdrawalBatch)
	}
	// The overflow beyond the batch cap stays queued in order.
	queue, err := ReadQueue(db)
	if err != nil {
		t.Fatalf("read queue failed: %v", err)
	}
	if queue.Head != params.MaxWithdrawalBatch {
		t.Fatalf("head mismatch: have %d want %d", queue.Head, params.MaxWithdrawalBatch)
	}
	paid, err = ProcessBatch(db, book, testAuthority, testNow+2)
	if err != nil {
		t.Fatalf("second process failed: %v", err)
	}
	if paid != 3 {
		t.Fatalf("second batch mismatch: have %d want 3", paid)
	}
}

func TestProcessBatchNeverDoublePays(t *testing.T) {
	db, book := newTestQueue(t, 1)
	if _, err := Enqueue(db, testUser(0), 2_000, testNow); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if _, err := ProcessBatch(db, book, testAuthority, testNow+1); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	before := book.BalanceOf(testUser(0))

	// Replaying the drain visits nothing new and pays nothing.
	paid, err := ProcessBatch(db, book, testAuthority, testNow+2)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if paid != 0 {
		t.Fatalf("replay paid %d requests", paid)
	}
	if bal := book.BalanceOf(testUser(0)); bal != before {
		t.Fatalf("replay changed balance: have %d want %d", bal, before)
	}
}

func TestCompactPrunesProcessedPrefix(t *testing.T) {
	db, book := newTestQueue(t, 2)
	for i := 0; i < 2; i++ {
		if _, err := Enqueue(db, testUser(i), 1_000, testNow); err != nil {
			t.Fatalf("enqueue %d failed: %v", i, err)
		}
	}
	if _, err := ProcessBatch(db, book, testAuthority, testNow+1); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	pruned, err := Compact(db)
	if err != nil {
		t.Fatalf("compact failed: %v", err)
	}
	if pruned != 2 {
		t.Fatalf("pruned mismatch: have %d want 2", pruned)
	}
	if _, err := ReadRequest(db, 0); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("request 0 survived compaction: %v", err)
	}
	// Cursors keep increasing: the next request lands at index 2.
	index, err := Enqueue(db, testUser(0), 1_000, testNow+2)
	if err != nil {
		t.Fatalf("post-compact enqueue failed: %v", err)
	}
	if index != 2 {
		t.Fatalf("index mismatch: have %d want 2", index)
	}
}

func TestProcessPaysRemainingStakeAfterDrain(t *testing.T) {
	db, book := newTestQueue(t, 1)
	user := testUser(0)
	if _, err := Enqueue(db, user, 10_000, testNow); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	// An emergency withdrawal drains part of the stake before the queue
	// turn comes up; the request pays out what is left.
	if err := staking.EmergencyWithdraw(db, book, user, 4_000, testNow+1); err != nil {
		t.Fatalf("emergency withdraw failed: %v", err)
	}
	if _, err := ProcessBatch(db, book, testAuthority, testNow+2); err != nil {
		t.Fatalf("process failed: %v", err)
	}
	stake, err := staking.ReadUserStake(db, user)
	if err != nil {
		t.Fatalf("read user failed: %v", err)
	}
	if stake.StakedAmount != 0 {
		t.Fatalf("residual stake: have %d want 0", stake.StakedAmount)
	}
	// 4_000 emergency (20% penalty → 3_200) plus the remaining 6_000.
	if bal := book.BalanceOf(user); bal != 100_000-10_000+3_200+6_000 {
		t.Fatalf("balance mismatch: have %d want %d", bal, 100_000-10_000+3_200+6_000)
	}
}
