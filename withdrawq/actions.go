package withdrawq

import (
	"fmt"

	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/common/math"
	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/params"
	"github.com/mort-network/gmort/staking"
	"github.com/mort-network/gmort/transfer"
)

// Enqueue appends a withdrawal request for from. A principal holds at most
// one pending request at a time, and the request cannot exceed its current
// stake.
func Enqueue(db mortdb.KeyValueStore, from common.Address, amount uint64, now int64) (uint64, error) {
	queue, err := ReadQueue(db)
	if err != nil {
		return 0, err
	}
	if queue.Paused {
		return 0, ErrQueuePaused
	}
	user, err := staking.ReadUserStake(db, from)
	if err != nil {
		return 0, err
	}
	if amount == 0 || amount > user.StakedAmount {
		return 0, ErrInvalidWithdrawalAmount
	}
	if user.WithdrawalPending {
		return 0, ErrWithdrawalPending
	}
	newTotal, err := math.CheckedAdd(queue.TotalQueued, amount)
	if err != nil {
		return 0, err
	}
	req := &Request{
		Index:      queue.Tail,
		Owner:      from,
		Amount:     amount,
		EnqueuedAt: now,
	}
	if err := WriteRequest(db, req); err != nil {
		return 0, err
	}
	user.WithdrawalPending = true
	user.WithdrawalAmount = amount
	if err := staking.WriteUserStake(db, user); err != nil {
		return 0, err
	}
	queue.Tail++
	queue.TotalQueued = newTotal
	return req.Index, WriteQueue(db, queue)
}

// ProcessBatch drains up to params.MaxWithdrawalBatch requests from the
// head of the queue in strict enqueue order. The head cursor advances
// exactly one slot per visited request and a request pays out at most once,
// so replays and crashes mid-batch never double-pay. Returns the number of
// requests paid.
func ProcessBatch(db mortdb.KeyValueStore, mover transfer.Mover, caller common.Address, now int64) (int, error) {
	pool, err := staking.ReadPool(db)
	if err != nil {
		return 0, err
	}
	if caller != pool.Authority {
		return 0, ErrInvalidAuthority
	}
	queue, err := ReadQueue(db)
	if err != nil {
		return 0, err
	}

	paid := 0
	for visited := uint64(0); visited < params.MaxWithdrawalBatch && queue.Head < queue.Tail; visited++ {
		req, err := ReadRequest(db, queue.Head)
		if err != nil {
			return paid, err
		}
		if req.Processed {
			queue.Head++
			continue
		}
		if err := payRequest(db, mover, pool, queue, req, now); err != nil {
			return paid, err
		}
		queue.Head++
		paid++
	}
	queue.LastProcess = now
	if err := WriteQueue(db, queue); err != nil {
		return paid, err
	}
	return paid, staking.WritePool(db, pool)
}

// payRequest pays a single unprocessed request out of the owner's staked
// principal. A stake drained below the requested amount since enqueue (by
// an emergency withdrawal) pays out what remains.
func payRequest(db mortdb.KeyValueStore, mover transfer.Mover, pool *staking.Pool, queue *QueueState, req *Request, now int64) error {
	user, err := staking.ReadUserStake(db, req.Owner)
	if err != nil {
		return err
	}
	if err := staking.Settle(user, pool.YieldRateBPS, now); err != nil {
		return err
	}
	payout := req.Amount
	if payout > user.StakedAmount {
		payout = user.StakedAmount
	}
	newTotal, err := math.CheckedSub(pool.TotalStaked, payout)
	if err != nil {
		return err
	}
	queued, err := math.CheckedSub(queue.TotalQueued, req.Amount)
	if err != nil {
		return err
	}
	if payout > 0 {
		if err := mover.Move(params.StakingAddress, req.Owner, payout); err != nil {
			return fmt.Errorf("withdrawq: payout for request %d: %w", req.Index, err)
		}
	}
	user.StakedAmount -= payout
	user.Tier = staking.TierForStake(user.StakedAmount)
	user.WithdrawalPending = false
	user.WithdrawalAmount = 0
	if err := staking.WriteUserStake(db, user); err != nil {
		return err
	}
	pool.TotalStaked = newTotal
	queue.TotalQueued = queued
	req.Processed = true
	req.ProcessedAt = now
	return WriteRequest(db, req)
}

// Compact prunes the storage records of the fully-processed queue prefix.
// Cursors are untouched: indices keep increasing monotonically.
func Compact(db mortdb.KeyValueStore) (int, error) {
	queue, err := ReadQueue(db)
	if err != nil {
		return 0, err
	}
	pruned := 0
	for index := queue.CompactedTo; index < queue.Head; index++ {
		if err := deleteRequest(db, index); err != nil {
			return pruned, err
		}
		pruned++
	}
	queue.CompactedTo = queue.Head
	return pruned, WriteQueue(db, queue)
}

// SetPaused toggles the queue pause flag. Authority only.
func SetPaused(db mortdb.KeyValueStore, caller common.Address, paused bool) error {
	pool, err := staking.ReadPool(db)
	if err != nil {
		return err
	}
	if caller != pool.Authority {
		return ErrInvalidAuthority
	}
	queue, err := ReadQueue(db)
	if err != nil {
		return err
	}
	queue.Paused = paused
	return WriteQueue(db, queue)
}
