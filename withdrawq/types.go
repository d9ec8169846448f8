// Package withdrawq implements the FIFO withdrawal queue. Principals join
// the queue to withdraw staked principal in order; the protocol authority
// drains it in bounded batches, each request paying out at most once.
package withdrawq

import (
	"errors"

	"github.com/mort-network/gmort/common"
)

// QueueState is the queue-wide record. Head and tail are absolute request
// indices; head <= tail always, and both only ever grow. CompactedTo marks
// the prefix of fully-processed request records already pruned from storage.
type QueueState struct {
	Head        uint64 `json:"head"`
	Tail        uint64 `json:"tail"`
	TotalQueued uint64 `json:"totalQueued"`
	Paused      bool   `json:"paused"`
	LastProcess int64  `json:"lastProcess"`
	CompactedTo uint64 `json:"compactedTo"`
}

// Request is a single queued withdrawal.
type Request struct {
	Index       uint64         `json:"index"`
	Owner       common.Address `json:"owner"`
	Amount      uint64         `json:"amount"`
	EnqueuedAt  int64          `json:"enqueuedAt"`
	Processed   bool           `json:"processed"`
	ProcessedAt int64          `json:"processedAt"`
}

var (
	ErrQueuePaused             = errors.New("withdrawq: queue is paused")
	ErrInvalidWithdrawalAmount = errors.New("withdrawq: invalid withdrawal amount")
	ErrWithdrawalPending       = errors.New("withdrawq: withdrawal already pending")
	ErrRequestNotFound         = errors.New("withdrawq: request not found")
	ErrInvalidAuthority        = errors.New("withdrawq: invalid authority")
)
