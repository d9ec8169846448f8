// Package governance implements stake-weighted parameter governance.
// Proposals carry a typed parameter-change payload, collect weighted votes
// during a fixed window and execute at most once after it closes.
package governance

import (
	"errors"

	"github.com/mort-network/gmort/common"
)

// PayloadKind discriminates the proposal payload union.
type PayloadKind string

const (
	KindSetYieldRate       PayloadKind = "set-yield-rate"
	KindSetWithdrawalLimit PayloadKind = "set-withdrawal-limit"
	KindSetVotingPeriod    PayloadKind = "set-voting-period"
	KindSetQuorum          PayloadKind = "set-quorum"
)

// Payload is the parameter change a proposal enacts. Exactly the field
// matching Kind is meaningful.
type Payload struct {
	Kind    PayloadKind `json:"kind"`
	RateBPS uint64      `json:"rateBps,omitempty"`
	Limit   uint64      `json:"limit,omitempty"`
	Period  int64       `json:"period,omitempty"`
	Quorum  uint64      `json:"quorum,omitempty"`
}

// Validate checks the payload kind and the enacted value.
func (p *Payload) Validate() error {
	switch p.Kind {
	case KindSetYieldRate, KindSetWithdrawalLimit:
		return nil
	case KindSetVotingPeriod:
		if p.Period <= 0 {
			return ErrInvalidProposalType
		}
		return nil
	case KindSetQuorum:
		if p.Quorum == 0 {
			return ErrInvalidProposalType
		}
		return nil
	}
	return ErrInvalidProposalType
}

// State is the governance record, created at bootstrap. CurrentYieldRate
// mirrors the staking pool rate as last set through governance.
type State struct {
	CurrentYieldRate uint64 `json:"currentYieldRate"`
	VotingPeriod     int64  `json:"votingPeriod"`
	RequiredQuorum   uint64 `json:"requiredQuorum"`
	ProposalCount    uint64 `json:"proposalCount"`
}

// Proposal is a single governance proposal. Votes are weighted by the
// voter's staked amount at vote time.
type Proposal struct {
	ID           uint64           `json:"id"`
	Author       common.Address   `json:"author"`
	CreatedAt    int64            `json:"createdAt"`
	EndTime      int64            `json:"endTime"`
	Executed     bool             `json:"executed"`
	ForVotes     uint64           `json:"forVotes"`
	AgainstVotes uint64           `json:"againstVotes"`
	Voters       []common.Address `json:"voters"`
	Payload      Payload          `json:"payload"`
}

var (
	ErrGovernanceNotFound      = errors.New("governance: not initialized")
	ErrGovernanceExists        = errors.New("governance: already initialized")
	ErrProposalNotFound        = errors.New("governance: proposal not found")
	ErrInvalidProposalType     = errors.New("governance: invalid proposal payload")
	ErrVotingPeriodEnded       = errors.New("governance: voting period has ended")
	ErrVotingPeriodActive      = errors.New("governance: voting period still active")
	ErrAlreadyVoted            = errors.New("governance: already voted")
	ErrInsufficientStake       = errors.New("governance: voter has no stake")
	ErrProposalAlreadyExecuted = errors.New("governance: proposal already executed")
	ErrProposalNotPassed       = errors.New("governance: proposal not passed")
)
