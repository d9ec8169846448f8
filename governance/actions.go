package governance

import (
	"fmt"

	mapset "github.com/deckarep/golang-set"
	"github.com/mort-network/gmort/common"
	"github.com/mort-network/gmort/common/math"
	"github.com/mort-network/gmort/mortdb"
	"github.com/mort-network/gmort/params"
	"github.com/mort-network/gmort/staking"
	"github.com/mort-network/gmort/treasury"
)

// Bootstrap writes the initial governance record from cfg.
func Bootstrap(db mortdb.KeyValueStore, cfg *params.ProtocolConfig) error {
	if _, err := ReadState(db); err == nil {
		return ErrGovernanceExists
	}
	state := &State{
		CurrentYieldRate: cfg.BaseYieldRateBPS,
		VotingPeriod:     cfg.VotingPeriod,
		RequiredQuorum:   cfg.Quorum,
	}
	return WriteState(db, state)
}

// CreateProposal opens a new proposal and returns its id. The voting window
// runs from now for the configured period.
func CreateProposal(db mortdb.KeyValueStore, author common.Address, payload Payload, now int64) (uint64, error) {
	if err := payload.Validate(); err != nil {
		return 0, err
	}
	state, err := ReadState(db)
	if err != nil {
		return 0, err
	}
	proposal := &Proposal{
		ID:        state.ProposalCount,
		Author:    author,
		CreatedAt: now,
		EndTime:   now + state.VotingPeriod,
		Payload:   payload,
	}
	if err := WriteProposal(db, proposal); err != nil {
		return 0, err
	}
	state.ProposalCount++
	return proposal.ID, WriteState(db, state)
}

// Vote casts voter's weighted vote on proposal id. The weight is the
// voter's staked amount at vote time; each voter counts at most once per
// proposal.
func Vote(db mortdb.KeyValueStore, id uint64, voter common.Address, support bool, now int64) error {
	proposal, err := ReadProposal(db, id)
	if err != nil {
		return err
	}
	if now >= proposal.EndTime {
		return ErrVotingPeriodEnded
	}
	voted := mapset.NewSet()
	for _, prior := range proposal.Voters {
		voted.Add(prior)
	}
	if voted.Contains(voter) {
		return ErrAlreadyVoted
	}
	user, err := staking.ReadUserStake(db, voter)
	if err != nil {
		return err
	}
	if user.StakedAmount == 0 {
		return ErrInsufficientStake
	}
	if support {
		if proposal.ForVotes, err = math.CheckedAdd(proposal.ForVotes, user.StakedAmount); err != nil {
			return err
		}
	} else {
		if proposal.AgainstVotes, err = math.CheckedAdd(proposal.AgainstVotes, user.StakedAmount); err != nil {
			return err
		}
	}
	proposal.Voters = append(proposal.Voters, voter)
	return WriteProposal(db, proposal)
}

// Execute enacts a passed proposal after its voting window closes. A
// proposal passes when the combined vote weight reaches the quorum and the
// for side strictly outweighs the against side.
func Execute(db mortdb.KeyValueStore, id uint64, now int64) error {
	proposal, err := ReadProposal(db, id)
	if err != nil {
		return err
	}
	if now < proposal.EndTime {
		return ErrVotingPeriodActive
	}
	if proposal.Executed {
		return ErrProposalAlreadyExecuted
	}
	state, err := ReadState(db)
	if err != nil {
		return err
	}
	total, err := math.CheckedAdd(proposal.ForVotes, proposal.AgainstVotes)
	if err != nil {
		return err
	}
	if total < state.RequiredQuorum || proposal.ForVotes <= proposal.AgainstVotes {
		return ErrProposalNotPassed
	}
	if err := enact(db, state, &proposal.Payload, now); err != nil {
		return err
	}
	proposal.Executed = true
	if err := WriteProposal(db, proposal); err != nil {
		return err
	}
	return WriteState(db, state)
}

// enact applies the payload. Rate changes go straight to the staking pool:
// the vote replaces the authority rate-update gate.
func enact(db mortdb.KeyValueStore, state *State, payload *Payload, now int64) error {
	switch payload.Kind {
	case KindSetYieldRate:
		if err := staking.SetYieldRate(db, payload.RateBPS, now); err != nil {
			return err
		}
		state.CurrentYieldRate = payload.RateBPS
		return nil
	case KindSetWithdrawalLimit:
		return treasury.SetWithdrawalLimit(db, payload.Limit)
	case KindSetVotingPeriod:
		state.VotingPeriod = payload.Period
		return nil
	case KindSetQuorum:
		state.RequiredQuorum = payload.Quorum
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidProposalType, payload.Kind)
}
