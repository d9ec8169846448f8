// Package sysaction implements the MORT system action protocol.
//
// Every ledger mutation arrives as a JSON-encoded SysAction message. The
// executor dispatches it to the subsystem handler registered for its kind
// and commits the resulting state writes atomically: an action either
// applies in full or leaves the store untouched.
package sysaction

import (
	"encoding/json"

	"github.com/mort-network/gmort/common"
)

// ActionKind identifies the type of system action.
type ActionKind string

const (
	// Staking ledger
	ActionStake             ActionKind = "STAKE"
	ActionUnstake           ActionKind = "UNSTAKE"
	ActionCompound          ActionKind = "COMPOUND"
	ActionClaimRewards      ActionKind = "CLAIM_REWARDS"
	ActionDelegate          ActionKind = "DELEGATE"
	ActionSetAutoCompound   ActionKind = "SET_AUTO_COMPOUND"
	ActionUpdateYieldRate   ActionKind = "UPDATE_YIELD_RATE"
	ActionEmergencyWithdraw ActionKind = "EMERGENCY_WITHDRAW"
	ActionSetPaused         ActionKind = "SET_PAUSED"

	// Bonding vault
	ActionBondCreate ActionKind = "BOND_CREATE"
	ActionBondClaim  ActionKind = "BOND_CLAIM"

	// Withdrawal queue
	ActionWithdrawEnqueue   ActionKind = "WITHDRAW_ENQUEUE"
	ActionWithdrawProcess   ActionKind = "WITHDRAW_PROCESS"
	ActionWithdrawSetPaused ActionKind = "WITHDRAW_SET_PAUSED"

	// Treasury
	ActionTreasuryWithdraw ActionKind = "TREASURY_WITHDRAW"
	ActionTreasuryDeposit  ActionKind = "TREASURY_DEPOSIT"

	// Governance
	ActionProposalCreate  ActionKind = "PROPOSAL_CREATE"
	ActionProposalVote    ActionKind = "PROPOSAL_VOTE"
	ActionProposalExecute ActionKind = "PROPOSAL_EXECUTE"
)

// SysAction is the top-level action envelope.
type SysAction struct {
	Action  ActionKind      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StakePayload is the payload for STAKE.
type StakePayload struct {
	Amount uint64 `json:"amount"`
}

// UnstakePayload is the payload for UNSTAKE.
type UnstakePayload struct {
	Amount uint64 `json:"amount"`
}

// DelegatePayload is the payload for DELEGATE.
type DelegatePayload struct {
	Delegatee common.Address `json:"delegatee"`
	Amount    uint64         `json:"amount"`
}

// SetAutoCompoundPayload is the payload for SET_AUTO_COMPOUND.
type SetAutoCompoundPayload struct {
	Enabled bool `json:"enabled"`
}

// UpdateYieldRatePayload is the payload for UPDATE_YIELD_RATE.
type UpdateYieldRatePayload struct {
	RateBPS uint64 `json:"rateBps"`
}

// EmergencyWithdrawPayload is the payload for EMERGENCY_WITHDRAW.
type EmergencyWithdrawPayload struct {
	Amount uint64 `json:"amount"`
}

// SetPausedPayload is the payload for SET_PAUSED and WITHDRAW_SET_PAUSED.
type SetPausedPayload struct {
	Paused bool `json:"paused"`
}

// BondCreatePayload is the payload for BOND_CREATE.
type BondCreatePayload struct {
	Class  string `json:"class"`
	Amount uint64 `json:"amount"`
}

// BondClaimPayload is the payload for BOND_CLAIM.
type BondClaimPayload struct {
	Seq uint64 `json:"seq"`
}

// WithdrawEnqueuePayload is the payload for WITHDRAW_ENQUEUE.
type WithdrawEnqueuePayload struct {
	Amount uint64 `json:"amount"`
}

// TreasuryWithdrawPayload is the payload for TREASURY_WITHDRAW.
type TreasuryWithdrawPayload struct {
	Amount      uint64           `json:"amount"`
	Destination common.Address   `json:"destination"`
	Signers     []common.Address `json:"signers"`
}

// TreasuryDepositPayload is the payload for TREASURY_DEPOSIT.
type TreasuryDepositPayload struct {
	Amount uint64 `json:"amount"`
}

// ProposalCreatePayload is the payload for PROPOSAL_CREATE. Proposal holds
// the governance payload union, decoded by the governance handler.
type ProposalCreatePayload struct {
	Proposal json.RawMessage `json:"proposal"`
}

// ProposalVotePayload is the payload for PROPOSAL_VOTE.
type ProposalVotePayload struct {
	ID      uint64 `json:"id"`
	Support bool   `json:"support"`
}

// ProposalExecutePayload is the payload for PROPOSAL_EXECUTE.
type ProposalExecutePayload struct {
	ID uint64 `json:"id"`
}
