package governance

import (
	"encoding/json"
	"fmt"

	"github.com/mort-network/gmort/sysaction"
)

func init() {
	sysaction.DefaultRegistry.Register(&governanceHandler{})
}

// governanceHandler implements sysaction.Handler for governance actions.
type governanceHandler struct{}

func (h *governanceHandler) CanHandle(kind sysaction.ActionKind) bool {
	switch kind {
	case sysaction.ActionProposalCreate,
		sysaction.ActionProposalVote,
		sysaction.ActionProposalExecute:
		return true
	}
	return false
}

func (h *governanceHandler) Handle(ctx *sysaction.Context, sa *sysaction.SysAction) error {
	switch sa.Action {
	case sysaction.ActionProposalCreate:
		var p sysaction.ProposalCreatePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("proposal create: %w", err)
		}
		var payload Payload
		if err := json.Unmarshal(p.Proposal, &payload); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidProposalType, err)
		}
		_, err := CreateProposal(ctx.DB, ctx.From, payload, ctx.Now)
		return err

	case sysaction.ActionProposalVote:
		var p sysaction.ProposalVotePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("proposal vote: %w", err)
		}
		return Vote(ctx.DB, p.ID, ctx.From, p.Support, ctx.Now)

	case sysaction.ActionProposalExecute:
		var p sysaction.ProposalExecutePayload
		if err := sysaction.DecodePayload(sa, &p); err != nil {
			return fmt.Errorf("proposal execute: %w", err)
		}
		return Execute(ctx.DB, p.ID, ctx.Now)
	}
	return fmt.Errorf("governance handler: unsupported action %q", sa.Action)
}
